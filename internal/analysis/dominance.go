// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// TrackPoint is one resampled position on the racing line.
type TrackPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Speed      float64 `json:"speed"`
	Minisector int     `json:"minisector"`
}

// MinisectorBin names the fastest driver in one track segment.
type MinisectorBin struct {
	Index    int     `json:"index"`
	Driver   string  `json:"driver"`
	AvgSpeed float64 `json:"avg_speed"`
}

// DominanceResult is the mini-sector track dominance view. Path carries the
// resampled racing line of the reference driver for rendering; bin wins
// always sum to the mini-sector count.
type DominanceResult struct {
	NumMinisectors int             `json:"num_minisectors"`
	Bins           []MinisectorBin `json:"bins"`
	Wins           map[string]int  `json:"wins"`
	Path           []TrackPoint    `json:"path"`
}

// resampledLap is a fastest lap re-gridded onto evenly spaced arc-length
// points so traces from different drivers line up bin for bin.
type resampledLap struct {
	x, y, speed []float64
}

// fitter is the common surface of the gonum interpolators.
type fitter interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// resampleLap maps a telemetry trace onto points evenly spaced along the
// cumulative X/Y arc length. Position channels use a natural cubic spline
// when enough support exists, piecewise linear otherwise; speed is always
// linear to avoid overshoot between samples.
func resampleLap(samples []f1.TelemetrySample, points int) (resampledLap, bool) {
	var dist, xs, ys, speeds []float64
	for i, s := range samples {
		if i == 0 {
			dist = append(dist, 0)
		} else {
			prev := dist[len(dist)-1]
			step := math.Hypot(s.X-xs[len(xs)-1], s.Y-ys[len(ys)-1])
			if step <= 0 {
				continue
			}
			dist = append(dist, prev+step)
		}
		xs = append(xs, s.X)
		ys = append(ys, s.Y)
		speeds = append(speeds, s.Speed)
	}
	if len(dist) < 2 || points < 2 {
		return resampledLap{}, false
	}

	var fx, fy fitter
	if len(dist) >= 4 {
		fx, fy = &interp.NaturalCubic{}, &interp.NaturalCubic{}
	} else {
		fx, fy = &interp.PiecewiseLinear{}, &interp.PiecewiseLinear{}
	}
	var fs interp.PiecewiseLinear
	if fx.Fit(dist, xs) != nil || fy.Fit(dist, ys) != nil || fs.Fit(dist, speeds) != nil {
		return resampledLap{}, false
	}

	total := dist[len(dist)-1]
	out := resampledLap{
		x:     make([]float64, points),
		y:     make([]float64, points),
		speed: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		d := total * float64(i) / float64(points-1)
		out.x[i] = fx.Predict(d)
		out.y[i] = fy.Predict(d)
		out.speed[i] = fs.Predict(d)
	}
	return out, true
}

// minisectorOf assigns a resampled point index to its track bin.
func minisectorOf(point, points, bins int) int {
	sector := point * bins / points
	if sector >= bins {
		sector = bins - 1
	}
	return sector
}

// MinisectorDominance splits the track into the configured number of
// mini-sectors and awards each to the driver with the highest mean speed
// through it, using each driver's fastest-lap telemetry resampled onto a
// common distance grid. Drivers without telemetry are skipped; the result
// is nil when fewer than one driver has a usable trace.
func (a *Analyzer) MinisectorDominance(s *f1.Session, drivers []string) *DominanceResult {
	bins := a.cfg.Minisectors
	points := a.cfg.ResamplePoints

	resampled := make(map[string]resampledLap)
	var order []string
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}
		lap, ok := resampleLap(samples, points)
		if !ok {
			continue
		}
		resampled[code] = lap
		order = append(order, code)
	}
	if len(order) == 0 {
		return nil
	}

	result := &DominanceResult{
		NumMinisectors: bins,
		Wins:           make(map[string]int),
	}

	for bin := 0; bin < bins; bin++ {
		best, bestSpeed := "", math.Inf(-1)
		for _, code := range order {
			var speeds []float64
			lap := resampled[code]
			for i := 0; i < points; i++ {
				if minisectorOf(i, points, bins) == bin {
					speeds = append(speeds, lap.speed[i])
				}
			}
			if m := mean(speeds); m > bestSpeed {
				best, bestSpeed = code, m
			}
		}
		result.Bins = append(result.Bins, MinisectorBin{
			Index:    bin,
			Driver:   best,
			AvgSpeed: round2(bestSpeed),
		})
		result.Wins[best]++
	}

	reference := resampled[order[0]]
	for i := 0; i < points; i++ {
		result.Path = append(result.Path, TrackPoint{
			X:          round2(reference.x[i]),
			Y:          round2(reference.y[i]),
			Speed:      round2(reference.speed[i]),
			Minisector: minisectorOf(i, points, bins),
		})
	}
	return result
}

// TrackMapResult is one driver's resampled racing line colored by speed.
type TrackMapResult struct {
	Driver string       `json:"driver"`
	Points []TrackPoint `json:"points"`
}

// TrackMap resamples each driver's fastest lap onto the common distance
// grid for track-map rendering. Drivers without telemetry are omitted.
func (a *Analyzer) TrackMap(s *f1.Session, drivers []string) []TrackMapResult {
	var results []TrackMapResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}
		lap, ok := resampleLap(samples, a.cfg.ResamplePoints)
		if !ok {
			continue
		}

		points := make([]TrackPoint, len(lap.x))
		for i := range lap.x {
			points[i] = TrackPoint{
				X:          round2(lap.x[i]),
				Y:          round2(lap.y[i]),
				Speed:      round2(lap.speed[i]),
				Minisector: minisectorOf(i, len(lap.x), a.cfg.Minisectors),
			}
		}
		results = append(results, TrackMapResult{Driver: code, Points: points})
	}
	return results
}
