// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"sort"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// HeadToHeadResult compares two drivers lap for lap.
type HeadToHeadResult struct {
	DriverA     string  `json:"driver_a"`
	DriverB     string  `json:"driver_b"`
	MedianDelta float64 `json:"median_delta"` // median A - median B, negative = A faster
	BestDelta   float64 `json:"best_delta"`
	WinsA       int     `json:"wins_a"` // laps where A was faster, by lap number
	WinsB       int     `json:"wins_b"`
	LapsPaired  int     `json:"laps_paired"`
}

// HeadToHead pairs the first two drivers' laps by lap number and compares
// pace. Returns nil unless both drivers have enough valid laps.
func (a *Analyzer) HeadToHead(s *f1.Session, drivers []string) *HeadToHeadResult {
	if len(drivers) < 2 {
		return nil
	}
	codeA, codeB := drivers[0], drivers[1]
	lapsA, lapsB := validLaps(s, codeA), validLaps(s, codeB)
	if len(lapsA) < a.cfg.MinValidLaps || len(lapsB) < a.cfg.MinValidLaps {
		return nil
	}

	byNumber := make(map[int]float64, len(lapsB))
	for _, lap := range lapsB {
		byNumber[lap.Number] = lap.Time
	}

	winsA, winsB, paired := 0, 0, 0
	for _, lap := range lapsA {
		timeB, ok := byNumber[lap.Number]
		if !ok {
			continue
		}
		paired++
		if lap.Time < timeB {
			winsA++
		} else if timeB < lap.Time {
			winsB++
		}
	}

	timesA, timesB := lapTimes(lapsA), lapTimes(lapsB)
	bestA, _ := minMax(timesA)
	bestB, _ := minMax(timesB)

	return &HeadToHeadResult{
		DriverA:     codeA,
		DriverB:     codeB,
		MedianDelta: round3(median(timesA) - median(timesB)),
		BestDelta:   round3(bestA - bestB),
		WinsA:       winsA,
		WinsB:       winsB,
		LapsPaired:  paired,
	}
}

// PercentileResult describes a driver's lap-time distribution.
type PercentileResult struct {
	Driver   string  `json:"driver"`
	P10      float64 `json:"p10"`
	P50      float64 `json:"p50"`
	P90      float64 `json:"p90"`
	IQR      float64 `json:"iqr"`
	Outliers int     `json:"outliers"` // laps beyond 1.5 IQR of the quartiles
}

// Percentiles reports distribution quantiles per driver. Drivers with
// fewer than the configured minimum of valid laps are omitted.
func (a *Analyzer) Percentiles(s *f1.Session, drivers []string) []PercentileResult {
	var results []PercentileResult
	for _, code := range drivers {
		times := lapTimes(validLaps(s, code))
		if len(times) < a.cfg.MinValidLaps {
			continue
		}

		q1, q3 := quantile(0.25, times), quantile(0.75, times)
		iqr := q3 - q1
		outliers := 0
		for _, t := range times {
			if t < q1-1.5*iqr || t > q3+1.5*iqr {
				outliers++
			}
		}

		results = append(results, PercentileResult{
			Driver:   code,
			P10:      round3(quantile(0.1, times)),
			P50:      round3(quantile(0.5, times)),
			P90:      round3(quantile(0.9, times)),
			IQR:      round3(iqr),
			Outliers: outliers,
		})
	}
	return results
}

// PredictionResult ranks drivers by a composite qualifying score.
type PredictionResult struct {
	Driver         string  `json:"driver"`
	PredictedOrder int     `json:"predicted_order"`
	Score          float64 `json:"score"` // lower is better
	BestLap        float64 `json:"best_lap"`
	Spread         float64 `json:"spread"`
	TrendMs        float64 `json:"trend_ms"` // per-lap pace trend in milliseconds
}

// QualifyingPrediction scores each driver as best lap plus half the
// lap-time spread plus a weighted pace trend, then ranks ascending. The
// score rewards single-lap speed backed by stability and an improving
// trend. Drivers with too few valid laps are omitted.
func (a *Analyzer) QualifyingPrediction(s *f1.Session, drivers []string) []PredictionResult {
	var results []PredictionResult
	for _, code := range drivers {
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		times := lapTimes(laps)
		best, _ := minMax(times)
		_, slope := linearFit(lapNumbers(laps), times)
		trendMs := slope * 1000

		results = append(results, PredictionResult{
			Driver:  code,
			Score:   round3(best + 0.5*stdDev(times) + 0.3*trendMs/1000),
			BestLap: round3(best),
			Spread:  round3(stdDev(times)),
			TrendMs: round2(trendMs),
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	for i := range results {
		results[i].PredictedOrder = i + 1
	}
	return results
}

// ProjectionResult estimates championship points from finishing positions.
type ProjectionResult struct {
	Driver        string `json:"driver"`
	FinalPosition int    `json:"final_position"`
	Points        int    `json:"points"`
	FastestLap    bool   `json:"fastest_lap"` // session-fastest among selected drivers
}

// ChampionshipProjection awards points for each driver's final recorded
// position using the standard points table. Drivers with no position data
// are omitted; results are sorted by points descending.
func (a *Analyzer) ChampionshipProjection(s *f1.Session, drivers []string) []ProjectionResult {
	fastestDriver, fastest := "", 0.0
	for _, code := range drivers {
		if lap, ok := s.FastestLap(code); ok && (fastest == 0 || lap.Time < fastest) {
			fastestDriver, fastest = code, lap.Time
		}
	}

	var results []ProjectionResult
	for _, code := range drivers {
		points := positionTrace(s, code)
		if len(points) == 0 {
			continue
		}
		final := points[len(points)-1].Position
		results = append(results, ProjectionResult{
			Driver:        code,
			FinalPosition: final,
			Points:        f1.PointsForPosition(final),
			FastestLap:    code == fastestDriver,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		return results[i].FinalPosition < results[j].FinalPosition
	})
	return results
}
