// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package chart builds declarative chart specifications from analysis
// results. Specs carry data and presentation hints only; rendering is the
// client's job. All builders are pure functions of their inputs.
package chart

import (
	"github.com/pitwall-project/pitwall/internal/analysis"
	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/f1/registry"
)

// Type selects the renderer a client should use for a spec.
type Type string

const (
	TypeBar     Type = "bar"
	TypeScatter Type = "scatter"
	TypeLine    Type = "line"
	TypeHeatmap Type = "heatmap"
	TypeTrack   Type = "track"
)

// Series is one named data series with a display color.
type Series struct {
	Name  string    `json:"name"`
	Color string    `json:"color"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`

	// Labels replaces X for categorical axes.
	Labels []string `json:"labels,omitempty"`
}

// Annotation is a reference line drawn across a chart.
type Annotation struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Axis  string  `json:"axis"` // "x" or "y"
}

// Spec is a declarative chart: everything a client needs to draw it.
type Spec struct {
	Type        Type         `json:"type"`
	Title       string       `json:"title"`
	XTitle      string       `json:"x_title"`
	YTitle      string       `json:"y_title"`
	Series      []Series     `json:"series"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// LapTimes charts each driver's lap times over lap number, with a mean
// reference line per driver when only one driver is plotted.
func LapTimes(results []analysis.LapTimesResult, reg *registry.Registry, label string) Spec {
	spec := Spec{
		Type:   TypeLine,
		Title:  "Lap Times - " + label,
		XTitle: "Lap",
		YTitle: "Lap Time (s)",
	}
	for _, r := range results {
		series := Series{Name: r.Driver, Color: reg.ColorFor(r.Driver)}
		var sum float64
		count := 0
		for _, lap := range r.Laps {
			if lap.Time <= 0 {
				continue
			}
			series.X = append(series.X, float64(lap.Number))
			series.Y = append(series.Y, lap.Time)
			sum += lap.Time
			count++
		}
		spec.Series = append(spec.Series, series)
		if len(results) == 1 && count > 0 {
			spec.Annotations = append(spec.Annotations, Annotation{
				Label: "Mean",
				Value: sum / float64(count),
				Axis:  "y",
			})
		}
	}
	return spec
}

// Consistency charts consistency scores as a bar chart.
func Consistency(results []analysis.ConsistencyResult, reg *registry.Registry, label string) Spec {
	spec := Spec{
		Type:   TypeBar,
		Title:  "Consistency - " + label,
		XTitle: "Driver",
		YTitle: "Consistency Score",
	}
	for _, r := range results {
		spec.Series = append(spec.Series, Series{
			Name:   r.Driver,
			Color:  reg.ColorFor(r.Driver),
			Labels: []string{r.Driver},
			Y:      []float64{r.ConsistencyScore},
		})
	}
	return spec
}

// Degradation charts per-stint lap-time trends colored by tire compound.
func Degradation(results []analysis.DegradationResult, label string) Spec {
	spec := Spec{
		Type:   TypeScatter,
		Title:  "Tire Degradation - " + label,
		XTitle: "Stint Lap",
		YTitle: "Degradation (s/lap)",
	}
	for _, r := range results {
		for _, stint := range r.Stints {
			spec.Series = append(spec.Series, Series{
				Name:   r.Driver + " " + string(stint.Compound),
				Color:  f1.TireColor(stint.Compound),
				Labels: []string{string(stint.Compound)},
				X:      []float64{float64(stint.StartLap)},
				Y:      []float64{stint.DegradationRate},
			})
		}
	}
	return spec
}

// Progression charts race position over laps, y-axis inverted by the
// client (position 1 on top).
func Progression(results []analysis.ProgressionResult, reg *registry.Registry, label string) Spec {
	spec := Spec{
		Type:   TypeLine,
		Title:  "Race Progression - " + label,
		XTitle: "Lap",
		YTitle: "Position",
	}
	for _, r := range results {
		series := Series{Name: r.Driver, Color: reg.ColorFor(r.Driver)}
		for _, p := range r.Positions {
			series.X = append(series.X, float64(p.Lap))
			series.Y = append(series.Y, float64(p.Position))
		}
		spec.Series = append(spec.Series, series)
	}
	return spec
}

// TrackDominance charts the resampled racing line with one series per
// mini-sector, colored by the winning driver.
func TrackDominance(result *analysis.DominanceResult, reg *registry.Registry, label string) Spec {
	spec := Spec{
		Type:   TypeTrack,
		Title:  "Track Dominance - " + label,
		XTitle: "X",
		YTitle: "Y",
	}
	if result == nil {
		return spec
	}

	winner := make(map[int]string, len(result.Bins))
	for _, bin := range result.Bins {
		winner[bin.Index] = bin.Driver
	}

	// One polyline per contiguous run of same-winner points.
	var current *Series
	for _, p := range result.Path {
		name := winner[p.Minisector]
		if current == nil || current.Name != name {
			if current != nil {
				spec.Series = append(spec.Series, *current)
			}
			current = &Series{Name: name, Color: reg.ColorFor(name)}
		}
		current.X = append(current.X, p.X)
		current.Y = append(current.Y, p.Y)
	}
	if current != nil {
		spec.Series = append(spec.Series, *current)
	}
	return spec
}

// SpeedMap charts one driver's racing line colored by speed.
func SpeedMap(results []analysis.TrackMapResult, reg *registry.Registry, label string) Spec {
	spec := Spec{
		Type:   TypeHeatmap,
		Title:  "Speed Map - " + label,
		XTitle: "X",
		YTitle: "Y",
	}
	for _, r := range results {
		series := Series{Name: r.Driver, Color: reg.ColorFor(r.Driver)}
		for _, p := range r.Points {
			series.X = append(series.X, p.X)
			series.Y = append(series.Y, p.Y)
		}
		spec.Series = append(spec.Series, series)
	}
	return spec
}
