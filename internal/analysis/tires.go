// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"github.com/pitwall-project/pitwall/internal/f1"
)

// StintResult describes one stint with its degradation fit.
type StintResult struct {
	Compound         f1.Compound `json:"compound"`
	StartLap         int         `json:"start_lap"`
	EndLap           int         `json:"end_lap"`
	Length           int         `json:"length"`
	DegradationRate  float64     `json:"degradation_rate"`  // seconds per lap
	TotalDegradation float64     `json:"total_degradation"` // rate x (length-1)
	InitialPace      float64     `json:"initial_pace"`      // fit intercept
	AvgLapTime       float64     `json:"avg_lap_time"`
	BestLapTime      float64     `json:"best_lap_time"`
	CliffLap         int         `json:"cliff_lap,omitempty"` // 0 = no cliff
}

// DegradationResult is the per-driver tire degradation view.
type DegradationResult struct {
	Driver string        `json:"driver"`
	Stints []StintResult `json:"stints"`
}

// TireDegradation fits a line to lap times within each stint and reports
// the slope as seconds of degradation per lap. The cliff lap is the first
// lap where the trailing 3-lap average exceeds the early-stint average by
// the configured threshold. Stints shorter than three timed laps are
// skipped; drivers with no usable stint are omitted.
func (a *Analyzer) TireDegradation(s *f1.Session, drivers []string) []DegradationResult {
	var results []DegradationResult
	for _, code := range drivers {
		laps := validLaps(s, code)
		var stintResults []StintResult

		for _, stint := range Stints(laps) {
			stintLaps := lapsInRange(laps, stint.StartLap, stint.EndLap)
			if len(stintLaps) < 3 {
				continue
			}

			times := lapTimes(stintLaps)
			idx := make([]float64, len(times))
			for i := range idx {
				idx[i] = float64(i)
			}
			intercept, slope := linearFit(idx, times)
			lo, _ := minMax(times)

			stintResults = append(stintResults, StintResult{
				Compound:         stint.Compound,
				StartLap:         stint.StartLap,
				EndLap:           stint.EndLap,
				Length:           stint.Length,
				DegradationRate:  round3(slope),
				TotalDegradation: round3(slope * float64(len(times)-1)),
				InitialPace:      round3(intercept),
				AvgLapTime:       round3(mean(times)),
				BestLapTime:      round3(lo),
				CliffLap:         cliffLap(stintLaps, a.cfg.TireCliffSeconds),
			})
		}

		if len(stintResults) > 0 {
			results = append(results, DegradationResult{Driver: code, Stints: stintResults})
		}
	}
	return results
}

// cliffLap returns the number of the first lap whose trailing 3-lap mean
// exceeds the early-stint mean by threshold seconds, 0 when no cliff.
// The early-stint reference is the first three laps.
func cliffLap(stintLaps []f1.Lap, threshold float64) int {
	if len(stintLaps) < 4 {
		return 0
	}
	times := lapTimes(stintLaps)
	early := mean(times[:3])

	for i := 3; i < len(times); i++ {
		trailing := mean(times[i-2 : i+1])
		if trailing > early+threshold {
			return stintLaps[i].Number
		}
	}
	return 0
}

// lapsInRange filters laps by inclusive lap-number bounds.
func lapsInRange(laps []f1.Lap, start, end int) []f1.Lap {
	var out []f1.Lap
	for _, lap := range laps {
		if lap.Number >= start && lap.Number <= end {
			out = append(out, lap)
		}
	}
	return out
}

// StrategyResult summarizes a driver's tire strategy.
type StrategyResult struct {
	Driver       string        `json:"driver"`
	Strategy     string        `json:"strategy"` // No-stop, One-stop, Two-stop, Multi-stop
	StopCount    int           `json:"stop_count"`
	Stints       []f1.Stint    `json:"stints"`
	Compounds    []f1.Compound `json:"compounds"`
	LongestStint int           `json:"longest_stint"`
}

// TireStrategy segments each driver's race into stints and labels the
// resulting strategy. Drivers with no laps are omitted.
func (a *Analyzer) TireStrategy(s *f1.Session, drivers []string) []StrategyResult {
	var results []StrategyResult
	for _, code := range drivers {
		laps := s.DriverLaps(code)
		stints := Stints(laps)
		if len(stints) == 0 {
			continue
		}

		var compounds []f1.Compound
		longest := 0
		for _, stint := range stints {
			compounds = append(compounds, stint.Compound)
			if stint.Length > longest {
				longest = stint.Length
			}
		}

		results = append(results, StrategyResult{
			Driver:       code,
			Strategy:     strategyLabel(len(stints) - 1),
			StopCount:    len(stints) - 1,
			Stints:       stints,
			Compounds:    compounds,
			LongestStint: longest,
		})
	}
	return results
}

func strategyLabel(stops int) string {
	switch stops {
	case 0:
		return "No-stop"
	case 1:
		return "One-stop"
	case 2:
		return "Two-stop"
	default:
		return "Multi-stop"
	}
}
