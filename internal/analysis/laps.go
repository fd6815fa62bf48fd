// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"github.com/pitwall-project/pitwall/internal/f1"
)

// validLaps returns the driver's timed, non-pit laps in lap order.
func validLaps(s *f1.Session, code string) []f1.Lap {
	var out []f1.Lap
	for _, lap := range s.DriverLaps(code) {
		if !lap.HasTime() || lap.PitIn || lap.PitOut {
			continue
		}
		out = append(out, lap)
	}
	return out
}

// lapTimes extracts the times of the given laps in seconds.
func lapTimes(laps []f1.Lap) []float64 {
	times := make([]float64, 0, len(laps))
	for _, lap := range laps {
		times = append(times, lap.Time)
	}
	return times
}

// lapNumbers extracts lap numbers as floats for regression input.
func lapNumbers(laps []f1.Lap) []float64 {
	nums := make([]float64, 0, len(laps))
	for _, lap := range laps {
		nums = append(nums, float64(lap.Number))
	}
	return nums
}

// Stints groups a driver's consecutive laps by tire compound. Laps must be
// in ascending lap-number order; laps with no compound extend the current
// stint. The result is recomputed on demand and never stored.
func Stints(laps []f1.Lap) []f1.Stint {
	var stints []f1.Stint
	var current *f1.Stint

	for _, lap := range laps {
		compound := lap.Compound
		if current != nil && (compound == current.Compound || compound == "") {
			current.EndLap = lap.Number
			current.Length++
			continue
		}
		if current != nil {
			stints = append(stints, *current)
		}
		current = &f1.Stint{
			Driver:   lap.Driver,
			Compound: compound,
			StartLap: lap.Number,
			EndLap:   lap.Number,
			Length:   1,
		}
	}
	if current != nil {
		stints = append(stints, *current)
	}
	return stints
}

// PitLaps flags laps whose time exceeds factor times the driver's median
// lap time. The detector is a pure function of its inputs; the factor is a
// heuristic, not ground truth. Returns the flagged lap numbers in order.
func PitLaps(laps []f1.Lap, factor float64) []int {
	var times []float64
	for _, lap := range laps {
		if lap.HasTime() {
			times = append(times, lap.Time)
		}
	}
	if len(times) == 0 {
		return nil
	}

	threshold := median(times) * factor
	var flagged []int
	for _, lap := range laps {
		if lap.HasTime() && lap.Time > threshold {
			flagged = append(flagged, lap.Number)
		}
	}
	return flagged
}
