// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"github.com/pitwall-project/pitwall/internal/f1"
)

// PitStopResult reports the pit-stop heuristic for one driver.
type PitStopResult struct {
	Driver        string  `json:"driver"`
	StopCount     int     `json:"stop_count"`
	PitLaps       []int   `json:"pit_laps"`
	MedianLapTime float64 `json:"median_lap_time"`
	Threshold     float64 `json:"threshold"` // median x pit factor
}

// PitStops flags pit laps by comparing each lap against the driver's
// median time scaled by the configured factor. Drivers with no timed laps
// are omitted.
func (a *Analyzer) PitStops(s *f1.Session, drivers []string) []PitStopResult {
	var results []PitStopResult
	for _, code := range drivers {
		laps := s.DriverLaps(code)
		var times []float64
		for _, lap := range laps {
			if lap.HasTime() {
				times = append(times, lap.Time)
			}
		}
		if len(times) == 0 {
			continue
		}

		med := median(times)
		pitLaps := PitLaps(laps, a.cfg.PitTimeFactor)

		results = append(results, PitStopResult{
			Driver:        code,
			StopCount:     len(pitLaps),
			PitLaps:       pitLaps,
			MedianLapTime: round3(med),
			Threshold:     round3(med * a.cfg.PitTimeFactor),
		})
	}
	return results
}
