// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"github.com/pitwall-project/pitwall/internal/f1"
)

// ConsistencyResult summarizes lap-time spread for one driver.
type ConsistencyResult struct {
	Driver           string  `json:"driver"`
	MeanLapTime      float64 `json:"mean_lap_time"`
	StdDev           float64 `json:"std_dev"`
	CoefficientOfVar float64 `json:"coefficient_of_variation"` // percent
	ConsistencyScore float64 `json:"consistency_score"`        // 1 / (1 + std), in (0, 1]
	FastestLap       float64 `json:"fastest_lap"`
	SlowestLap       float64 `json:"slowest_lap"`
	TotalLaps        int     `json:"total_laps"`
	FormattedFastest string  `json:"formatted_fastest"`
	FormattedMean    string  `json:"formatted_mean"`
}

// Consistency computes lap-time consistency over valid laps. Drivers with
// fewer than the configured minimum of timed laps are omitted.
func (a *Analyzer) Consistency(s *f1.Session, drivers []string) []ConsistencyResult {
	var results []ConsistencyResult
	for _, code := range drivers {
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		times := lapTimes(laps)
		m := mean(times)
		sd := stdDev(times)
		lo, hi := minMax(times)

		results = append(results, ConsistencyResult{
			Driver:           code,
			MeanLapTime:      round3(m),
			StdDev:           round3(sd),
			CoefficientOfVar: round2(sd / m * 100),
			ConsistencyScore: 1 / (1 + sd),
			FastestLap:       round3(lo),
			SlowestLap:       round3(hi),
			TotalLaps:        len(laps),
			FormattedFastest: f1.FormatLapTime(lo),
			FormattedMean:    f1.FormatLapTime(m),
		})
	}
	return results
}
