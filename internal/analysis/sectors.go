// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"github.com/pitwall-project/pitwall/internal/f1"
)

// SectorStats summarizes one timing sector for a driver.
type SectorStats struct {
	Best float64 `json:"best"`
	Avg  float64 `json:"avg"`
	Std  float64 `json:"std"`
}

// SectorResult is the per-driver sector performance view.
type SectorResult struct {
	Driver          string        `json:"driver"`
	Sectors         []SectorStats `json:"sectors"` // index 0 = sector 1
	TheoreticalBest float64       `json:"theoretical_best"`
	FormattedBest   string        `json:"formatted_best"`
	ActualBest      float64       `json:"actual_best"`
	Delta           float64       `json:"delta"` // actual - theoretical
}

// sectorTimes collects the positive times of one sector across laps.
func sectorTimes(laps []f1.Lap, sector int) []float64 {
	var times []float64
	for _, lap := range laps {
		var t float64
		switch sector {
		case 1:
			t = lap.Sector1
		case 2:
			t = lap.Sector2
		default:
			t = lap.Sector3
		}
		if t > 0 {
			times = append(times, t)
		}
	}
	return times
}

// SectorPerformance reports best, average and spread per timing sector and
// the theoretical best lap built from the three best sectors. Drivers
// missing any sector data are omitted.
func (a *Analyzer) SectorPerformance(s *f1.Session, drivers []string) []SectorResult {
	var results []SectorResult
	for _, code := range drivers {
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		var sectors []SectorStats
		theoretical := 0.0
		complete := true
		for sector := 1; sector <= 3; sector++ {
			times := sectorTimes(laps, sector)
			if len(times) == 0 {
				complete = false
				break
			}
			lo, _ := minMax(times)
			theoretical += lo
			sectors = append(sectors, SectorStats{
				Best: round3(lo),
				Avg:  round3(mean(times)),
				Std:  round3(stdDev(times)),
			})
		}
		if !complete {
			continue
		}

		actual := 0.0
		if best, ok := s.FastestLap(code); ok {
			actual = best.Time
		}

		results = append(results, SectorResult{
			Driver:          code,
			Sectors:         sectors,
			TheoreticalBest: round3(theoretical),
			FormattedBest:   f1.FormatLapTime(theoretical),
			ActualBest:      round3(actual),
			Delta:           round3(actual - theoretical),
		})
	}
	return results
}

// SectorDominance names the fastest driver per timing sector.
type SectorDominance struct {
	Sector   int     `json:"sector"`
	Driver   string  `json:"driver"`
	BestTime float64 `json:"best_time"`
	Margin   float64 `json:"margin"` // gap to the second-best driver
}

// SectorDominanceAnalysis compares best sector times across the selected
// drivers. Sectors with no data for any driver are skipped.
func (a *Analyzer) SectorDominanceAnalysis(s *f1.Session, drivers []string) []SectorDominance {
	var results []SectorDominance
	for sector := 1; sector <= 3; sector++ {
		bestDriver, secondBest := "", 0.0
		best := 0.0
		for _, code := range drivers {
			times := sectorTimes(validLaps(s, code), sector)
			if len(times) == 0 {
				continue
			}
			lo, _ := minMax(times)
			switch {
			case bestDriver == "" || lo < best:
				if bestDriver != "" {
					secondBest = best
				}
				bestDriver, best = code, lo
			case secondBest == 0 || lo < secondBest:
				secondBest = lo
			}
		}
		if bestDriver == "" {
			continue
		}

		margin := 0.0
		if secondBest > 0 {
			margin = secondBest - best
		}
		results = append(results, SectorDominance{
			Sector:   sector,
			Driver:   bestDriver,
			BestTime: round3(best),
			Margin:   round3(margin),
		})
	}
	return results
}
