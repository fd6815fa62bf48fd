// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"math"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// LapRecord is one lap in the lap-times listing.
type LapRecord struct {
	Number    int         `json:"number"`
	Time      float64     `json:"time"`
	Formatted string      `json:"formatted"`
	Compound  f1.Compound `json:"compound"`
	Position  int         `json:"position,omitempty"`
	Pit       bool        `json:"pit"`
}

// LapTimesResult lists a driver's laps with formatted times.
type LapTimesResult struct {
	Driver  string      `json:"driver"`
	Laps    []LapRecord `json:"laps"`
	Fastest float64     `json:"fastest"`
}

// LapTimes returns every recorded lap per driver, untimed laps included
// (formatted as "N/A"). Drivers with no laps are omitted.
func (a *Analyzer) LapTimes(s *f1.Session, drivers []string) []LapTimesResult {
	var results []LapTimesResult
	for _, code := range drivers {
		laps := s.DriverLaps(code)
		if len(laps) == 0 {
			continue
		}

		records := make([]LapRecord, 0, len(laps))
		fastest := 0.0
		for _, lap := range laps {
			if lap.HasTime() && (fastest == 0 || lap.Time < fastest) {
				fastest = lap.Time
			}
			records = append(records, LapRecord{
				Number:    lap.Number,
				Time:      round3(lap.Time),
				Formatted: f1.FormatLapTime(lap.Time),
				Compound:  lap.Compound,
				Position:  lap.Position,
				Pit:       lap.PitIn || lap.PitOut,
			})
		}

		results = append(results, LapTimesResult{
			Driver:  code,
			Laps:    records,
			Fastest: round3(fastest),
		})
	}
	return results
}

// PositionPoint is a driver's position on one lap.
type PositionPoint struct {
	Lap      int `json:"lap"`
	Position int `json:"position"`
}

// ProgressionResult tracks a driver's position through the race.
type ProgressionResult struct {
	Driver        string          `json:"driver"`
	StartPosition int             `json:"start_position"`
	EndPosition   int             `json:"end_position"`
	NetChange     int             `json:"net_change"` // positive = positions gained
	BestPosition  int             `json:"best_position"`
	Positions     []PositionPoint `json:"positions"`
}

// RaceProgression reports per-lap positions and the net places gained or
// lost. Drivers with no position data are omitted.
func (a *Analyzer) RaceProgression(s *f1.Session, drivers []string) []ProgressionResult {
	var results []ProgressionResult
	for _, code := range drivers {
		points := positionTrace(s, code)
		if len(points) == 0 {
			continue
		}

		best := points[0].Position
		for _, p := range points {
			if p.Position < best {
				best = p.Position
			}
		}

		start, end := points[0].Position, points[len(points)-1].Position
		results = append(results, ProgressionResult{
			Driver:        code,
			StartPosition: start,
			EndPosition:   end,
			NetChange:     start - end,
			BestPosition:  best,
			Positions:     points,
		})
	}
	return results
}

func positionTrace(s *f1.Session, code string) []PositionPoint {
	var points []PositionPoint
	for _, lap := range s.DriverLaps(code) {
		if lap.Position > 0 {
			points = append(points, PositionPoint{Lap: lap.Number, Position: lap.Position})
		}
	}
	return points
}

// OvertakingResult scores racecraft from lap-to-lap position changes.
type OvertakingResult struct {
	Driver             string  `json:"driver"`
	PositionsGained    int     `json:"positions_gained"` // sum of per-lap gains
	PositionsLost      int     `json:"positions_lost"`
	NetChange          int     `json:"net_change"`
	BusiestLap         int     `json:"busiest_lap"`         // lap with the largest swing, 0 = none
	RacingAggression   float64 `json:"racing_aggression"`   // position changes per lap, percent
	PositionVolatility float64 `json:"position_volatility"` // std of per-lap deltas
	RacecraftScore     float64 `json:"racecraft_score"`     // 100 - 10x volatility; 50 without a pass
}

// Overtaking counts the per-lap position swings for each driver. A gain on
// one lap is one or more positions taken since the previous lap; pit-lane
// swings count the same as on-track passes. Aggression is the total swing
// per driven lap, volatility the spread of the per-lap deltas, and the
// racecraft score penalizes volatility once the driver has actually passed
// someone.
func (a *Analyzer) Overtaking(s *f1.Session, drivers []string) []OvertakingResult {
	var results []OvertakingResult
	for _, code := range drivers {
		points := positionTrace(s, code)
		if len(points) < 2 {
			continue
		}

		gained, lost, busiestLap, busiest := 0, 0, 0, 0
		deltas := make([]float64, 0, len(points)-1)
		for i := 1; i < len(points); i++ {
			delta := points[i-1].Position - points[i].Position
			deltas = append(deltas, float64(delta))
			if delta > 0 {
				gained += delta
			} else {
				lost -= delta
			}
			if abs(delta) > busiest {
				busiest = abs(delta)
				busiestLap = points[i].Lap
			}
		}

		aggression := float64(gained+lost) / float64(len(s.DriverLaps(code))) * 100
		volatility := stdDev(deltas)
		racecraft := 50.0
		if gained > 0 {
			racecraft = math.Max(0, 100-volatility*10)
		}

		results = append(results, OvertakingResult{
			Driver:             code,
			PositionsGained:    gained,
			PositionsLost:      lost,
			NetChange:          gained - lost,
			BusiestLap:         busiestLap,
			RacingAggression:   round2(aggression),
			PositionVolatility: round2(volatility),
			RacecraftScore:     round2(racecraft),
		})
	}
	return results
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MomentumResult compares late-race pace against early-race pace.
type MomentumResult struct {
	Driver     string  `json:"driver"`
	EarlyPace  float64 `json:"early_pace"`  // mean of the first five timed laps
	RecentPace float64 `json:"recent_pace"` // mean of the last five timed laps
	Momentum   float64 `json:"momentum"`    // recent - early; negative = improving
	Trend      string  `json:"trend"`
}

// Momentum compares the mean of each driver's last five valid laps with
// the first five. Drivers with fewer than six valid laps are omitted.
func (a *Analyzer) Momentum(s *f1.Session, drivers []string) []MomentumResult {
	var results []MomentumResult
	for _, code := range drivers {
		times := lapTimes(validLaps(s, code))
		if len(times) < 6 {
			continue
		}

		window := 5
		early := mean(times[:window])
		recent := mean(times[len(times)-window:])
		momentum := recent - early

		trend := "stable"
		switch {
		case momentum < -0.1:
			trend = "improving"
		case momentum > 0.1:
			trend = "fading"
		}

		results = append(results, MomentumResult{
			Driver:     code,
			EarlyPace:  round3(early),
			RecentPace: round3(recent),
			Momentum:   round3(momentum),
			Trend:      trend,
		})
	}
	return results
}

// FuelLoadPoint estimates the remaining fuel at one lap, as a fraction of
// the starting load.
type FuelLoadPoint struct {
	Lap      int     `json:"lap"`
	Fraction float64 `json:"fraction"`
}

// FuelEffectResult fits the pace trend over a race distance.
type FuelEffectResult struct {
	Driver           string          `json:"driver"`
	PaceTrend        float64         `json:"pace_trend"`        // seconds per lap, negative = getting faster
	TotalImprovement float64         `json:"total_improvement"` // trend over the laps covered
	FuelAdjusted     float64         `json:"fuel_adjusted"`     // mean pace minus half the race-long trend
	FirstLapPace     float64         `json:"first_lap_pace"`    // fit value at the first lap
	FinalLapPace     float64         `json:"final_lap_pace"`    // fit value at the last lap
	FuelLoad         []FuelLoadPoint `json:"fuel_load"`
	LapsConsidered   int             `json:"laps_considered"`
}

// FuelEffect fits a line to valid lap times over lap numbers. The slope is
// dominated by fuel burn-off early in a race and tire wear late, so it is
// reported as a trend rather than a fuel figure. The fuel-load curve
// assumes linear consumption over the race distance. Drivers with fewer
// than the configured minimum of valid laps are omitted.
func (a *Analyzer) FuelEffect(s *f1.Session, drivers []string) []FuelEffectResult {
	var results []FuelEffectResult
	for _, code := range drivers {
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		nums := lapNumbers(laps)
		times := lapTimes(laps)
		intercept, slope := linearFit(nums, times)

		first := intercept + slope*nums[0]
		final := intercept + slope*nums[len(nums)-1]
		span := nums[len(nums)-1] - nums[0]

		distance := nums[len(nums)-1]
		load := make([]FuelLoadPoint, len(nums))
		for i, n := range nums {
			load[i] = FuelLoadPoint{
				Lap:      int(n),
				Fraction: round3((distance - n) / distance),
			}
		}

		results = append(results, FuelEffectResult{
			Driver:           code,
			PaceTrend:        round3(slope),
			TotalImprovement: round3(slope * span),
			FuelAdjusted:     round3(mean(times) - slope*span/2),
			FirstLapPace:     round3(first),
			FinalLapPace:     round3(final),
			FuelLoad:         load,
			LapsConsidered:   len(laps),
		})
	}
	return results
}
