// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"math"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// BrakeResult profiles braking on the driver's fastest lap.
type BrakeResult struct {
	Driver           string  `json:"driver"`
	BrakingPct       float64 `json:"braking_pct"` // share of lap spent braking
	BrakeZones       int     `json:"brake_zones"`
	AvgBrakePressure float64 `json:"avg_brake_pressure"`
	HeavyBrakingPct  float64 `json:"heavy_braking_pct"` // brake > 80
	Efficiency       float64 `json:"efficiency"`        // 100 - braking share
}

// BrakeAnalysis reports braking profiles. Drivers without telemetry are
// omitted.
func (a *Analyzer) BrakeAnalysis(s *f1.Session, drivers []string) []BrakeResult {
	var results []BrakeResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		braking := threshold(samples, brakeOf, func(t f1.TelemetrySample) bool { return t.Brake > 0 })
		heavy := threshold(samples, brakeOf, func(t f1.TelemetrySample) bool { return t.Brake > 80 })

		results = append(results, BrakeResult{
			Driver:           code,
			BrakingPct:       round2(braking.Share * 100),
			BrakeZones:       braking.Zones,
			AvgBrakePressure: round2(zeroIfNaN(braking.Mean)),
			HeavyBrakingPct:  round2(heavy.Share * 100),
			Efficiency:       round2(100 - braking.Share*100),
		})
	}
	return results
}

// SpeedResult summarizes outright speed on the fastest lap.
type SpeedResult struct {
	Driver           string  `json:"driver"`
	MaxSpeed         float64 `json:"max_speed"`
	AvgSpeed         float64 `json:"avg_speed"`
	MinSpeed         float64 `json:"min_speed"`
	SpeedConsistency float64 `json:"speed_consistency"` // 100 - CV%
}

// SpeedAnalysis reports top and average speed per driver.
func (a *Analyzer) SpeedAnalysis(s *f1.Session, drivers []string) []SpeedResult {
	var results []SpeedResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		all := threshold(samples, speedOf, nil)
		consistency := 0.0
		if all.Mean > 0 {
			consistency = 100 - all.Std/all.Mean*100
		}
		results = append(results, SpeedResult{
			Driver:           code,
			MaxSpeed:         round2(all.Max),
			AvgSpeed:         round2(all.Mean),
			MinSpeed:         round2(all.Min),
			SpeedConsistency: round2(consistency),
		})
	}
	return results
}

// CorneringResult profiles low-speed sections of the fastest lap.
type CorneringResult struct {
	Driver         string  `json:"driver"`
	CornerZones    int     `json:"corner_zones"`
	CorneringPct   float64 `json:"cornering_pct"`
	MinCornerSpeed float64 `json:"min_corner_speed"`
	AvgCornerSpeed float64 `json:"avg_corner_speed"`
}

// CorneringAnalysis thresholds the speed channel at the configured
// cornering speed and reports time spent and pace in corners.
func (a *Analyzer) CorneringAnalysis(s *f1.Session, drivers []string) []CorneringResult {
	var results []CorneringResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		corners := threshold(samples, speedOf, func(t f1.TelemetrySample) bool {
			return t.Speed < a.cfg.CorneringSpeedKPH
		})
		if corners.Count == 0 {
			continue
		}

		results = append(results, CorneringResult{
			Driver:         code,
			CornerZones:    corners.Zones,
			CorneringPct:   round2(corners.Share * 100),
			MinCornerSpeed: round2(corners.Min),
			AvgCornerSpeed: round2(corners.Mean),
		})
	}
	return results
}

// GearResult profiles gearbox usage on the fastest lap.
type GearResult struct {
	Driver        string          `json:"driver"`
	GearChanges   int             `json:"gear_changes"`
	ChangesPerKm  float64         `json:"changes_per_km"`
	HighestGear   int             `json:"highest_gear"`
	TimePerGear   map[int]float64 `json:"time_per_gear"` // share of samples per gear, percent
	MostUsedGear  int             `json:"most_used_gear"`
}

// GearAnalysis reports shift counts and per-gear usage shares.
func (a *Analyzer) GearAnalysis(s *f1.Session, drivers []string) []GearResult {
	var results []GearResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		usage := make(map[int]float64)
		highest, mostUsed := 0, 0
		counted := 0
		for _, t := range samples {
			if t.Gear <= 0 {
				continue
			}
			usage[t.Gear]++
			counted++
			if t.Gear > highest {
				highest = t.Gear
			}
		}
		if counted == 0 {
			continue
		}
		for gear := range usage {
			usage[gear] = round2(usage[gear] / float64(counted) * 100)
			if mostUsed == 0 || usage[gear] > usage[mostUsed] {
				mostUsed = gear
			}
		}

		changes := gearChanges(samples)
		km := lapDistance(samples) / 1000
		perKm := 0.0
		if km > 0 {
			perKm = float64(changes) / km
		}

		results = append(results, GearResult{
			Driver:       code,
			GearChanges:  changes,
			ChangesPerKm: round2(perKm),
			HighestGear:  highest,
			TimePerGear:  usage,
			MostUsedGear: mostUsed,
		})
	}
	return results
}

// PowerResult profiles throttle application and acceleration.
type PowerResult struct {
	Driver          string  `json:"driver"`
	FullThrottlePct float64 `json:"full_throttle_pct"`
	AvgThrottle     float64 `json:"avg_throttle"`
	PowerEfficiency float64 `json:"power_efficiency"` // (avg/max speed) x (avg throttle / 100) x 100
	AccelZones      int     `json:"accel_zones"`
	DRSPct          float64 `json:"drs_pct"`
}

// PowerAnalysis reports throttle and deployment metrics. Doubles as the
// energy-recovery view: full-throttle share and acceleration zones bound
// deployment, DRS share bounds drag reduction.
func (a *Analyzer) PowerAnalysis(s *f1.Session, drivers []string) []PowerResult {
	var results []PowerResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		all := threshold(samples, throttleOf, nil)
		full := threshold(samples, throttleOf, func(t f1.TelemetrySample) bool { return t.Throttle >= 99 })
		accel := threshold(samples, throttleOf, func(t f1.TelemetrySample) bool {
			return t.Throttle > 90 && t.Brake == 0
		})
		drs := threshold(samples, speedOf, func(t f1.TelemetrySample) bool { return t.DRS })
		speeds := threshold(samples, speedOf, nil)

		efficiency := 0.0
		if speeds.Max > 0 {
			efficiency = speeds.Mean / speeds.Max * (all.Mean / 100) * 100
		}

		results = append(results, PowerResult{
			Driver:          code,
			FullThrottlePct: round2(full.Share * 100),
			AvgThrottle:     round2(all.Mean),
			PowerEfficiency: round2(efficiency),
			AccelZones:      accel.Zones,
			DRSPct:          round2(drs.Share * 100),
		})
	}
	return results
}

// MechanicalResult scores grip across speed bands on the fastest lap.
type MechanicalResult struct {
	Driver             string  `json:"driver"`
	LowSpeedGrip       float64 `json:"low_speed_grip"`       // consistency below 100 km/h
	MediumSpeedBalance float64 `json:"medium_speed_balance"` // efficiency 100-200 km/h
	HighSpeedStability float64 `json:"high_speed_stability"` // consistency at 200+ km/h
	MechanicalScore    float64 `json:"mechanical_score"`
}

// MechanicalAnalysis splits the lap into three speed bands and scores each.
// An empty band scores the neutral 50.
func (a *Analyzer) MechanicalAnalysis(s *f1.Session, drivers []string) []MechanicalResult {
	var results []MechanicalResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		low := threshold(samples, speedOf, func(t f1.TelemetrySample) bool { return t.Speed < 100 })
		medium := threshold(samples, speedOf, func(t f1.TelemetrySample) bool {
			return t.Speed >= 100 && t.Speed < 200
		})
		high := threshold(samples, speedOf, func(t f1.TelemetrySample) bool { return t.Speed >= 200 })

		lowGrip := 50.0
		if low.Count > 0 && low.Mean > 0 {
			lowGrip = 100 - low.Std/low.Mean*100
		}
		mediumBalance := 50.0
		if medium.Count > 0 {
			mediumBalance = medium.Mean / 150 * 100
		}
		highStability := 50.0
		if high.Count > 0 && high.Mean > 0 {
			highStability = 100 - high.Std/high.Mean*100
		}

		results = append(results, MechanicalResult{
			Driver:             code,
			LowSpeedGrip:       round2(lowGrip),
			MediumSpeedBalance: round2(mediumBalance),
			HighSpeedStability: round2(highStability),
			MechanicalScore:    round2((lowGrip + mediumBalance + highStability) / 3),
		})
	}
	return results
}

// StressResult estimates component stress from the fastest lap.
type StressResult struct {
	Driver            string  `json:"driver"`
	EngineStressPct   float64 `json:"engine_stress_pct"`   // time above the 90th RPM percentile
	BrakeStressPct    float64 `json:"brake_stress_pct"`    // time above 80 brake
	ThrottleStressPct float64 `json:"throttle_stress_pct"` // time at full throttle
	ReliabilityScore  float64 `json:"reliability_score"`   // 100 - mean stress
}

// StressAnalysis reports per-component stress shares.
func (a *Analyzer) StressAnalysis(s *f1.Session, drivers []string) []StressResult {
	var results []StressResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		var rpms []float64
		for _, t := range samples {
			if t.RPM > 0 {
				rpms = append(rpms, t.RPM)
			}
		}

		engine := 50.0
		if len(rpms) > 0 {
			p90 := quantile(0.9, rpms)
			hot := threshold(samples, rpmOf, func(t f1.TelemetrySample) bool { return t.RPM > p90 })
			engine = hot.Share * 100
		}

		brake := threshold(samples, brakeOf, func(t f1.TelemetrySample) bool { return t.Brake > 80 })
		full := threshold(samples, throttleOf, func(t f1.TelemetrySample) bool { return t.Throttle >= 99 })

		avgStress := (engine + brake.Share*100 + full.Share*100) / 3
		results = append(results, StressResult{
			Driver:            code,
			EngineStressPct:   round2(engine),
			BrakeStressPct:    round2(brake.Share * 100),
			ThrottleStressPct: round2(full.Share * 100),
			ReliabilityScore:  round2(math.Max(0, 100-avgStress)),
		})
	}
	return results
}

// DownforceResult estimates aerodynamic character from speed distribution.
type DownforceResult struct {
	Driver         string  `json:"driver"`
	AeroEfficiency float64 `json:"aero_efficiency"` // 100 x avg / top speed
	CornerSpeed    float64 `json:"corner_speed"`    // mean below 80% of top speed
	StraightSpeed  float64 `json:"straight_speed"`  // mean above 90% of top speed
	AeroBalance    float64 `json:"aero_balance"`    // corner / straight x 100
}

// DownforceAnalysis compares cornering and straight-line speed.
func (a *Analyzer) DownforceAnalysis(s *f1.Session, drivers []string) []DownforceResult {
	var results []DownforceResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}

		all := threshold(samples, speedOf, nil)
		if all.Max <= 0 {
			continue
		}
		corner := threshold(samples, speedOf, func(t f1.TelemetrySample) bool { return t.Speed < 0.8*all.Max })
		straight := threshold(samples, speedOf, func(t f1.TelemetrySample) bool { return t.Speed > 0.9*all.Max })

		balance := 0.0
		if straight.Count > 0 && corner.Count > 0 {
			balance = corner.Mean / straight.Mean * 100
		}

		results = append(results, DownforceResult{
			Driver:         code,
			AeroEfficiency: round2(all.Mean / all.Max * 100),
			CornerSpeed:    round2(zeroIfNaN(corner.Mean)),
			StraightSpeed:  round2(zeroIfNaN(straight.Mean)),
			AeroBalance:    round2(balance),
		})
	}
	return results
}

// CompositeResult blends pace, consistency and throttle into one index.
type CompositeResult struct {
	Driver           string  `json:"driver"`
	SpeedScore       float64 `json:"speed_score"`       // avg/max speed share
	ConsistencyScore float64 `json:"consistency_score"` // 100 - lap-time CV%
	ThrottleScore    float64 `json:"throttle_score"`    // full-throttle share
	CompositeIndex   float64 `json:"composite_index"`   // 0.4 speed + 0.3 consistency + 0.3 throttle
}

// CompositeAnalysis blends speed, lap consistency and throttle commitment
// into one 0-100 index. Needs both telemetry and enough timed laps.
func (a *Analyzer) CompositeAnalysis(s *f1.Session, drivers []string) []CompositeResult {
	var results []CompositeResult
	for _, code := range drivers {
		samples, ok := s.FastestTelemetry(code)
		if !ok {
			continue
		}
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		speeds := threshold(samples, speedOf, nil)
		full := threshold(samples, throttleOf, func(t f1.TelemetrySample) bool { return t.Throttle >= 99 })
		times := lapTimes(laps)

		speedScore := 0.0
		if speeds.Max > 0 {
			speedScore = speeds.Mean / speeds.Max * 100
		}
		consistency := math.Max(0, 100-stdDev(times)/mean(times)*100)
		throttleScore := full.Share * 100

		results = append(results, CompositeResult{
			Driver:           code,
			SpeedScore:       round2(speedScore),
			ConsistencyScore: round2(consistency),
			ThrottleScore:    round2(throttleScore),
			CompositeIndex:   round2(0.4*speedScore + 0.3*consistency + 0.3*throttleScore),
		})
	}
	return results
}

// zeroIfNaN maps NaN to zero for JSON-safe payloads.
func zeroIfNaN(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}
