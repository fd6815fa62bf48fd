// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

// Config holds the tunable constants used across analyses. The pit and
// cliff values are heuristics carried from the original formulas.
type Config struct {
	// PitTimeFactor flags a lap as a pit lap when its time exceeds this
	// multiple of the driver's median lap time.
	PitTimeFactor float64

	// TireCliffSeconds is the trailing-average excess over the
	// early-stint average that marks the tire performance cliff.
	TireCliffSeconds float64

	// Minisectors is the number of track bins for dominance attribution.
	Minisectors int

	// ResamplePoints is the arc-length resampling resolution for
	// telemetry-over-distance analyses.
	ResamplePoints int

	// CorneringSpeedKPH is the speed below which a sample counts as
	// cornering.
	CorneringSpeedKPH float64

	// MinValidLaps is the minimum timed-lap count for lap-statistics
	// analyses.
	MinValidLaps int
}

// DefaultConfig mirrors the original tool's constants.
func DefaultConfig() Config {
	return Config{
		PitTimeFactor:     1.8,
		TireCliffSeconds:  1.0,
		Minisectors:       25,
		ResamplePoints:    1000,
		CorneringSpeedKPH: 200,
		MinValidLaps:      3,
	}
}

// Analyzer runs every analysis with one shared configuration.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Analyzer {
	def := DefaultConfig()
	if cfg.PitTimeFactor <= 1 {
		cfg.PitTimeFactor = def.PitTimeFactor
	}
	if cfg.TireCliffSeconds <= 0 {
		cfg.TireCliffSeconds = def.TireCliffSeconds
	}
	if cfg.Minisectors < 2 {
		cfg.Minisectors = def.Minisectors
	}
	if cfg.ResamplePoints < cfg.Minisectors {
		cfg.ResamplePoints = def.ResamplePoints
	}
	if cfg.CorneringSpeedKPH <= 0 {
		cfg.CorneringSpeedKPH = def.CorneringSpeedKPH
	}
	if cfg.MinValidLaps < 2 {
		cfg.MinValidLaps = def.MinValidLaps
	}
	return &Analyzer{cfg: cfg}
}

// Configuration returns the active analysis constants.
func (a *Analyzer) Configuration() Config {
	return a.cfg
}
