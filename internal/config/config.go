// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package config provides layered configuration for Pitwall:
// struct defaults, an optional YAML file, and environment overrides.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Pitwall server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Provider ProviderConfig `koanf:"provider"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// ProviderConfig holds upstream timing-data provider settings.
type ProviderConfig struct {
	// BaseURL is the upstream timing API root. Empty selects the built-in
	// mock provider (fixture data, no network).
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// CacheDir is the on-disk cache for raw session payloads.
	// Empty disables caching.
	CacheDir string `koanf:"cache_dir"`

	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
}

// AnalysisConfig holds tunable analysis constants.
//
// PitTimeFactor and TireCliffSeconds are heuristics carried over from the
// original analysis formulas, not ground truth: a lap is flagged as a pit
// lap when its time exceeds PitTimeFactor times the driver's median, and a
// stint hits the "cliff" when a trailing 3-lap average exceeds the
// early-stint average by TireCliffSeconds.
type AnalysisConfig struct {
	PitTimeFactor     float64 `koanf:"pit_time_factor"`
	TireCliffSeconds  float64 `koanf:"tire_cliff_seconds"`
	Minisectors       int     `koanf:"minisectors"`
	ResamplePoints    int     `koanf:"resample_points"`
	CorneringSpeedKPH float64 `koanf:"cornering_speed_kph"`
	MinValidLaps      int     `koanf:"min_valid_laps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8099,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},

			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Provider: ProviderConfig{
			BaseURL:            "",
			Timeout:            60 * time.Second,
			CacheDir:           "",
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Analysis: AnalysisConfig{
			PitTimeFactor:     1.8,
			TireCliffSeconds:  1.0,
			Minisectors:       25,
			ResamplePoints:    1000,
			CorneringSpeedKPH: 200,
			MinValidLaps:      3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests <= 0 {
			return fmt.Errorf("server.rate_limit_requests must be positive, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("server.rate_limit_window must be positive, got %s", c.Server.RateLimitWindow)
		}
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Analysis.PitTimeFactor <= 1.0 {
		return fmt.Errorf("analysis.pit_time_factor must exceed 1.0, got %g", c.Analysis.PitTimeFactor)
	}
	if c.Analysis.TireCliffSeconds <= 0 {
		return fmt.Errorf("analysis.tire_cliff_seconds must be positive, got %g", c.Analysis.TireCliffSeconds)
	}
	if c.Analysis.Minisectors < 2 {
		return fmt.Errorf("analysis.minisectors must be at least 2, got %d", c.Analysis.Minisectors)
	}
	if c.Analysis.ResamplePoints < c.Analysis.Minisectors {
		return fmt.Errorf("analysis.resample_points (%d) must be at least analysis.minisectors (%d)",
			c.Analysis.ResamplePoints, c.Analysis.Minisectors)
	}
	if c.Analysis.CorneringSpeedKPH <= 0 {
		return fmt.Errorf("analysis.cornering_speed_kph must be positive, got %g", c.Analysis.CorneringSpeedKPH)
	}
	if c.Analysis.MinValidLaps < 2 {
		return fmt.Errorf("analysis.min_valid_laps must be at least 2, got %d", c.Analysis.MinValidLaps)
	}
	return nil
}
