// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}

	if cfg.Analysis.PitTimeFactor != 1.8 {
		t.Errorf("pit_time_factor default = %g, want 1.8", cfg.Analysis.PitTimeFactor)
	}
	if cfg.Analysis.TireCliffSeconds != 1.0 {
		t.Errorf("tire_cliff_seconds default = %g, want 1.0", cfg.Analysis.TireCliffSeconds)
	}
	if cfg.Analysis.Minisectors != 25 {
		t.Errorf("minisectors default = %d, want 25", cfg.Analysis.Minisectors)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRequests = 0 }},
		{"zero provider timeout", func(c *Config) { c.Provider.Timeout = 0 }},
		{"pit factor at one", func(c *Config) { c.Analysis.PitTimeFactor = 1.0 }},
		{"negative cliff", func(c *Config) { c.Analysis.TireCliffSeconds = -0.5 }},
		{"one minisector", func(c *Config) { c.Analysis.Minisectors = 1 }},
		{"resample below minisectors", func(c *Config) { c.Analysis.ResamplePoints = 10 }},
		{"zero cornering speed", func(c *Config) { c.Analysis.CorneringSpeedKPH = 0 }},
		{"one valid lap", func(c *Config) { c.Analysis.MinValidLaps = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateAllowsDisabledRateLimit(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Server.RateLimitDisabled = true
	cfg.Server.RateLimitRequests = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limit should skip limit checks, got: %v", err)
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"PITWALL_SERVER_PORT", "server.port"},
		{"PITWALL_ANALYSIS_PIT_TIME_FACTOR", "analysis.pit_time_factor"},
		{"PITWALL_PROVIDER_BASE_URL", "provider.base_url"},
		{"PITWALL_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("PITWALL_SERVER_PORT", "9123")
	t.Setenv("PITWALL_ANALYSIS_MINISECTORS", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9123 {
		t.Errorf("server.port = %d, want 9123", cfg.Server.Port)
	}
	if cfg.Analysis.Minisectors != 40 {
		t.Errorf("analysis.minisectors = %d, want 40", cfg.Analysis.Minisectors)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("server.read_timeout = %s, want default 15s", cfg.Server.ReadTimeout)
	}
}
