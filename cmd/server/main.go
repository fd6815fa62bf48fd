// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package main is the entry point for the Pitwall server application.
//
// Pitwall is a self-hosted Formula 1 analytics service. It loads a session
// (practice, qualifying, sprint, or race) from a timing-data provider and
// exposes lap, tire, telemetry, and race-craft analyses over a REST API,
// each with a chart-ready payload where a visualization applies.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Provider: upstream timing client with circuit breaker and optional
//     BadgerDB payload cache, or the built-in mock provider
//  3. Analyzer: the analysis engine with its tunable constants
//  4. HTTP Server: chi router with the full analysis API under /api/v1
//  5. Supervisor: Suture tree that restarts the HTTP server on failure
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (PITWALL_ prefix, e.g. PITWALL_SERVER_PORT)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Leaving PITWALL_PROVIDER_BASE_URL unset selects the built-in mock
// provider, which serves deterministic fixture sessions with no network
// access. Useful for development and demos.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (shutdown_timeout)
//   - Closes the provider cache
//
// # Example Usage
//
// Mock provider, console logs:
//
//	export PITWALL_LOGGING_FORMAT=console
//	./pitwall
//
// Real provider with on-disk cache:
//
//	export PITWALL_PROVIDER_BASE_URL=https://timing.example.com
//	export PITWALL_PROVIDER_CACHE_DIR=/var/lib/pitwall/cache
//	./pitwall
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pitwall-project/pitwall/internal/analysis"
	"github.com/pitwall-project/pitwall/internal/api"
	"github.com/pitwall-project/pitwall/internal/config"
	"github.com/pitwall-project/pitwall/internal/logging"
	"github.com/pitwall-project/pitwall/internal/provider"
	"github.com/pitwall-project/pitwall/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Int("port", cfg.Server.Port).
		Bool("mock_provider", cfg.Provider.BaseURL == "").
		Str("cache_dir", cfg.Provider.CacheDir).
		Msg("Starting Pitwall server")

	prov, cache, err := buildProvider(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize provider")
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close provider cache")
			}
		}()
	}

	analyzer := analysis.New(analysis.Config{
		PitTimeFactor:     cfg.Analysis.PitTimeFactor,
		TireCliffSeconds:  cfg.Analysis.TireCliffSeconds,
		Minisectors:       cfg.Analysis.Minisectors,
		ResamplePoints:    cfg.Analysis.ResamplePoints,
		CorneringSpeedKPH: cfg.Analysis.CorneringSpeedKPH,
		MinValidLaps:      cfg.Analysis.MinValidLaps,
	})

	handler := api.NewHandler(prov, analyzer)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
		RateLimitDisabled: cfg.Server.RateLimitDisabled,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
}

// buildProvider selects the timing-data source. An empty base URL means the
// built-in mock provider; otherwise the HTTP provider, with a BadgerDB
// payload cache when a cache directory is configured.
func buildProvider(cfg *config.Config) (provider.Provider, *provider.Cache, error) {
	if cfg.Provider.BaseURL == "" {
		return provider.NewMock(), nil, nil
	}

	var cache *provider.Cache
	if cfg.Provider.CacheDir != "" {
		var err error
		cache, err = provider.OpenCache(cfg.Provider.CacheDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
	}

	p, err := provider.NewHTTPProvider(provider.HTTPConfig{
		BaseURL:            cfg.Provider.BaseURL,
		Timeout:            cfg.Provider.Timeout,
		BreakerMaxFailures: cfg.Provider.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.Provider.BreakerOpenTimeout,
	}, cache)
	if err != nil {
		if cache != nil {
			cache.Close() //nolint:errcheck // best effort on startup failure
		}
		return nil, nil, err
	}
	return p, cache, nil
}
