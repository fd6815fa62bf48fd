// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package metrics exposes the Prometheus instruments for the API surface,
// session loading and the analysis operations. All collectors register on
// the default registry via promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitwall_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitwall_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Session load metrics
	SessionLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_session_loads_total",
			Help: "Total number of session load attempts",
		},
		[]string{"outcome"}, // "success", "not_found", "invalid", "upstream_error"
	)

	SessionLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pitwall_session_load_duration_seconds",
			Help:    "Duration of session loads including upstream fetch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SessionLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitwall_session_loaded",
			Help: "1 when a session is loaded, 0 otherwise",
		},
	)

	SessionLaps = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitwall_session_laps",
			Help: "Lap count of the currently loaded session",
		},
	)

	// Analysis metrics
	AnalysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_analysis_runs_total",
			Help: "Total number of analysis executions",
		},
		[]string{"analysis"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitwall_analysis_duration_seconds",
			Help:    "Analysis execution time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"analysis"},
	)

	// Upstream provider metrics
	ProviderCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitwall_provider_cache_hits_total",
			Help: "Total number of session cache hits",
		},
	)

	ProviderCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pitwall_provider_cache_misses_total",
			Help: "Total number of session cache misses",
		},
	)

	ProviderBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitwall_provider_breaker_open",
			Help: "1 when the upstream circuit breaker is open, 0 otherwise",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSessionLoad records a session load attempt and its outcome.
func RecordSessionLoad(outcome string, duration time.Duration) {
	SessionLoadsTotal.WithLabelValues(outcome).Inc()
	SessionLoadDuration.Observe(duration.Seconds())
}

// SetSessionGauges updates the loaded-session gauges after a load or reset.
func SetSessionGauges(loaded bool, laps int) {
	if loaded {
		SessionLoaded.Set(1)
	} else {
		SessionLoaded.Set(0)
	}
	SessionLaps.Set(float64(laps))
}

// RecordAnalysis records one analysis execution.
func RecordAnalysis(name string, duration time.Duration) {
	AnalysisRunsTotal.WithLabelValues(name).Inc()
	AnalysisDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordCacheLookup records one provider cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		ProviderCacheHits.Inc()
	} else {
		ProviderCacheMisses.Inc()
	}
}

// SetBreakerOpen reflects the upstream circuit breaker state.
func SetBreakerOpen(open bool) {
	if open {
		ProviderBreakerState.Set(1)
	} else {
		ProviderBreakerState.Set(0)
	}
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
