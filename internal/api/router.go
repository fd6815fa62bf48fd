// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitwall-project/pitwall/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// RouterConfig carries the middleware settings for SetupChi.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if len(cfg.CORSOrigins) > 0 {
		mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
	}
	if cfg.RateLimitRequests > 0 {
		mwConfig.RateLimitRequests = cfg.RateLimitRequests
	}
	if cfg.RateLimitWindow > 0 {
		mwConfig.RateLimitWindow = cfg.RateLimitWindow
	}
	mwConfig.RateLimitDisabled = cfg.RateLimitDisabled

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(RequestLogging())

	// Health and metrics, permissive rate limits for monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
	})
	r.With(router.chiMiddleware.RateLimitCustom(RateLimitHealth)).
		Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Session endpoints. Loads are strictly limited; each one hits the
	// upstream provider.
	r.Route("/api/v1/session", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitLoad)).
			Post("/load", router.handler.LoadSession)
		r.With(router.chiMiddleware.RateLimit()).
			Get("/", router.handler.Session)
	})

	// Discovery endpoints.
	r.Route("/api/v1/meta", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/years", router.handler.MetaYears)
		r.Get("/events", router.handler.MetaEvents)
		r.Get("/session-types", router.handler.MetaSessionTypes)
		r.Get("/teams", router.handler.MetaTeams)
	})

	// Analysis endpoints, permissive rate limits for dashboard bursts.
	r.Route("/api/v1/analysis", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAnalysis))
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/consistency", router.handler.AnalysisConsistency)
		r.Post("/degradation", router.handler.AnalysisDegradation)
		r.Post("/strategy", router.handler.AnalysisStrategy)
		r.Post("/pit-stops", router.handler.AnalysisPitStops)
		r.Post("/brake", router.handler.AnalysisBrake)
		r.Post("/speed", router.handler.AnalysisSpeed)
		r.Post("/cornering", router.handler.AnalysisCornering)
		r.Post("/gear", router.handler.AnalysisGear)
		r.Post("/power", router.handler.AnalysisPower)
		r.Post("/mechanical", router.handler.AnalysisMechanical)
		r.Post("/stress", router.handler.AnalysisStress)
		r.Post("/downforce", router.handler.AnalysisDownforce)
		r.Post("/composite", router.handler.AnalysisComposite)
		r.Post("/sector-performance", router.handler.AnalysisSectorPerformance)
		r.Post("/sector-dominance", router.handler.AnalysisSectorDominance)
		r.Post("/minisector-dominance", router.handler.AnalysisMinisectorDominance)
		r.Post("/track-map", router.handler.AnalysisTrackMap)
		r.Post("/lap-times", router.handler.AnalysisLapTimes)
		r.Post("/progression", router.handler.AnalysisProgression)
		r.Post("/overtaking", router.handler.AnalysisOvertaking)
		r.Post("/fuel", router.handler.AnalysisFuel)
		r.Post("/weather", router.handler.AnalysisWeather)
		r.Post("/prediction", router.handler.AnalysisPrediction)
		r.Post("/momentum", router.handler.AnalysisMomentum)
		r.Post("/head-to-head", router.handler.AnalysisHeadToHead)
		r.Post("/percentiles", router.handler.AnalysisPercentiles)
		r.Post("/championship", router.handler.AnalysisChampionship)
	})

	return r
}
