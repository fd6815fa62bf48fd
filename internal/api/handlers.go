// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/pitwall-project/pitwall/internal/analysis"
	"github.com/pitwall-project/pitwall/internal/chart"
	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/f1/registry"
	"github.com/pitwall-project/pitwall/internal/logging"
	"github.com/pitwall-project/pitwall/internal/metrics"
	"github.com/pitwall-project/pitwall/internal/provider"
)

// earliestSeason is the first year the upstream provider has data for.
const earliestSeason = 2018

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	provider provider.Provider
	analyzer *analysis.Analyzer
	session  *sessionHolder
}

// NewHandler creates a Handler.
func NewHandler(p provider.Provider, a *analysis.Analyzer) *Handler {
	return &Handler{
		provider: p,
		analyzer: a,
		session:  &sessionHolder{},
	}
}

// SessionInfo is the payload of GET /api/v1/session and the load response.
type SessionInfo struct {
	Year    int             `json:"year"`
	Event   string          `json:"event_name"`
	Kind    f1.SessionKind  `json:"kind"`
	Label   string          `json:"label"`
	Laps    int             `json:"laps"`
	Drivers []f1.DriverInfo `json:"drivers"`
	Weather bool            `json:"weather"`
}

func sessionInfo(s *f1.Session, reg *registry.Registry) SessionInfo {
	return SessionInfo{
		Year:    s.Year,
		Event:   s.EventName,
		Kind:    s.Kind,
		Label:   s.Label(),
		Laps:    len(s.Laps),
		Drivers: reg.All(),
		Weather: len(s.Weather) > 0,
	}
}

// LoadSession handles POST /api/v1/session/load. The loaded session
// replaces any previous one wholesale.
func (h *Handler) LoadSession(w http.ResponseWriter, r *http.Request) {
	var req LoadSessionRequest
	if !decodeAndValidate(w, r, &req) {
		metrics.RecordSessionLoad("invalid", 0)
		return
	}

	rw := NewResponseWriter(w, r)
	kind, _ := f1.ParseSessionKind(req.Kind)

	start := time.Now()
	s, err := h.provider.Load(r.Context(), req.Year, req.EventName, kind)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNoData), errors.Is(err, provider.ErrUnknownEvent):
			metrics.RecordSessionLoad("not_found", time.Since(start))
			rw.NotFound("No data for the requested session")
		case errors.Is(err, provider.ErrUnknownKind):
			metrics.RecordSessionLoad("invalid", time.Since(start))
			rw.BadRequest("Unknown session kind")
		default:
			metrics.RecordSessionLoad("upstream_error", time.Since(start))
			rw.UpstreamError(err)
		}
		return
	}

	reg := registry.Build(s)
	h.session.Set(s, reg)
	metrics.RecordSessionLoad("success", time.Since(start))
	metrics.SetSessionGauges(true, len(s.Laps))

	logging.Ctx(r.Context()).Info().
		Str("session", s.Label()).
		Int("laps", len(s.Laps)).
		Int("drivers", len(s.DriverCodes())).
		Dur("duration", time.Since(start)).
		Msg("Session loaded")

	rw.Success(sessionInfo(s, reg))
}

// Session handles GET /api/v1/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, reg := h.session.Get()
	if s == nil {
		rw.NoSession()
		return
	}
	rw.Success(sessionInfo(s, reg))
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"status":         "ok",
		"session_loaded": h.session.Loaded(),
	})
}

// MetaYears handles GET /api/v1/meta/years.
func (h *Handler) MetaYears(w http.ResponseWriter, r *http.Request) {
	current := time.Now().Year()
	years := make([]int, 0, current-earliestSeason+1)
	for y := current; y >= earliestSeason; y-- {
		years = append(years, y)
	}
	WriteSuccess(w, r, years)
}

// MetaEvents handles GET /api/v1/meta/events.
func (h *Handler) MetaEvents(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, f1.GrandsPrix)
}

// MetaSessionTypes handles GET /api/v1/meta/session-types.
func (h *Handler) MetaSessionTypes(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, f1.SessionKinds)
}

// MetaTeams handles GET /api/v1/meta/teams.
func (h *Handler) MetaTeams(w http.ResponseWriter, r *http.Request) {
	type team struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	teams := make([]team, 0, len(f1.TeamColors))
	for name, color := range f1.TeamColors {
		teams = append(teams, team{Name: name, Color: color})
	}
	WriteSuccess(w, r, teams)
}

// analysisContext is the consistent snapshot an analysis handler works on.
type analysisContext struct {
	session  *f1.Session
	registry *registry.Registry
	drivers  []string
}

// analysisSnapshot decodes the request, takes the session snapshot and
// resolves the driver selection. Writes the error response itself when the
// request cannot proceed.
func (h *Handler) analysisSnapshot(w http.ResponseWriter, r *http.Request) (analysisContext, bool) {
	rw := NewResponseWriter(w, r)

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return analysisContext{}, false
	}
	if err := validate.Struct(&req); err != nil {
		rw.ValidationError("Request validation failed", err.Error())
		return analysisContext{}, false
	}

	s, reg := h.session.Get()
	if s == nil {
		rw.NoSession()
		return analysisContext{}, false
	}

	drivers := req.Drivers
	if len(drivers) == 0 {
		drivers = s.DriverCodes()
	} else {
		drivers = reg.Known(drivers)
		if len(drivers) == 0 {
			rw.BadRequest("None of the requested drivers are in the session")
			return analysisContext{}, false
		}
	}

	return analysisContext{session: s, registry: reg, drivers: drivers}, true
}

// respondRecords writes an analysis list response with session metadata.
func respondRecords(w http.ResponseWriter, r *http.Request, ac analysisContext, name string, count int, data interface{}, start time.Time) {
	metrics.RecordAnalysis(name, time.Since(start))
	NewResponseWriter(w, r).SuccessWithMeta(data, &APIMeta{
		Session: ac.session.Label(),
		Count:   count,
	})
}

// chartPayload pairs analysis records with their declarative chart.
type chartPayload struct {
	Records interface{} `json:"records"`
	Chart   chart.Spec  `json:"chart"`
}

// AnalysisConsistency handles POST /api/v1/analysis/consistency.
func (h *Handler) AnalysisConsistency(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.Consistency(ac.session, ac.drivers)
	payload := chartPayload{
		Records: results,
		Chart:   chart.Consistency(results, ac.registry, ac.session.Label()),
	}
	respondRecords(w, r, ac, "consistency", len(results), payload, start)
}

// AnalysisDegradation handles POST /api/v1/analysis/degradation.
func (h *Handler) AnalysisDegradation(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.TireDegradation(ac.session, ac.drivers)
	payload := chartPayload{
		Records: results,
		Chart:   chart.Degradation(results, ac.session.Label()),
	}
	respondRecords(w, r, ac, "degradation", len(results), payload, start)
}

// AnalysisStrategy handles POST /api/v1/analysis/strategy.
func (h *Handler) AnalysisStrategy(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.TireStrategy(ac.session, ac.drivers)
	respondRecords(w, r, ac, "strategy", len(results), results, start)
}

// AnalysisPitStops handles POST /api/v1/analysis/pit-stops.
func (h *Handler) AnalysisPitStops(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.PitStops(ac.session, ac.drivers)
	respondRecords(w, r, ac, "pit-stops", len(results), results, start)
}

// AnalysisBrake handles POST /api/v1/analysis/brake.
func (h *Handler) AnalysisBrake(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.BrakeAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "brake", len(results), results, start)
}

// AnalysisSpeed handles POST /api/v1/analysis/speed.
func (h *Handler) AnalysisSpeed(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.SpeedAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "speed", len(results), results, start)
}

// AnalysisCornering handles POST /api/v1/analysis/cornering.
func (h *Handler) AnalysisCornering(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.CorneringAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "cornering", len(results), results, start)
}

// AnalysisGear handles POST /api/v1/analysis/gear.
func (h *Handler) AnalysisGear(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.GearAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "gear", len(results), results, start)
}

// AnalysisPower handles POST /api/v1/analysis/power.
func (h *Handler) AnalysisPower(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.PowerAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "power", len(results), results, start)
}

// AnalysisMechanical handles POST /api/v1/analysis/mechanical.
func (h *Handler) AnalysisMechanical(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.MechanicalAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "mechanical", len(results), results, start)
}

// AnalysisStress handles POST /api/v1/analysis/stress.
func (h *Handler) AnalysisStress(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.StressAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "stress", len(results), results, start)
}

// AnalysisDownforce handles POST /api/v1/analysis/downforce.
func (h *Handler) AnalysisDownforce(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.DownforceAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "downforce", len(results), results, start)
}

// AnalysisComposite handles POST /api/v1/analysis/composite.
func (h *Handler) AnalysisComposite(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.CompositeAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "composite", len(results), results, start)
}

// AnalysisSectorPerformance handles POST /api/v1/analysis/sector-performance.
func (h *Handler) AnalysisSectorPerformance(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.SectorPerformance(ac.session, ac.drivers)
	respondRecords(w, r, ac, "sector-performance", len(results), results, start)
}

// AnalysisSectorDominance handles POST /api/v1/analysis/sector-dominance.
func (h *Handler) AnalysisSectorDominance(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.SectorDominanceAnalysis(ac.session, ac.drivers)
	respondRecords(w, r, ac, "sector-dominance", len(results), results, start)
}

// AnalysisMinisectorDominance handles POST /api/v1/analysis/minisector-dominance.
func (h *Handler) AnalysisMinisectorDominance(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	result := h.analyzer.MinisectorDominance(ac.session, ac.drivers)
	if result == nil {
		NewResponseWriter(w, r).NotFound("No telemetry available for the selected drivers")
		return
	}
	payload := chartPayload{
		Records: result,
		Chart:   chart.TrackDominance(result, ac.registry, ac.session.Label()),
	}
	respondRecords(w, r, ac, "minisector-dominance", len(result.Bins), payload, start)
}

// AnalysisTrackMap handles POST /api/v1/analysis/track-map.
func (h *Handler) AnalysisTrackMap(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.TrackMap(ac.session, ac.drivers)
	payload := chartPayload{
		Records: results,
		Chart:   chart.SpeedMap(results, ac.registry, ac.session.Label()),
	}
	respondRecords(w, r, ac, "track-map", len(results), payload, start)
}

// AnalysisLapTimes handles POST /api/v1/analysis/lap-times.
func (h *Handler) AnalysisLapTimes(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.LapTimes(ac.session, ac.drivers)
	payload := chartPayload{
		Records: results,
		Chart:   chart.LapTimes(results, ac.registry, ac.session.Label()),
	}
	respondRecords(w, r, ac, "lap-times", len(results), payload, start)
}

// AnalysisProgression handles POST /api/v1/analysis/progression.
func (h *Handler) AnalysisProgression(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.RaceProgression(ac.session, ac.drivers)
	payload := chartPayload{
		Records: results,
		Chart:   chart.Progression(results, ac.registry, ac.session.Label()),
	}
	respondRecords(w, r, ac, "progression", len(results), payload, start)
}

// AnalysisOvertaking handles POST /api/v1/analysis/overtaking.
func (h *Handler) AnalysisOvertaking(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.Overtaking(ac.session, ac.drivers)
	respondRecords(w, r, ac, "overtaking", len(results), results, start)
}

// AnalysisFuel handles POST /api/v1/analysis/fuel.
func (h *Handler) AnalysisFuel(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.FuelEffect(ac.session, ac.drivers)
	respondRecords(w, r, ac, "fuel", len(results), results, start)
}

// AnalysisWeather handles POST /api/v1/analysis/weather.
func (h *Handler) AnalysisWeather(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	result := h.analyzer.Weather(ac.session, ac.drivers)
	if result == nil {
		NewResponseWriter(w, r).NotFound("The session carries no weather data")
		return
	}
	respondRecords(w, r, ac, "weather", result.Summary.Samples, result, start)
}

// AnalysisPrediction handles POST /api/v1/analysis/prediction.
func (h *Handler) AnalysisPrediction(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.QualifyingPrediction(ac.session, ac.drivers)
	respondRecords(w, r, ac, "prediction", len(results), results, start)
}

// AnalysisMomentum handles POST /api/v1/analysis/momentum.
func (h *Handler) AnalysisMomentum(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.Momentum(ac.session, ac.drivers)
	respondRecords(w, r, ac, "momentum", len(results), results, start)
}

// AnalysisHeadToHead handles POST /api/v1/analysis/head-to-head.
func (h *Handler) AnalysisHeadToHead(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	if len(ac.drivers) < 2 {
		NewResponseWriter(w, r).BadRequest("Head-to-head needs two drivers")
		return
	}
	start := time.Now()
	result := h.analyzer.HeadToHead(ac.session, ac.drivers)
	if result == nil {
		NewResponseWriter(w, r).NotFound("Not enough valid laps for a head-to-head")
		return
	}
	respondRecords(w, r, ac, "head-to-head", result.LapsPaired, result, start)
}

// AnalysisPercentiles handles POST /api/v1/analysis/percentiles.
func (h *Handler) AnalysisPercentiles(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.Percentiles(ac.session, ac.drivers)
	respondRecords(w, r, ac, "percentiles", len(results), results, start)
}

// AnalysisChampionship handles POST /api/v1/analysis/championship.
func (h *Handler) AnalysisChampionship(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.analysisSnapshot(w, r)
	if !ok {
		return
	}
	start := time.Now()
	results := h.analyzer.ChampionshipProjection(ac.session, ac.drivers)
	respondRecords(w, r, ac, "championship", len(results), results, start)
}
