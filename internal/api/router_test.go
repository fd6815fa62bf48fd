// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/pitwall-project/pitwall/internal/analysis"
	"github.com/pitwall-project/pitwall/internal/provider"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := NewHandler(provider.NewMock(), analysis.New(analysis.DefaultConfig()))
	router := NewRouter(handler, RouterConfig{RateLimitDisabled: true})

	srv := httptest.NewServer(router.SetupChi())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func loadSession(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/v1/session/load", LoadSessionRequest{
		Year:      2024,
		EventName: "Bahrain Grand Prix",
		Kind:      "R",
	})
	envelope := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		t.Fatalf("load failed: status=%d envelope=%+v", resp.StatusCode, envelope)
	}
}

func TestAnalysisBeforeLoadReturnsNoSession(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/api/v1/analysis/consistency", AnalysisRequest{Drivers: []string{"VER"}})

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope.Success || envelope.Error == nil || envelope.Error.Code != ErrCodeNoSession {
		t.Errorf("expected NO_SESSION error, got %+v", envelope)
	}
}

func TestLoadThenConsistency(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	loadSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/analysis/consistency", AnalysisRequest{Drivers: []string{"VER", "HAM"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if !envelope.Success {
		t.Fatalf("expected success, got %+v", envelope.Error)
	}
	if envelope.Meta == nil || envelope.Meta.Count != 2 {
		t.Errorf("meta count = %+v, want 2", envelope.Meta)
	}

	payload, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var data struct {
		Records []analysis.ConsistencyResult `json:"records"`
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(data.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(data.Records))
	}
	for _, r := range data.Records {
		if r.FastestLap > r.MeanLapTime {
			t.Errorf("%s: fastest %v exceeds mean %v", r.Driver, r.FastestLap, r.MeanLapTime)
		}
	}
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	cases := []struct {
		name string
		body LoadSessionRequest
		want int
	}{
		{"bad year", LoadSessionRequest{Year: 1800, EventName: "Bahrain Grand Prix", Kind: "R"}, http.StatusBadRequest},
		{"bad kind", LoadSessionRequest{Year: 2024, EventName: "Bahrain Grand Prix", Kind: "X"}, http.StatusBadRequest},
		{"unknown event", LoadSessionRequest{Year: 2024, EventName: "Mars Grand Prix", Kind: "R"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp := postJSON(t, srv.URL+"/api/v1/session/load", tc.body)
			defer resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestSessionInfoAfterLoad(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/session")
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status before load = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	loadSession(t, srv)

	resp, err = http.Get(srv.URL + "/api/v1/session")
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	envelope := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK || !envelope.Success {
		t.Fatalf("status after load = %d, envelope = %+v", resp.StatusCode, envelope)
	}

	payload, _ := json.Marshal(envelope.Data)
	var info SessionInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		t.Fatalf("decode session info: %v", err)
	}
	if info.Year != 2024 || info.Kind != "R" {
		t.Errorf("info = %+v, want 2024 R", info)
	}
	if info.Laps == 0 || len(info.Drivers) == 0 {
		t.Errorf("expected laps and drivers, got %+v", info)
	}
}

func TestHealthAndMeta(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/meta/years",
		"/api/v1/meta/events",
		"/api/v1/meta/session-types",
		"/api/v1/meta/teams",
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAnalysisUnknownDrivers(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	loadSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/analysis/consistency", AnalysisRequest{Drivers: []string{"XXX"}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAnalysisEmptyBodySelectsAllDrivers(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	loadSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/analysis/speed", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope.Meta == nil || envelope.Meta.Count == 0 {
		t.Errorf("expected records for all drivers, meta = %+v", envelope.Meta)
	}
}

func TestHeadToHeadNeedsTwoDrivers(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	loadSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/analysis/head-to-head", AnalysisRequest{Drivers: []string{"VER"}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDHeaderPropagates(t *testing.T) {
	t.Parallel()

	srv := testServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "test-request-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "test-request-42" {
		t.Errorf("X-Request-ID = %q, want test-request-42", got)
	}
}
