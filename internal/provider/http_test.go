// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/metrics"
)

func TestHTTPProviderLoad(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	s, err := p.Load(context.Background(), 2024, "Bahrain Grand Prix", f1.KindRace)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.EventName != "Bahrain Grand Prix" || len(s.Laps) != 1 {
		t.Errorf("unexpected session: %s, %d laps", s.EventName, len(s.Laps))
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", hits.Load())
	}
}

func TestHTTPProviderCachesPayload(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	p, err := NewHTTPProvider(HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, cache)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	hitsBefore := testutil.ToFloat64(metrics.ProviderCacheHits)
	missesBefore := testutil.ToFloat64(metrics.ProviderCacheMisses)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := p.Load(ctx, 2024, "Bahrain Grand Prix", f1.KindRace); err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1 (cache should absorb repeats)", hits.Load())
	}
	if got := testutil.ToFloat64(metrics.ProviderCacheHits) - hitsBefore; got != 2 {
		t.Errorf("cache hit counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.ProviderCacheMisses) - missesBefore; got != 1 {
		t.Errorf("cache miss counter delta = %v, want 1", got)
	}
}

func TestHTTPProviderNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	_, err = p.Load(context.Background(), 2024, "Bahrain Grand Prix", f1.KindRace)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
	if errors.Is(err, ErrUpstreamFailed) {
		t.Errorf("error = %v, must not be classified as an upstream fault", err)
	}
}

func TestHTTPProviderNotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.Contains(r.URL.Path, "Mars") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{
		BaseURL:            srv.URL,
		Timeout:            5 * time.Second,
		BreakerMaxFailures: 2,
		BreakerOpenTimeout: time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if _, err := p.Load(ctx, 2024, "Mars Grand Prix", f1.KindRace); !errors.Is(err, ErrNoData) {
			t.Fatalf("Load %d error = %v, want ErrNoData", i, err)
		}
	}

	// Missing sessions are answers, not faults: a valid load must still
	// reach the upstream.
	if _, err := p.Load(ctx, 2024, "Bahrain Grand Prix", f1.KindRace); err != nil {
		t.Fatalf("valid load after repeated 404s failed: %v", err)
	}
	if hits.Load() != 5 {
		t.Errorf("upstream hits = %d, want 5", hits.Load())
	}
}

func TestHTTPProviderBreakerOpens(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(HTTPConfig{
		BaseURL:            srv.URL,
		Timeout:            5 * time.Second,
		BreakerMaxFailures: 2,
		BreakerOpenTimeout: time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := p.Load(ctx, 2024, "Bahrain Grand Prix", f1.KindRace); err == nil {
			t.Fatalf("Load %d should fail", i)
		}
	}
	// After two consecutive failures the breaker opens and stops
	// reaching the upstream.
	if hits.Load() != 2 {
		t.Errorf("upstream hits = %d, want 2", hits.Load())
	}
	if got := testutil.ToFloat64(metrics.ProviderBreakerState); got != 1 {
		t.Errorf("breaker gauge = %v, want 1", got)
	}
}

func TestHTTPProviderValidatesInput(t *testing.T) {
	t.Parallel()

	p, err := NewHTTPProvider(HTTPConfig{BaseURL: "http://127.0.0.1:1"}, nil)
	if err != nil {
		t.Fatalf("NewHTTPProvider failed: %v", err)
	}

	if _, err := p.Load(context.Background(), 2024, "", f1.KindRace); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("empty event error = %v, want ErrUnknownEvent", err)
	}
	if _, err := p.Load(context.Background(), 2024, "Bahrain Grand Prix", "Z"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("bad kind error = %v, want ErrUnknownKind", err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	if _, hit, err := cache.Get(2024, "Bahrain Grand Prix", f1.KindRace); err != nil || hit {
		t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
	}

	want := []byte(`{"payload": true}`)
	if err := cache.Put(2024, "Bahrain Grand Prix", f1.KindRace, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, hit, err := cache.Get(2024, "Bahrain Grand Prix", f1.KindRace)
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if string(got) != string(want) {
		t.Errorf("payload = %s, want %s", got, want)
	}

	// Different kind is a different key.
	if _, hit, _ := cache.Get(2024, "Bahrain Grand Prix", f1.KindQualifying); hit {
		t.Error("expected miss for different session kind")
	}
}
