// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/logging"
	"github.com/pitwall-project/pitwall/internal/metrics"
)

// HTTPConfig holds settings for the HTTP session provider.
type HTTPConfig struct {
	// BaseURL is the upstream timing API root, e.g. "https://timing.example.com".
	BaseURL string

	// Timeout bounds one upstream request.
	Timeout time.Duration

	// BreakerMaxFailures is the consecutive-failure count that opens the
	// circuit; BreakerOpenTimeout is how long it stays open.
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// HTTPProvider fetches sessions from an upstream timing API.
//
// Raw payloads are cached in Badger when a cache is attached; the fetch
// path runs behind a circuit breaker so a flapping upstream fails fast
// instead of queueing requests. An open breaker surfaces as a load error.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	cache   *Cache
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewHTTPProvider creates a provider for the given upstream. The cache is
// optional; pass nil to disable on-disk caching.
func NewHTTPProvider(cfg HTTPConfig, cache *Cache) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerOpenTimeout <= 0 {
		cfg.BreakerOpenTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "session-upstream",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			// A missing session is an answer, not an upstream fault.
			return err == nil || errors.Is(err, ErrNoData)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerOpen(to == gobreaker.StateOpen)
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Upstream circuit breaker state changed")
		},
	})

	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		breaker: breaker,
	}, nil
}

// Load implements Provider. Cache hits skip the network entirely; misses
// fetch through the breaker and populate the cache on success.
func (p *HTTPProvider) Load(ctx context.Context, year int, event string, kind f1.SessionKind) (*f1.Session, error) {
	if err := validate(year, event, kind); err != nil {
		return nil, err
	}

	if p.cache != nil {
		raw, hit, err := p.cache.Get(year, event, kind)
		if err != nil {
			logging.Warn().Err(err).Msg("Session cache read failed, fetching upstream")
		} else if hit {
			metrics.RecordCacheLookup(true)
			logging.Debug().Int("year", year).Str("event", event).Msg("Session cache hit")
			return decodeSession(raw)
		}
		metrics.RecordCacheLookup(false)
	}

	raw, err := p.breaker.Execute(func() ([]byte, error) {
		return p.fetch(ctx, year, event, kind)
	})
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}

	session, err := decodeSession(raw)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Put(year, event, kind, raw); err != nil {
			logging.Warn().Err(err).Msg("Session cache write failed")
		}
	}

	return session, nil
}

// fetch performs one upstream GET.
func (p *HTTPProvider) fetch(ctx context.Context, year int, event string, kind f1.SessionKind) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/v1/sessions/%d/%s/%s",
		p.baseURL, year, url.PathEscape(event), url.PathEscape(string(kind)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %d %s %s", ErrNoData, year, event, kind)
	default:
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	logging.Debug().
		Int("year", year).
		Str("event", event).
		Str("kind", string(kind)).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("Fetched session from upstream")

	return raw, nil
}
