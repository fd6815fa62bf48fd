// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package provider loads F1 sessions from an upstream timing-data API.
//
// The HTTP implementation owns the network and caching concerns: raw
// session payloads are cached on disk in Badger and upstream fetches run
// behind a circuit breaker. Failures surface as errors to the caller and
// are never retried automatically. A deterministic mock implementation
// serves fixture sessions for tests and offline use.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// Errors returned by providers.
var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrUnknownKind    = errors.New("unknown session type")
	ErrNoData         = errors.New("no data for session")
	ErrUpstreamFailed = errors.New("upstream request failed")
)

// Provider loads one session's laps, telemetry and weather.
type Provider interface {
	// Load fetches the session identified by (year, event, kind).
	// It blocks until the upstream returns or fails; callers own timeouts
	// via ctx.
	Load(ctx context.Context, year int, event string, kind f1.SessionKind) (*f1.Session, error)
}

// validate rejects parameters no provider can serve.
func validate(year int, event string, kind f1.SessionKind) error {
	if year < 1950 {
		return fmt.Errorf("invalid year %d", year)
	}
	if event == "" {
		return ErrUnknownEvent
	}
	if _, ok := f1.ParseSessionKind(string(kind)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}
