// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package api

import (
	"sync"

	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/f1/registry"
)

// sessionHolder guards the one active session per process. A load replaces
// the session and its driver registry together under the write lock;
// readers take a consistent snapshot of both.
type sessionHolder struct {
	mu       sync.RWMutex
	session  *f1.Session
	registry *registry.Registry
}

// Set replaces the active session and registry.
func (h *sessionHolder) Set(s *f1.Session, reg *registry.Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = s
	h.registry = reg
}

// Get returns the active session and registry, nil when no session is
// loaded.
func (h *sessionHolder) Get() (*f1.Session, *registry.Registry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session, h.registry
}

// Loaded reports whether a session is active.
func (h *sessionHolder) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session != nil
}
