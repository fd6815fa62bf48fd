// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package provider

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// cacheKeyVersion is bumped when the payload schema changes, invalidating
// prior cache entries without a migration.
const cacheKeyVersion = "v1"

// Cache is the on-disk store for raw upstream session payloads.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) a Badger-backed payload cache at dir.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey builds the key for one session payload.
func cacheKey(year int, event string, kind f1.SessionKind) []byte {
	return []byte(fmt.Sprintf("session/%s/%d/%s/%s", cacheKeyVersion, year, event, kind))
}

// Get returns the cached payload for a session, with ok=false on a miss.
func (c *Cache) Get(year int, event string, kind f1.SessionKind) ([]byte, bool, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(year, event, kind))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session cache read failed: %w", err)
	}
	return raw, true, nil
}

// Put stores a payload for a session.
func (c *Cache) Put(year int, event string, kind f1.SessionKind, raw []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(year, event, kind), raw)
	})
	if err != nil {
		return fmt.Errorf("session cache write failed: %w", err)
	}
	return nil
}
