// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/testutil"
)

// newTestManager returns a cache manager on a fresh memory backend.
func newTestManager(t *testing.T, q *store.Queries) *cache.Manager {
	t.Helper()
	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	m := cache.NewManager(backend, cache.BackendMemory, q, time.Minute)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func testSetup(t *testing.T) (*sql.DB, *store.Queries, *cache.Manager) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	q := store.New(db)
	return db, q, newTestManager(t, q)
}

func seededSetup(t *testing.T) (*sql.DB, *store.Queries, *cache.Manager) {
	t.Helper()
	db, cleanup := testutil.TestSeededDB(t)
	t.Cleanup(cleanup)
	q := store.New(db)
	return db, q, newTestManager(t, q)
}
