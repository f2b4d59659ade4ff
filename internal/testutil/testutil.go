// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the site backend.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/falahcapital/site/internal/store"
)

// TestLogger logs warnings and errors to stderr.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// TestLoggerSilent discards everything. Use it where failures are expected.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestDB opens a migrated database in the test's temp dir. The returned
// cleanup closes it; the file goes with the temp dir.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(t.Context(), db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	return db, func() { _ = db.Close() }
}

// TestSeededDB is TestDB with the default admin and the demo content.
func TestSeededDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, cleanup := TestDB(t)
	if err := store.Seed(t.Context(), db, store.SeedConfig{}); err != nil {
		cleanup()
		t.Fatalf("Seed: %v", err)
	}
	if err := store.SeedDemo(t.Context(), db); err != nil {
		cleanup()
		t.Fatalf("SeedDemo: %v", err)
	}
	return db, cleanup
}
