// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.EventLog {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		threshold slog.Level
		log       func(*slog.Logger)
		wantLevel string // empty means no event
	}{
		{"error captured", slog.LevelWarn, func(l *slog.Logger) { l.Error("write failed") }, model.EventLevelError},
		{"warn captured", slog.LevelWarn, func(l *slog.Logger) { l.Warn("slow query") }, model.EventLevelWarning},
		{"info ignored", slog.LevelWarn, func(l *slog.Logger) { l.Info("started") }, ""},
		{"debug ignored", slog.LevelWarn, func(l *slog.Logger) { l.Debug("details") }, ""},
		{"custom threshold", slog.LevelInfo, func(l *slog.Logger) { l.Info("started") }, model.EventLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			tt.log(slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, tt.threshold)))

			events := listEvents(t, db)
			if tt.wantLevel == "" {
				if len(events) != 0 {
					t.Fatalf("expected no events, got %d", len(events))
				}
				return
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_Category(t *testing.T) {
	tests := []struct {
		name    string
		message string
		args    []any
		want    string
	}{
		{"login", "login failed for admin", nil, model.EventCategoryAuth},
		{"translation", "saving translations failed", nil, model.EventCategoryTranslation},
		{"project", "malformed project badges", nil, model.EventCategoryProject},
		{"team", "invalidating team cache", nil, model.EventCategoryTeam},
		{"config", "config reload failed", nil, model.EventCategoryConfig},
		{"cache", "redis cache unreachable", nil, model.EventCategoryCache},
		{"system", "disk almost full", nil, model.EventCategorySystem},
		{"explicit", "anything", []any{"category", model.EventCategoryProject}, model.EventCategoryProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			slog.New(NewEventLogHandler(discardHandler{}, db)).Warn(tt.message, tt.args...)

			events := listEvents(t, db)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	db, env := testDBWithLogger(t)
	defer env.cleanup()

	logger := env.logger.With("request_id", "abc")
	logger.Error("upsert failed", "key", `hero."title"`, "rows", 3, "category", model.EventCategoryTranslation)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v (%s)", err, events[0].Metadata)
	}
	want := map[string]string{"request_id": "abc", "key": `hero."title"`, "rows": "3"}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, meta[k], v)
		}
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be repeated in metadata")
	}
}

func TestEventLogHandler_WithGroup(t *testing.T) {
	db, env := testDBWithLogger(t)
	defer env.cleanup()

	env.logger.WithGroup("store").Warn("busy database")

	if events := listEvents(t, db); len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}
	for _, tt := range tests {
		if got := slogLevelToEventLevel(tt.level); got != tt.want {
			t.Errorf("slogLevelToEventLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

type loggerEnv struct {
	logger  *slog.Logger
	cleanup func()
}

func testDBWithLogger(t *testing.T) (*sql.DB, loggerEnv) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	return db, loggerEnv{
		logger:  slog.New(NewEventLogHandler(discardHandler{}, db)),
		cleanup: cleanup,
	}
}
