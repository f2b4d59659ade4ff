// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
)

type fakeConfigLoader struct {
	entries []store.Config
	err     error
	calls   int
}

func (f *fakeConfigLoader) ListConfig(context.Context) ([]store.Config, error) {
	f.calls++
	return f.entries, f.err
}

func TestConfigCache(t *testing.T) {
	loader := &fakeConfigLoader{entries: []store.Config{
		{Key: "heroImage", Value: sql.NullString{String: `"/img/hero.jpg"`, Valid: true}},
		{Key: "teamPhotos", Value: sql.NullString{String: `["/a.jpg","/b.jpg"]`, Valid: true}},
		{Key: "cleared", Value: sql.NullString{}},
	}}
	c := NewConfigCache(loader)
	ctx := context.Background()

	v, ok, err := c.Get(ctx, "heroImage")
	if err != nil || !ok || v != "/img/hero.jpg" {
		t.Errorf("Get(heroImage) = %v, %v, %v", v, ok, err)
	}

	all, err := c.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if photos, ok := all["teamPhotos"].([]any); !ok || len(photos) != 2 {
		t.Errorf("teamPhotos = %#v", all["teamPhotos"])
	}
	if v, ok := all["cleared"]; !ok || v != nil {
		t.Errorf("cleared = %v, %v", v, ok)
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1", loader.calls)
	}

	c.Invalidate()
	_, _, _ = c.Get(ctx, "heroImage")
	if loader.calls != 2 {
		t.Errorf("loader called %d times after Invalidate, want 2", loader.calls)
	}
}

func TestConfigCache_LoadError(t *testing.T) {
	loader := &fakeConfigLoader{err: errors.New("db down")}
	c := NewConfigCache(loader)

	if _, err := c.All(context.Background()); err == nil {
		t.Error("expected error")
	}

	loader.err = nil
	if _, err := c.All(context.Background()); err != nil {
		t.Errorf("cache did not retry after failure: %v", err)
	}
}

func TestManager(t *testing.T) {
	mem, _ := newTestMemoryCache(t, MemoryCacheOptions{})
	m := NewManager(mem, BackendMemory, &fakeConfigLoader{}, time.Hour)
	ctx := context.Background()

	_ = m.Projects.Set(ctx, "p1", model.NewProjectTranslations())
	_ = m.Projects.Set(ctx, "p2", model.NewProjectTranslations())

	if err := m.InvalidateProjects(ctx, "p1"); err != nil {
		t.Fatalf("InvalidateProjects: %v", err)
	}
	if _, ok := m.Projects.Get(ctx, "p1"); ok {
		t.Error("p1 still cached")
	}
	if _, ok := m.Projects.Get(ctx, "p2"); !ok {
		t.Error("p2 was dropped")
	}

	if err := m.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if _, ok := m.Projects.Get(ctx, "p2"); ok {
		t.Error("p2 survived ClearAll")
	}
	if m.Backend() != BackendMemory {
		t.Errorf("Backend() = %q", m.Backend())
	}
	if len(m.AllStats()) != 2 {
		t.Errorf("AllStats() = %+v", m.AllStats())
	}
}
