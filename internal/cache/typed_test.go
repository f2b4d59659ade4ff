// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/translation"
)

func TestTypedCache_TreeRoundTrip(t *testing.T) {
	mem, _ := newTestMemoryCache(t, MemoryCacheOptions{})
	c := NewTypedCache[translation.Tree](mem, "translations:", time.Hour)
	ctx := context.Background()

	tree := translation.Tree{
		"heroTitle":        map[string]any{"en": "Hi", "ru": "Привет"},
		"aboutPageSectors": []any{map[string]any{"title": map[string]any{"en": "A"}}},
		"portfolioI18n":    map[string]any{"heroTitle": map[string]any{"kz": "Портфолио"}},
	}
	if err := c.Set(ctx, KeyTree, tree); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, KeyTree)
	if !ok {
		t.Fatal("tree not found")
	}
	if diff := cmp.Diff(tree, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	mem, _ := newTestMemoryCache(t, MemoryCacheOptions{})
	c := NewTypedCache[model.ProjectTranslations](mem, "projects:", time.Hour)
	ctx := context.Background()

	calls := 0
	load := func() (model.ProjectTranslations, error) {
		calls++
		p := model.NewProjectTranslations()
		p.Title.EN = "Solar"
		return p, nil
	}

	for i := 0; i < 3; i++ {
		p, err := c.GetOrSet(ctx, "p1", load)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if p.Title.EN != "Solar" {
			t.Errorf("Title.EN = %q", p.Title.EN)
		}
		if p.Badges == nil {
			t.Error("cached value lost its empty badge list")
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, err := c.GetOrSet(ctx, "p2", func() (model.ProjectTranslations, error) {
		return model.ProjectTranslations{}, wantErr
	}); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get(ctx, "p2"); ok {
		t.Error("failed load was cached")
	}
}

func TestTypedCache_InvalidateIsScoped(t *testing.T) {
	mem, _ := newTestMemoryCache(t, MemoryCacheOptions{})
	projects := NewTypedCache[string](mem, "projects:", time.Hour)
	team := NewTypedCache[string](mem, "team:", time.Hour)
	ctx := context.Background()

	_ = projects.Set(ctx, "a", "x")
	_ = team.Set(ctx, "a", "y")

	if err := projects.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := projects.Get(ctx, "a"); ok {
		t.Error("projects entry survived")
	}
	if v, ok := team.Get(ctx, "a"); !ok || v != "y" {
		t.Error("team entry was invalidated")
	}
}
