// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/translation"
)

// Key prefixes of the content caches.
const (
	prefixTranslations = "translations:"
	prefixProjects     = "projects:"
	prefixTeam         = "team:"

	// KeyTree is the key of the decoded translation tree.
	KeyTree = "tree"
)

// NamedStats labels the statistics of one cache.
type NamedStats struct {
	Name  string `json:"name"`
	Stats Stats  `json:"stats"`
}

// Manager owns the caches in front of the row store.
type Manager struct {
	backend     Cacher
	backendName string

	Config       *ConfigCache
	Translations *TypedCache[translation.Tree]
	Projects     *TypedCache[model.ProjectTranslations]
	Team         *TypedCache[model.TeamTranslations]
}

// NewManager builds the content caches on top of backend.
func NewManager(backend Cacher, backendName string, loader ConfigLoader, ttl time.Duration) *Manager {
	return &Manager{
		backend:      backend,
		backendName:  backendName,
		Config:       NewConfigCache(loader),
		Translations: NewTypedCache[translation.Tree](backend, prefixTranslations, ttl),
		Projects:     NewTypedCache[model.ProjectTranslations](backend, prefixProjects, ttl),
		Team:         NewTypedCache[model.TeamTranslations](backend, prefixTeam, ttl),
	}
}

// Backend returns the name of the active backend.
func (m *Manager) Backend() string {
	return m.backendName
}

// Ping checks the backend connection. Backends without one always succeed.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// InvalidateTranslations drops the cached translation tree.
func (m *Manager) InvalidateTranslations(ctx context.Context) error {
	return m.Translations.Invalidate(ctx)
}

// InvalidateProjects drops cached project translations for ids, or for
// every project when no id is given.
func (m *Manager) InvalidateProjects(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return m.Projects.Invalidate(ctx)
	}
	var errs []error
	for _, id := range ids {
		errs = append(errs, m.Projects.Delete(ctx, id))
	}
	return errors.Join(errs...)
}

// InvalidateTeam drops cached translations of one team member.
func (m *Manager) InvalidateTeam(ctx context.Context, slug string) error {
	return m.Team.Delete(ctx, slug)
}

// InvalidateConfig invalidates the config cache.
func (m *Manager) InvalidateConfig() {
	m.Config.Invalidate()
}

// ClearAll clears all caches and resets statistics.
func (m *Manager) ClearAll(ctx context.Context) error {
	m.Config.Invalidate()
	m.Config.ResetStats()
	if sp, ok := m.backend.(StatsProvider); ok {
		sp.ResetStats()
	}
	if err := m.backend.Clear(ctx); err != nil {
		return err
	}
	slog.Info("caches cleared", "backend", m.backendName)
	return nil
}

// AllStats returns statistics for all caches.
func (m *Manager) AllStats() []NamedStats {
	stats := []NamedStats{{Name: "config", Stats: m.Config.Stats()}}
	if sp, ok := m.backend.(StatsProvider); ok {
		stats = append(stats, NamedStats{Name: "content (" + m.backendName + ")", Stats: sp.Stats()})
	}
	return stats
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
