// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/util"
)

// ConfigLoader reads every site config entry.
type ConfigLoader interface {
	ListConfig(ctx context.Context) ([]store.Config, error)
}

// ConfigCache keeps the site config in memory. It loads all entries on
// first access and reloads after Invalidate.
type ConfigCache struct {
	loader ConfigLoader
	mu     sync.RWMutex
	loaded bool
	values map[string]any

	counters
}

// NewConfigCache creates a new config cache.
func NewConfigCache(loader ConfigLoader) *ConfigCache {
	return &ConfigCache{
		loader: loader,
		values: make(map[string]any),
	}
}

// Get returns the decoded value of key and whether it exists.
func (c *ConfigCache) Get(ctx context.Context, key string) (any, bool, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok, nil
}

// All returns a copy of every config value.
func (c *ConfigCache) All(ctx context.Context) (map[string]any, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	c.hits.Add(1)
	result := make(map[string]any, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result, nil
}

func (c *ConfigCache) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.loadAll(ctx)
}

func (c *ConfigCache) loadAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.loaded {
		return nil
	}

	c.misses.Add(1)
	entries, err := c.loader.ListConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	values := make(map[string]any, len(entries))
	for _, e := range entries {
		v, err := util.ParseNullJSON(e.Value)
		if err != nil {
			return fmt.Errorf("decoding config %q: %w", e.Key, err)
		}
		values[e.Key] = v
	}

	c.values = values
	c.loaded = true
	c.sets.Add(1)
	return nil
}

// Invalidate clears the cache, forcing a reload on next access.
func (c *ConfigCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.values = make(map[string]any)
}

// Preload loads all config into cache.
func (c *ConfigCache) Preload(ctx context.Context) error {
	return c.loadAll(ctx)
}

// Stats returns cache statistics.
func (c *ConfigCache) Stats() Stats {
	stats := c.snapshot()
	c.mu.RLock()
	stats.Items = len(c.values)
	c.mu.RUnlock()
	return stats
}

// ResetStats resets the cache statistics.
func (c *ConfigCache) ResetStats() {
	c.reset()
}
