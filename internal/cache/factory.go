// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set (redis://host:6379/0).
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int

	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "site:",
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New creates the configured backend. When Redis is configured but cannot
// be reached, it logs a warning and falls back to the memory cache.
func New(cfg Config) (Cacher, string) {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(context.Background(), cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			return rc, BackendRedis
		}
		slog.Warn("redis cache unavailable, using memory cache", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), BackendMemory
}
