// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TypedCache stores values of type T as JSON in a Cacher.
type TypedCache[T any] struct {
	cache      Cacher
	prefix     string
	defaultTTL time.Duration
}

// NewTypedCache wraps cache. Keys are namespaced with prefix so a whole
// TypedCache can be invalidated with DeleteByPrefix.
func NewTypedCache[T any](cache Cacher, prefix string, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

func (c *TypedCache[T]) key(k string) string {
	return c.prefix + k
}

// Get returns the value and true if found and decodable.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.cache.Get(ctx, c.key(key))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

// Set stores a value in the cache with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.key(key), data, c.defaultTTL)
}

// Delete removes a key from the cache.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, c.key(key))
}

// Invalidate removes every entry of this TypedCache.
func (c *TypedCache[T]) Invalidate(ctx context.Context) error {
	return c.cache.DeleteByPrefix(ctx, c.prefix)
}

// GetOrSet returns the cached value or computes and stores it. A failed
// store is ignored; the computed value is still returned.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return value, err
	}

	_ = c.Set(ctx, key, value)
	return value, nil
}
