// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL time.Duration
	// MaxSize caps the number of entries; the least recently used entry is
	// evicted first. Zero means unlimited.
	MaxSize int
	// CleanupInterval is how often expired entries are swept. Zero disables
	// the sweep; expired entries are then dropped on access.
	CleanupInterval time.Duration
}

// MemoryCache is an in-process LRU Cacher for a single site instance.
type MemoryCache struct {
	opts MemoryCacheOptions
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // front is most recently used
	bytes   int64
	closed  bool
	stop    chan struct{}

	counters
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache and starts its sweep loop when
// CleanupInterval is set.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
		stop:    make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.sweepLoop(opts.CleanupInterval)
	}
	return c
}

// Get returns a copy of the value stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrCacheClosed
	}

	e := c.live(key)
	if e == nil {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	c.lru.MoveToFront(c.entries[key])
	c.hits.Add(1)
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value. A zero ttl uses the default TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}

	e := &memoryEntry{key: key, value: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)}
	if el, ok := c.entries[key]; ok {
		c.bytes -= int64(len(el.Value.(*memoryEntry).value))
		el.Value = e
		c.lru.MoveToFront(el)
	} else {
		if c.opts.MaxSize > 0 && c.lru.Len() >= c.opts.MaxSize {
			c.sweep()
			if c.lru.Len() >= c.opts.MaxSize {
				c.remove(c.lru.Back())
			}
		}
		c.entries[key] = c.lru.PushFront(e)
	}
	c.bytes += int64(len(e.value))
	c.sets.Add(1)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	for key, el := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(el)
		}
	}
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	clear(c.entries)
	c.lru.Init()
	c.bytes = 0
	return nil
}

// Has reports whether key holds an unexpired value. It does not count as a use.
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrCacheClosed
	}
	return c.live(key) != nil, nil
}

// Close stops the sweep loop. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.stop)
	}
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.snapshot()
	stats.Items = c.lru.Len()
	stats.Size = c.bytes
	return stats
}

func (c *MemoryCache) ResetStats() {
	c.reset()
}

// live returns the entry for key, dropping it if expired. c.mu must be held.
func (c *MemoryCache) live(key string) *memoryEntry {
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	e := el.Value.(*memoryEntry)
	if !c.now().Before(e.expiresAt) {
		c.remove(el)
		return nil
	}
	return e
}

// remove drops el. c.mu must be held.
func (c *MemoryCache) remove(el *list.Element) {
	e := c.lru.Remove(el).(*memoryEntry)
	delete(c.entries, e.key)
	c.bytes -= int64(len(e.value))
}

// sweep drops every expired entry. c.mu must be held.
func (c *MemoryCache) sweep() {
	now := c.now()
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*memoryEntry).expiresAt) {
			c.remove(el)
		}
		el = prev
	}
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.sweep()
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
