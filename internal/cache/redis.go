// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 5 * time.Second
	redisIOTimeout   = 3 * time.Second
	redisPoolSize    = 10
	// redisScanBatch is the COUNT hint and the UNLINK batch size.
	redisScanBatch = 100
)

// RedisCache is a Cacher backed by Redis, shared by every site instance.
// All keys live under prefix, so Clear never touches foreign keys.
type RedisCache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	closed     atomic.Bool

	counters
}

// NewRedisCache connects to the Redis server at url (redis://host:6379/0)
// and pings it before returning.
func NewRedisCache(ctx context.Context, url, prefix string, defaultTTL time.Duration) (*RedisCache, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.PoolSize = redisPoolSize
	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisIOTimeout
	opts.WriteTimeout = redisIOTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &RedisCache{client: client, prefix: prefix, defaultTTL: defaultTTL}, nil
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// Get returns ErrCacheMiss when key is absent.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.misses.Add(1)
		return nil, ErrCacheMiss
	case err != nil:
		return nil, err
	}
	c.hits.Add(1)
	return val, nil
}

// Set stores value. A zero ttl uses the default TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return err
	}
	c.sets.Add(1)
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.client.Unlink(ctx, c.key(key)).Err()
}

// DeleteByPrefix removes every key under the cache prefix followed by prefix.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	_, err := c.scan(ctx, c.key(prefix)+"*", true)
	return err
}

// Clear removes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.DeleteByPrefix(ctx, "")
}

// scan walks the keys matching pattern with SCAN, unlinking them in
// batches when unlink is set, and returns how many it saw.
func (c *RedisCache) scan(ctx context.Context, pattern string, unlink bool) (int, error) {
	n := 0
	batch := make([]string, 0, redisScanBatch)
	flush := func() error {
		if !unlink || len(batch) == 0 {
			batch = batch[:0]
			return nil
		}
		err := c.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}

	iter := c.client.Scan(ctx, 0, pattern, redisScanBatch).Iterator()
	for iter.Next(ctx) {
		n++
		batch = append(batch, iter.Val())
		if len(batch) == redisScanBatch {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return n, err
	}
	return n, flush()
}

func (c *RedisCache) Has(ctx context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	return n > 0, err
}

// Close closes the connection pool. It is safe to call more than once.
func (c *RedisCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		return c.client.Close()
	}
	return nil
}

// Stats returns this instance's counters and the number of keys under the prefix.
func (c *RedisCache) Stats() Stats {
	stats := c.snapshot()
	if c.closed.Load() {
		return stats
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if n, err := c.scan(ctx, c.prefix+"*", false); err == nil {
		stats.Items = n
	}
	return stats
}

func (c *RedisCache) ResetStats() {
	c.reset()
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.client.Ping(ctx).Err()
}

var (
	_ Cacher        = (*RedisCache)(nil)
	_ StatsProvider = (*RedisCache)(nil)
	_ Pinger        = (*RedisCache)(nil)
)
