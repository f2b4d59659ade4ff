// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("SITE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: SITE_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	url := skipIfNoRedis(t)
	ctx := context.Background()

	c, err := NewRedisCache(ctx, url, "site-test:", time.Minute)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	require.NoError(t, c.Clear(ctx))

	require.NoError(t, c.Set(ctx, "translations:tree", []byte(`{"k":1}`), 0))
	got, err := c.Get(ctx, "translations:tree")
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":1}`, string(got))

	// More keys than one UNLINK batch.
	for i := range redisScanBatch + 5 {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("projects:%d", i), []byte("1"), time.Minute))
	}
	assert.Equal(t, redisScanBatch+6, c.Stats().Items)

	require.NoError(t, c.DeleteByPrefix(ctx, "projects:"))
	has, err := c.Has(ctx, "projects:0")
	require.NoError(t, err)
	assert.False(t, has)
	has, err = c.Has(ctx, "translations:tree")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Ping(ctx), ErrCacheClosed)
	assert.NoError(t, c.Close())
}

func TestNewRedisCacheErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "malformed", url: "not-a-url"},
		{name: "unreachable", url: "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisCache(ctx, tt.url, "", time.Minute)
			assert.Error(t, err)
		})
	}
}

func TestNewFallsBackToMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	c, backend := New(cfg)
	defer func() { _ = c.Close() }()

	assert.Equal(t, BackendMemory, backend)
	assert.IsType(t, &MemoryCache{}, c)
}
