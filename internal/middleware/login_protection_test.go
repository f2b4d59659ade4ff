// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLoginProtection(cfg LoginProtectionConfig) (*LoginProtection, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	lp := NewLoginProtection(cfg)
	lp.now = clock.now
	return lp, clock
}

func TestLoginProtectionConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoginProtectionConfig
		want LoginProtectionConfig
	}{
		{
			name: "zero value",
			want: DefaultLoginProtectionConfig(),
		},
		{
			name: "partial",
			cfg:  LoginProtectionConfig{MaxFailedAttempts: 3, LockoutDuration: time.Minute},
			want: LoginProtectionConfig{
				IPRateLimit:        0.5,
				IPBurst:            5,
				MaxFailedAttempts:  3,
				AttemptWindow:      15 * time.Minute,
				LockoutDuration:    time.Minute,
				MaxLockoutDuration: 24 * time.Hour,
			},
		},
		{
			name: "cap below base",
			cfg:  LoginProtectionConfig{LockoutDuration: 48 * time.Hour, MaxLockoutDuration: time.Hour},
			want: LoginProtectionConfig{
				IPRateLimit:        0.5,
				IPBurst:            5,
				MaxFailedAttempts:  5,
				AttemptWindow:      15 * time.Minute,
				LockoutDuration:    48 * time.Hour,
				MaxLockoutDuration: 48 * time.Hour,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.withDefaults())
		})
	}
}

func TestLoginProtectionLockout(t *testing.T) {
	lp, clock := newTestLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     10 * time.Minute,
	})

	locked, _ := lp.Locked("admin")
	require.False(t, locked)

	for i := range 2 {
		locked, _ := lp.Fail("admin")
		require.False(t, locked, "failure %d", i+1)
	}
	assert.Equal(t, 1, lp.Remaining("admin"))

	locked, d := lp.Fail("admin")
	require.True(t, locked)
	assert.Equal(t, time.Minute, d)

	locked, left := lp.Locked("admin")
	assert.True(t, locked)
	assert.Equal(t, time.Minute, left)

	clock.advance(30 * time.Second)
	_, left = lp.Locked("admin")
	assert.Equal(t, 30*time.Second, left)

	clock.advance(31 * time.Second)
	locked, _ = lp.Locked("admin")
	assert.False(t, locked)
}

func TestLoginProtectionBackoff(t *testing.T) {
	lp, clock := newTestLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts:  1,
		LockoutDuration:    time.Minute,
		MaxLockoutDuration: 5 * time.Minute,
		AttemptWindow:      time.Hour,
	})

	want := []time.Duration{time.Minute, 2 * time.Minute, 4 * time.Minute, 5 * time.Minute, 5 * time.Minute}
	for i, w := range want {
		locked, d := lp.Fail("admin")
		require.True(t, locked)
		assert.Equal(t, w, d, "lockout %d", i+1)
		clock.advance(d)
	}
}

func TestLoginProtectionWindowReset(t *testing.T) {
	lp, clock := newTestLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		AttemptWindow:     time.Minute,
	})

	lp.Fail("admin")
	lp.Fail("admin")
	assert.Equal(t, 1, lp.Remaining("admin"))

	clock.advance(2 * time.Minute)
	assert.Equal(t, 3, lp.Remaining("admin"))

	locked, _ := lp.Fail("admin")
	assert.False(t, locked, "failures before the window do not count")
	assert.Equal(t, 2, lp.Remaining("admin"))
}

func TestLoginProtectionSucceedClearsHistory(t *testing.T) {
	lp, _ := newTestLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 3})

	lp.Fail("admin")
	lp.Fail("admin")
	lp.Succeed("admin")

	assert.Equal(t, 3, lp.Remaining("admin"))
}

func TestLoginProtectionLockoutIsPerAccount(t *testing.T) {
	lp, _ := newTestLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 2})

	lp.Fail("admin")
	locked, _ := lp.Fail("admin")
	require.True(t, locked)

	locked, _ = lp.Locked("editor")
	assert.False(t, locked)
	assert.Equal(t, 2, lp.Remaining("editor"))
}

func TestLoginProtectionPrune(t *testing.T) {
	lp, clock := newTestLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	lp.Fail("stale")
	lp.Fail("locked")
	lp.Fail("locked")

	clock.advance(90 * time.Second)
	lp.Fail("fresh")
	lp.prune()

	assert.NotContains(t, lp.accounts, "stale")
	assert.NotContains(t, lp.accounts, "locked")
	assert.Contains(t, lp.accounts, "fresh")
}

func TestLoginProtectionRunStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	lp := NewLoginProtection(LoginProtectionConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		lp.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "bare address from RealIP", remoteAddr: "10.0.0.5", want: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	wrapped := lp.Middleware()(okHandler())

	send := func(method, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/admin/login", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		return rr
	}

	require.Equal(t, http.StatusOK, send(http.MethodPost, "203.0.113.7:5555").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "203.0.113.7:5555").Code, "GET is not throttled")
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "203.0.113.8:5555").Code, "other IPs have their own bucket")

	rr := send(http.MethodPost, "203.0.113.7:6666")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}
