// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/model"
)

// maxTrackedIPs bounds the per-IP limiter map between prunes.
const maxTrackedIPs = 10000

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login POSTs per second per client IP.
	IPRateLimit float64
	IPBurst     int

	// MaxFailedAttempts within AttemptWindow lock the account.
	MaxFailedAttempts int
	AttemptWindow     time.Duration

	// LockoutDuration is the first lockout. Each further lockout doubles it
	// up to MaxLockoutDuration.
	LockoutDuration    time.Duration
	MaxLockoutDuration time.Duration
}

// DefaultLoginProtectionConfig allows one login every two seconds per IP
// with a burst of five, and locks an account for 15 minutes after five
// failures.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:        0.5,
		IPBurst:            5,
		MaxFailedAttempts:  5,
		AttemptWindow:      15 * time.Minute,
		LockoutDuration:    15 * time.Minute,
		MaxLockoutDuration: 24 * time.Hour,
	}
}

// withDefaults fills zero fields from DefaultLoginProtectionConfig.
func (c LoginProtectionConfig) withDefaults() LoginProtectionConfig {
	d := DefaultLoginProtectionConfig()
	if c.IPRateLimit <= 0 {
		c.IPRateLimit = d.IPRateLimit
	}
	if c.IPBurst <= 0 {
		c.IPBurst = d.IPBurst
	}
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = d.MaxFailedAttempts
	}
	if c.AttemptWindow <= 0 {
		c.AttemptWindow = d.AttemptWindow
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = d.LockoutDuration
	}
	if c.MaxLockoutDuration < c.LockoutDuration {
		c.MaxLockoutDuration = max(d.MaxLockoutDuration, c.LockoutDuration)
	}
	return c
}

// accountState is the failure history of one username.
type accountState struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtection throttles login POSTs per client IP and locks accounts
// after repeated failures. Unknown usernames are tracked like real ones.
type LoginProtection struct {
	cfg LoginProtectionConfig
	ips *limiterCache[string]

	mu       sync.Mutex
	accounts map[string]*accountState

	now func() time.Time
}

// NewLoginProtection creates a LoginProtection. Zero config fields take
// their defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	cfg = cfg.withDefaults()
	return &LoginProtection{
		cfg:      cfg,
		ips:      newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		accounts: make(map[string]*accountState),
		now:      time.Now,
	}
}

// AllowIP reports whether another login attempt from ip may proceed.
func (lp *LoginProtection) AllowIP(ip string) bool {
	return lp.ips.get(ip).Allow()
}

// Locked reports whether username is locked and for how much longer.
func (lp *LoginProtection) Locked(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[username]
	if !ok {
		return false, 0
	}
	if left := st.lockedUntil.Sub(lp.now()); left > 0 {
		return true, left
	}
	return false, 0
}

// Fail records a failed login for username. When the failure locks the
// account it returns true and the lockout length.
func (lp *LoginProtection) Fail(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	st, ok := lp.accounts[username]
	if !ok {
		st = &accountState{windowStart: now}
		lp.accounts[username] = st
	}
	if now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
		st.failures = 0
		st.windowStart = now
	}

	st.failures++
	if st.failures < lp.cfg.MaxFailedAttempts {
		slog.Debug("failed login recorded", "username", username, "failures", st.failures)
		return false, 0
	}

	d := lp.lockoutFor(st.lockouts)
	st.lockedUntil = now.Add(d)
	st.lockouts++
	st.failures = 0

	slog.Warn("account locked after failed logins",
		"username", username,
		"category", model.EventCategoryAuth,
		"lockouts", st.lockouts,
		"duration", d,
	)
	return true, d
}

// lockoutFor returns the lockout length after n previous lockouts.
func (lp *LoginProtection) lockoutFor(n int) time.Duration {
	d := lp.cfg.LockoutDuration
	for range n {
		d *= 2
		if d >= lp.cfg.MaxLockoutDuration {
			return lp.cfg.MaxLockoutDuration
		}
	}
	return d
}

// Succeed forgets the failure history of username.
func (lp *LoginProtection) Succeed(username string) {
	lp.mu.Lock()
	delete(lp.accounts, username)
	lp.mu.Unlock()
}

// Remaining returns how many failures username may still make before
// being locked.
func (lp *LoginProtection) Remaining(username string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[username]
	if !ok || lp.now().Sub(st.windowStart) > lp.cfg.AttemptWindow {
		return lp.cfg.MaxFailedAttempts
	}
	return max(lp.cfg.MaxFailedAttempts-st.failures, 0)
}

// Run prunes stale state every interval until ctx is done.
func (lp *LoginProtection) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lp.prune()
		}
	}
}

// prune drops accounts whose lockout and attempt window have both passed.
func (lp *LoginProtection) prune() {
	if lp.ips.clearIfExceeds(maxTrackedIPs) {
		slog.Info("cleared login rate limiters", "limit", maxTrackedIPs)
	}

	now := lp.now()
	lp.mu.Lock()
	defer lp.mu.Unlock()
	for username, st := range lp.accounts {
		if now.After(st.lockedUntil) && now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
			delete(lp.accounts, username)
		}
	}
}

// Middleware throttles POST requests per client IP. Apply it to the login route.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !lp.AllowIP(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip, "category", model.EventCategoryAuth)
				writeJSONError(w, http.StatusTooManyRequests, i18n.T(GetLang(r), "error.rate_limited"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
