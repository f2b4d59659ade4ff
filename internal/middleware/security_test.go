// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) http.Header {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	SecurityHeaders(cfg)(okHandler()).ServeHTTP(rr, req)
	return rr.Header()
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS string
	}{
		{name: "production", isDev: false, wantHSTS: "max-age=31536000; includeSubDomains"},
		{name: "development", isDev: true, wantHSTS: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := serveWithHeaders(DefaultSecurityHeadersConfig(tt.isDev), "/api/public/translations")

			assert.Equal(t, tt.wantHSTS, h.Get("Strict-Transport-Security"))
			assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
			assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
			assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'none'")
		})
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/health"}

	assert.Empty(t, serveWithHeaders(cfg, "/health").Get("X-Content-Type-Options"))
	assert.Equal(t, "nosniff", serveWithHeaders(cfg, "/api/public/projects").Get("X-Content-Type-Options"))
}

func TestSecurityHeadersHSTSDisabled(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.HSTSMaxAge = 0

	assert.Empty(t, serveWithHeaders(cfg, "/").Get("Strict-Transport-Security"))
}

func TestBuildCSP(t *testing.T) {
	got := buildCSP(map[string]string{
		"form-action": "'none'",
		"default-src": "'self'",
		"unknown":     "ignored",
	})
	assert.Equal(t, "default-src 'self'; form-action 'none'", got)
}

func TestNoStore(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/public/translations", nil)
	rr := httptest.NewRecorder()
	NoStore(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
}
