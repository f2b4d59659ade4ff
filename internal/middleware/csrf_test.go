// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCSRFKey = []byte("12345678901234567890123456789012")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDefaultCSRFConfig(t *testing.T) {
	dev := DefaultCSRFConfig(testCSRFKey, true)
	assert.Len(t, dev.AuthKey, 32)
	assert.Contains(t, dev.TrustedOrigins, "localhost:8080")
	for _, origin := range dev.TrustedOrigins {
		assert.NotContains(t, origin, "http", "trusted origins are host:port values")
	}

	prod := DefaultCSRFConfig(testCSRFKey, false)
	assert.Empty(t, prod.TrustedOrigins)
}

func TestCSRF(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testCSRFKey, false))(okHandler())

	tests := []struct {
		name      string
		method    string
		fetchSite string
		want      int
	}{
		{name: "safe method cross-site", method: http.MethodGet, fetchSite: "cross-site", want: http.StatusOK},
		{name: "same-origin write", method: http.MethodPost, fetchSite: "same-origin", want: http.StatusOK},
		{name: "non-browser write", method: http.MethodPost, want: http.StatusOK},
		{name: "cross-site write", method: http.MethodPost, fetchSite: "cross-site", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/admin/translations", nil)
			if tt.fetchSite != "" {
				req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestCSRFErrorIsJSON(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testCSRFKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/config", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}
