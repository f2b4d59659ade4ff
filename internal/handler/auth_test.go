// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
)

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/api/admin/me", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Nil(t, resp.Body["user"])

	resp = env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": store.DefaultAdminUsername,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, i18n.T(model.LangEN, "error.invalid_credentials"), resp.Body["error"])

	env.login()

	resp = env.do(http.MethodGet, "/api/admin/me", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, store.DefaultAdminUsername, dig(resp.Body, "user", "username"))
	assert.Nil(t, dig(resp.Body, "user", "password_hash"))

	resp = env.do(http.MethodPost, "/api/admin/logout", nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = env.do(http.MethodGet, "/api/admin/me", nil)
	assert.Nil(t, resp.Body["user"])
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{name: "empty", body: map[string]string{}, want: http.StatusBadRequest},
		{name: "missing password", body: map[string]string{"username": "admin"}, want: http.StatusBadRequest},
		{name: "unknown user", body: map[string]string{"username": "ghost", "password": "secret123"}, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPost, "/api/admin/login", tt.body)
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, false, resp.Body["success"])
		})
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv(t)

	var resp testResponse
	for range 5 {
		resp = env.do(http.MethodPost, "/api/admin/login", map[string]string{
			"username": store.DefaultAdminUsername,
			"password": "wrong-password",
		})
	}
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)

	// Even the right password is refused while locked.
	resp = env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": store.DefaultAdminUsername,
		"password": store.DefaultAdminPassword,
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
}

func TestAdminRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/admin/translations", want: i18n.T(model.LangEN, "error.unauthorized")},
		{path: "/api/admin/translations?lang=ru", want: i18n.T(model.LangRU, "error.unauthorized")},
		{path: "/api/admin/projects?lang=kz", want: i18n.T(model.LangKZ, "error.unauthorized")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := env.do(http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.Status)
			assert.Equal(t, tt.want, resp.Body["error"])
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	resp := env.do(http.MethodPost, "/api/admin/update-password", map[string]string{
		"current_password": "not-it",
		"new_password":     "brand-new-pass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, i18n.T(model.LangEN, "error.wrong_password"), resp.Body["error"])

	resp = env.do(http.MethodPost, "/api/admin/update-password", map[string]string{
		"current_password": store.DefaultAdminPassword,
		"new_password":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Body["error"], "8")

	resp = env.do(http.MethodPost, "/api/admin/update-password", map[string]string{
		"current_password": store.DefaultAdminPassword,
		"new_password":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, resp.Status)

	// The session survives the change.
	resp = env.do(http.MethodGet, "/api/admin/me", nil)
	assert.Equal(t, store.DefaultAdminUsername, dig(resp.Body, "user", "username"))

	env.do(http.MethodPost, "/api/admin/logout", nil)
	resp = env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": store.DefaultAdminUsername,
		"password": "brand-new-pass",
	})
	assert.Equal(t, http.StatusOK, resp.Status)
}
