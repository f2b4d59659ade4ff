// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/translation"
)

func TestPublicTeamMember(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/api/team/managing-partner", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Managing Partner", dig(resp.Body, "member", "translations", "name", "en"))
	assert.Equal(t, "", dig(resp.Body, "member", "translations", "bio_left", "en"))

	resp = env.do(http.MethodGet, "/api/team/nobody", nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = env.do(http.MethodGet, "/api/team", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.Body["members"], 1)
}

func TestAdminTeamSave(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	tests := []struct {
		name      string
		body      any
		wantSaved float64
	}{
		{
			name:      "single translation",
			body:      map[string]any{"slug": "managing-partner", "type": "bio_left", "language": "en", "value": "Twenty years in private equity."},
			wantSaved: 1,
		},
		{
			name: "translation set",
			body: map[string]any{"slug": "managing-partner", "translations": translation.TeamUpdate{
				model.TeamTranslationRole: {model.LangRU: "Партнёр", model.LangKZ: "Серіктес"},
			}},
			wantSaved: 2,
		},
		{
			name:      "new member photo",
			body:      map[string]any{"slug": "analyst", "photo": "/uploads/team/analyst.jpg"},
			wantSaved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPost, "/api/admin/team", tt.body)
			require.Equal(t, http.StatusOK, resp.Status, "%v", resp.Body)
			assert.Equal(t, tt.wantSaved, resp.Body["saved"])
		})
	}

	resp := env.do(http.MethodGet, "/api/team/managing-partner", nil)
	assert.Equal(t, "Twenty years in private equity.", dig(resp.Body, "member", "translations", "bio_left", "en"))
	assert.Equal(t, "Серіктес", dig(resp.Body, "member", "translations", "role", "kz"))
	assert.Equal(t, "Investments", dig(resp.Body, "member", "translations", "role", "en"))

	resp = env.do(http.MethodGet, "/api/team/analyst", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "/uploads/team/analyst.jpg", dig(resp.Body, "member", "photo"))
}

func TestAdminTeamSaveErrors(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	tests := []struct {
		name string
		body any
		want int
	}{
		{name: "no slug", body: map[string]any{"photo": "/x.jpg"}, want: http.StatusBadRequest},
		{name: "nothing to save", body: map[string]any{"slug": "managing-partner"}, want: http.StatusBadRequest},
		{name: "unknown language", body: map[string]any{"slug": "managing-partner", "type": "name", "language": "de", "value": "X"}, want: http.StatusBadRequest},
		{name: "unknown type", body: map[string]any{"slug": "managing-partner", "type": "motto", "language": "en", "value": "X"}, want: http.StatusBadRequest},
		{name: "unknown member", body: map[string]any{"slug": "nobody", "type": "name", "language": "en", "value": "X"}, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPost, "/api/admin/team", tt.body)
			assert.Equal(t, tt.want, resp.Status)
		})
	}
}
