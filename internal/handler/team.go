// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/service"
	"github.com/falahcapital/site/internal/translation"
)

// TeamHandler handles team members and their translations.
type TeamHandler struct {
	team *service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(team *service.TeamService) *TeamHandler {
	return &TeamHandler{team: team}
}

// saveTeamRequest accepts a photo change, a single translation
// {"type", "language", "value"}, a set of translations, or any mix.
type saveTeamRequest struct {
	Slug         string                 `json:"slug"`
	Photo        *string                `json:"photo"`
	Type         string                 `json:"type"`
	Language     model.Lang             `json:"language"`
	Value        *string                `json:"value"`
	Translations translation.TeamUpdate `json:"translations"`
}

// update folds the single translation form into the translations map.
func (req saveTeamRequest) update() translation.TeamUpdate {
	u := translation.TeamUpdate{}
	for typ, values := range req.Translations {
		u[typ] = values
	}
	if req.Type != "" && req.Language != "" && req.Value != nil {
		if u[req.Type] == nil {
			u[req.Type] = map[model.Lang]string{}
		}
		u[req.Type][req.Language] = *req.Value
	}
	return u
}

// Get handles GET /api/team/{slug}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	member, err := h.team.Get(r.Context(), slug)
	if err != nil {
		writeServiceError(w, r, err, "loading team member", "slug", slug)
		return
	}
	writeJSONSuccess(w, map[string]any{"member": member})
}

// List handles GET /api/team and GET /api/admin/team.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "listing team members")
		return
	}
	writeJSONSuccess(w, map[string]any{"members": members})
}

// Save handles POST /api/admin/team.
func (h *TeamHandler) Save(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	var req saveTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_payload"))
		return
	}

	u := req.update()
	if req.Photo == nil && len(u) == 0 {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_payload"))
		return
	}

	if req.Photo != nil {
		if _, err := h.team.UpsertMember(r.Context(), req.Slug, *req.Photo); err != nil {
			writeServiceError(w, r, err, "saving team member photo", "slug", req.Slug)
			return
		}
	}

	saved := 0
	if len(u) > 0 {
		n, err := h.team.Save(r.Context(), req.Slug, u)
		if err != nil {
			writeServiceError(w, r, err, "saving team translations", "slug", req.Slug)
			return
		}
		saved = n
	}

	writeJSONSuccess(w, map[string]any{
		"saved":   saved,
		"message": i18n.T(lang, "msg.saved"),
	})
}
