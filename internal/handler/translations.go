// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/service"
)

// TranslationsHandler serves the site translation tree.
type TranslationsHandler struct {
	translations *service.TranslationService
	projects     *service.ProjectService
}

// NewTranslationsHandler creates a new TranslationsHandler.
func NewTranslationsHandler(translations *service.TranslationService, projects *service.ProjectService) *TranslationsHandler {
	return &TranslationsHandler{translations: translations, projects: projects}
}

// saveTranslationsRequest accepts both save payloads: the batch form
// {"updates": {...}} and the legacy single row {"key", "language", "value"}.
type saveTranslationsRequest struct {
	Updates  map[string]any  `json:"updates"`
	Key      string          `json:"key"`
	Language string          `json:"language"`
	Value    json.RawMessage `json:"value"`
}

func (req saveTranslationsRequest) isSingle() bool {
	return req.Key != "" && req.Language != "" && req.Value != nil
}

// Public handles GET /api/translations: bundled defaults overlaid with the
// saved tree.
func (h *TranslationsHandler) Public(w http.ResponseWriter, r *http.Request) {
	snap, err := h.translations.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "loading translation snapshot")
		return
	}
	writeJSONSuccess(w, map[string]any{"translations": snap})
}

// Get handles GET /api/admin/translations. It returns the decoded tree
// without defaults, or one subtree when ?key= is given.
func (h *TranslationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if key := strings.TrimSpace(r.URL.Query().Get("key")); key != "" {
		v, ok, err := h.translations.Subtree(r.Context(), key)
		if err != nil {
			writeServiceError(w, r, err, "loading translations", "key", key)
			return
		}
		if !ok {
			writeServiceError(w, r, service.ErrNotFound, "")
			return
		}
		writeJSONSuccess(w, map[string]any{"key": key, "translations": v})
		return
	}

	tree, err := h.translations.Tree(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "loading translations")
		return
	}
	writeJSONSuccess(w, map[string]any{"translations": tree})
}

// Save handles POST /api/admin/translations.
func (h *TranslationsHandler) Save(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	var req saveTranslationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.isSingle() {
		var value any
		if err := json.Unmarshal(req.Value, &value); err != nil {
			writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_payload"))
			return
		}
		if err := h.translations.SaveSingle(r.Context(), req.Key, req.Language, value); err != nil {
			writeServiceError(w, r, err, "saving translation", "key", req.Key, "language", req.Language)
			return
		}
		writeJSONSuccess(w, map[string]any{"saved": 1, "message": i18n.T(lang, "msg.saved")})
		return
	}

	if req.Updates == nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_payload"))
		return
	}

	n, err := h.translations.SaveUpdates(r.Context(), req.Updates)
	if err != nil {
		writeServiceError(w, r, err, "saving translations", "keys", len(req.Updates))
		return
	}
	writeJSONSuccess(w, map[string]any{"saved": n, "message": i18n.T(lang, "msg.saved")})
}

// ProjectsBulk handles GET /api/admin/translations/projects?ids=a,b.
func (h *TranslationsHandler) ProjectsBulk(w http.ResponseWriter, r *http.Request) {
	ids := splitIDs(r.URL.Query().Get("ids"))

	translations, err := h.projects.TranslationsBulk(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err, "loading project translations", "projects", len(ids))
		return
	}
	writeJSONSuccess(w, map[string]any{"translations": translations})
}

// splitIDs parses a comma separated id list, dropping blanks and duplicates.
func splitIDs(raw string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
