// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/service"
)

// ConfigHandler handles the site configuration map.
type ConfigHandler struct {
	config *service.ConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(config *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{config: config}
}

// Get handles GET /api/config and GET /api/admin/config.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	values, err := h.config.All(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "loading config")
		return
	}
	writeJSONSuccess(w, map[string]any{"config": values})
}

// Save handles POST /api/admin/config. The body is a flat object of
// config keys; each key is upserted.
func (h *ConfigHandler) Save(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if !decodeJSON(w, r, &values) {
		return
	}

	if err := h.config.Save(r.Context(), values); err != nil {
		writeServiceError(w, r, err, "saving config", "keys", len(values))
		return
	}
	writeJSONSuccess(w, map[string]any{
		"saved":   len(values),
		"message": i18n.T(middleware.GetLang(r), "msg.saved"),
	})
}
