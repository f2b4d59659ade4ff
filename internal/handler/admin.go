// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/service"
)

// maxEventsLimit caps GET /api/admin/events.
const maxEventsLimit = 500

// AdminHandler serves the admin maintenance endpoints: event log and caches.
type AdminHandler struct {
	events *service.EventService
	cache  *cache.Manager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(events *service.EventService, c *cache.Manager) *AdminHandler {
	return &AdminHandler{events: events, cache: c}
}

// Events handles GET /api/admin/events?limit=N.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	limit = min(limit, maxEventsLimit)

	events, err := h.events.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "listing events")
		return
	}
	writeJSONSuccess(w, map[string]any{"events": events})
}

// CacheStats handles GET /api/admin/cache.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"backend": h.cache.Backend(),
		"caches":  h.cache.AllStats(),
	})
}

// ClearCache handles POST /api/admin/cache/clear.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.ClearAll(r.Context()); err != nil {
		writeServiceError(w, r, err, "clearing caches")
		return
	}
	slog.Info("caches cleared by admin", "user_id", middleware.GetUserID(r), "category", model.EventCategoryCache)
	writeJSONSuccess(w, map[string]any{"message": i18n.T(middleware.GetLang(r), "msg.saved")})
}
