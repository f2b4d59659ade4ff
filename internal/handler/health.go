// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/version"
)

// Health states. The database is required; the cache is not.
const (
	healthHealthy   = "healthy"
	healthDegraded  = "degraded"
	healthUnhealthy = "unhealthy"
)

// HealthHandler handles GET /health.
type HealthHandler struct {
	db        *sql.DB
	cache     *cache.Manager
	build     version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. c may be nil.
func NewHealthHandler(db *sql.DB, c *cache.Manager, build version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		build:     build.OrDev(),
		startTime: time.Now(),
	}
}

// Check is the result of one dependency probe.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo is runtime information for verbose admin requests.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health reports "healthy", "degraded" (cache down) or "unhealthy"
// (database down, 503). Only admins see the individual checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": probe(func() (string, error) { return "connected", h.db.PingContext(r.Context()) }),
		"cache":    h.checkCache(r.Context()),
	}

	status, code := healthHealthy, http.StatusOK
	switch {
	case checks["database"].Status != healthHealthy:
		status, code = healthUnhealthy, http.StatusServiceUnavailable
	case checks["cache"].Status != healthHealthy:
		status = healthDegraded
	}

	body := map[string]any{"status": status}
	if user := middleware.GetUser(r); user != nil && user.Role == model.RoleAdmin {
		body["timestamp"] = time.Now().UTC()
		body["uptime"] = time.Since(h.startTime).Round(time.Second).String()
		body["build"] = h.build
		body["checks"] = checks
		if r.URL.Query().Get("verbose") == "true" {
			body["system"] = systemInfo()
		}
	}
	writeJSONStatus(w, code, body)
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: healthHealthy, Message: "disabled"}
	}
	return probe(func() (string, error) { return h.cache.Backend(), h.cache.Ping(ctx) })
}

// probe times fn. On failure the error replaces the message.
func probe(fn func() (string, error)) Check {
	start := time.Now()
	msg, err := fn()
	c := Check{Status: healthHealthy, Message: msg, Latency: time.Since(start).String()}
	if err != nil {
		c.Status = healthUnhealthy
		c.Message = msg + ": " + err.Error()
	}
	return c
}

func systemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     humanize.IBytes(m.Alloc),
		MemSys:       humanize.IBytes(m.Sys),
	}
}
