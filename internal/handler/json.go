// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the JSON HTTP handlers of the site backend.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/falahcapital/site/internal/auth"
	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/service"
)

// maxBodyBytes caps request bodies. Translation saves carry whole sections.
const maxBodyBytes = 2 << 20

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	writeJSON(w, http.StatusOK, data)
}

// writeJSON writes data with "success": true added.
func writeJSON(w http.ResponseWriter, statusCode int, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONStatus writes data as is, without the success flag.
func writeJSONStatus(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, i18n.T(middleware.GetLang(r), "error.invalid_payload"))
		return false
	}
	return true
}

// writeServiceError maps a service error to a status code and a localized
// banner. Unexpected causes are logged and never echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string, args ...any) {
	lang := middleware.GetLang(r)

	var batchErr *service.BatchError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
	case errors.Is(err, service.ErrInvalidLanguage):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_language"))
	case errors.Is(err, auth.ErrPasswordTooShort):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.password_too_short", auth.MinPasswordLength))
	case errors.Is(err, service.ErrInvalidPayload):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_payload"))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
	case errors.As(err, &batchErr):
		slog.Error(logMsg, append(args, "error", err, "failed", batchErr.Failed, "total", batchErr.Total)...)
		writeJSONError(w, http.StatusInternalServerError,
			i18n.T(lang, "error.save_partial", batchErr.Failed, batchErr.Total))
	default:
		slog.Error(logMsg, append(args, "error", err)...)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.generic"))
	}
}
