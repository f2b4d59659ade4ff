// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/service"
)

// AuthHandler handles admin login, logout and password changes.
type AuthHandler struct {
	users           *service.UserService
	events          *service.EventService
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(users *service.UserService, events *service.EventService, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		users:           users,
		events:          events,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.invalid_credentials"))
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.Locked(username); locked {
			h.logAuth(r, model.EventLevelWarning, "Login attempt on locked account", map[string]any{"username": username})
			writeJSONError(w, http.StatusTooManyRequests, i18n.T(lang, "error.too_many_attempts", seconds(remaining)))
			return
		}
	}

	user, err := h.users.Authenticate(r.Context(), username, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			writeServiceError(w, r, err, "login failed", "username", username)
			return
		}

		h.logAuth(r, model.EventLevelWarning, "Login failed", map[string]any{"username": username})
		// Unknown usernames count too, so lockout does not reveal which accounts exist.
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.Fail(username); locked {
				writeJSONError(w, http.StatusTooManyRequests, i18n.T(lang, "error.too_many_attempts", seconds(lockDuration)))
				return
			}
		}
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.Succeed(username)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		writeServiceError(w, r, err, "session renewal error")
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username, "category", model.EventCategoryAuth)
	h.logAuth(r, model.EventLevelInfo, "User logged in", map[string]any{"username": user.Username})

	writeJSONSuccess(w, map[string]any{
		"message": i18n.T(lang, "msg.logged_in"),
		"user":    user,
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if userID > 0 {
		h.logAuth(r, model.EventLevelInfo, "User logged out", map[string]any{"user_id": userID})
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	writeJSONSuccess(w, map[string]any{
		"message": i18n.T(middleware.GetLang(r), "msg.logged_out"),
	})
}

// Me handles GET /api/admin/me. Anonymous callers get "user": null.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if userID == 0 {
		writeJSONSuccess(w, map[string]any{"user": nil})
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = h.sessionManager.Destroy(r.Context())
			writeJSONSuccess(w, map[string]any{"user": nil})
			return
		}
		writeServiceError(w, r, err, "loading current user", "user_id", userID)
		return
	}

	writeJSONSuccess(w, map[string]any{"user": user})
}

// UpdatePassword handles POST /api/admin/update-password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	userID := middleware.GetUserID(r)

	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.logAuth(r, model.EventLevelWarning, "Password change rejected", map[string]any{"user_id": userID})
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.wrong_password"))
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "changing password", "user_id", userID)
		return
	}

	// Keep the current session valid under a fresh token.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
	}

	h.logAuth(r, model.EventLevelInfo, "Password changed", map[string]any{"user_id": userID})
	writeJSONSuccess(w, map[string]any{
		"message": i18n.T(lang, "msg.password_changed"),
	})
}

func (h *AuthHandler) logAuth(r *http.Request, level, message string, metadata map[string]any) {
	if h.events == nil {
		return
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["ip"] = r.RemoteAddr
	if err := h.events.LogAuthEvent(r.Context(), level, message, metadata); err != nil {
		slog.Error("failed to record auth event", "error", err)
	}
}

// seconds rounds d up to whole seconds for user-facing messages.
func seconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
