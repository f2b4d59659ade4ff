// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// language detection and request protection.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for user data.
const (
	ContextKeyUser ContextKey = "user"
)

// Session keys for storing user data.
const (
	SessionKeyUserID = "user_id"
)

// UserLoader loads the account behind a session.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
}

// Auth creates middleware that requires authentication.
// Requests without a user session get a 401 JSON error.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetInt64(r.Context(), SessionKeyUserID) == 0 {
				writeJSONError(w, http.StatusUnauthorized, i18n.T(GetLang(r), "error.unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current user into the request context.
// This should be used after Auth middleware. A session whose user no longer
// exists is destroyed.
func LoadUser(sm *scs.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				slog.Warn("session user could not be loaded", "user_id", userID, "error", err,
					"category", model.EventCategoryAuth)
				_ = sm.Destroy(r.Context())
				writeJSONError(w, http.StatusUnauthorized, i18n.T(GetLang(r), "error.unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum user role.
// Roles are hierarchical: admin > editor.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				writeJSONError(w, http.StatusUnauthorized, i18n.T(GetLang(r), "error.unauthorized"))
				return
			}

			if roleLevel(user.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"required_role", minRole,
					"category", model.EventCategoryAuth,
				)
				writeJSONError(w, http.StatusForbidden, i18n.T(GetLang(r), "error.forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for RequireRole(model.RoleAdmin).
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}
