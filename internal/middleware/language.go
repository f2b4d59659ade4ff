// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/model"
)

// ContextKeyLanguage holds the model.Lang of the request.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "site_lang"

// Language creates middleware that detects the request language.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch, updates cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. English
func Language(secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := model.DefaultLang

			if q := r.URL.Query().Get("lang"); q != "" {
				if l, ok := model.ParseLang(q); ok {
					lang = l
					http.SetCookie(w, &http.Cookie{
						Name:     LanguageCookieName,
						Value:    string(l),
						Path:     "/",
						MaxAge:   365 * 24 * 60 * 60,
						HttpOnly: true,
						Secure:   secureCookie,
						SameSite: http.SameSiteLaxMode,
					})
					next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
					return
				}
			}

			if c, err := r.Cookie(LanguageCookieName); err == nil {
				if l, ok := model.ParseLang(c.Value); ok {
					next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), l)))
					return
				}
			}

			if accept := r.Header.Get("Accept-Language"); accept != "" {
				lang = i18n.MatchLanguage(accept)
			}

			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// WithLang stores lang in ctx.
func WithLang(ctx context.Context, lang model.Lang) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// GetLang returns the request language, or English when none was detected.
func GetLang(r *http.Request) model.Lang {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(model.Lang); ok {
		return lang
	}
	return model.DefaultLang
}
