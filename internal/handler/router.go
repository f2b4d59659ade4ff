// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/service"
	"github.com/falahcapital/site/internal/version"
)

// Route paths.
const (
	RouteHealth = "/health"

	RoutePublicTranslations = "/api/translations"
	RoutePublicConfig       = "/api/config"
	RoutePublicProjects     = "/api/projects"
	RoutePortfolio          = "/api/portfolio/{id}"
	RoutePublicTeam         = "/api/team"
	RouteTeamMember         = "/api/team/{slug}"

	RouteAdmin                = "/api/admin"
	RouteLogin                = "/login"
	RouteLogout               = "/logout"
	RouteMe                   = "/me"
	RouteUpdatePassword       = "/update-password"
	RouteTranslations         = "/translations"
	RouteTranslationsProjects = "/translations/projects"
	RouteConfig               = "/config"
	RouteProjects             = "/projects"
	RouteProject              = "/projects/{id}"
	RouteProjectTranslations  = "/projects/{id}/translations"
	RouteTeam                 = "/team"
	RouteEvents               = "/events"
	RouteCache                = "/cache"
	RouteCacheClear           = "/cache/clear"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	DB              *sql.DB
	Cache           *cache.Manager
	Sessions        *scs.SessionManager
	Translations    *service.TranslationService
	Projects        *service.ProjectService
	Team            *service.TeamService
	Config          *service.ConfigService
	Users           *service.UserService
	Events          *service.EventService
	LoginProtection *middleware.LoginProtection
	RateLimiter     *middleware.GlobalRateLimiter

	// CSRFKey is the 32-byte key for CSRF protection on admin routes.
	CSRFKey       []byte
	IsDevelopment bool
	// Build is reported to admins by the health endpoint.
	Build version.Info
	// RequestTimeout bounds each request. Zero means 30 seconds.
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP routes of the site backend.
func NewRouter(d Deps) http.Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	authHandler := NewAuthHandler(d.Users, d.Events, d.Sessions, d.LoginProtection)
	translationsHandler := NewTranslationsHandler(d.Translations, d.Projects)
	projectsHandler := NewProjectsHandler(d.Projects)
	configHandler := NewConfigHandler(d.Config)
	teamHandler := NewTeamHandler(d.Team)
	adminHandler := NewAdminHandler(d.Events, d.Cache)
	healthHandler := NewHealthHandler(d.DB, d.Cache, d.Build)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.IsDevelopment)))
	r.Use(middleware.Language(!d.IsDevelopment))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware())
	}
	r.Use(d.Sessions.LoadAndSave)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, i18n.T(middleware.GetLang(r), "error.not_found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, i18n.T(middleware.GetLang(r), "error.invalid_payload"))
	})

	// Health is public; admins get check details.
	r.With(middleware.LoadUser(d.Sessions, d.Users)).Get(RouteHealth, healthHandler.Health)

	// Public content. Every read reflects the latest save.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get(RoutePublicTranslations, translationsHandler.Public)
		r.Get(RoutePublicConfig, configHandler.Get)
		r.Get(RoutePublicProjects, projectsHandler.PublicList)
		r.Get(RoutePortfolio, projectsHandler.Portfolio)
		r.Get(RoutePublicTeam, teamHandler.List)
		r.Get(RouteTeamMember, teamHandler.Get)
	})

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(d.CSRFKey, d.IsDevelopment)))

		if d.LoginProtection != nil {
			r.With(d.LoginProtection.Middleware()).Post(RouteLogin, authHandler.Login)
		} else {
			r.Post(RouteLogin, authHandler.Login)
		}
		r.Post(RouteLogout, authHandler.Logout)
		r.Get(RouteMe, authHandler.Me)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Sessions))
			r.Use(middleware.LoadUser(d.Sessions, d.Users))
			r.Use(middleware.RequireRole(model.RoleEditor))

			r.Post(RouteUpdatePassword, authHandler.UpdatePassword)

			r.Get(RouteTranslations, translationsHandler.Get)
			r.Post(RouteTranslations, translationsHandler.Save)
			r.Get(RouteTranslationsProjects, translationsHandler.ProjectsBulk)

			r.Get(RouteConfig, configHandler.Get)
			r.Post(RouteConfig, configHandler.Save)

			r.Get(RouteProjects, projectsHandler.List)
			r.Post(RouteProjects, projectsHandler.Create)
			r.Put(RouteProject, projectsHandler.Update)
			r.Delete(RouteProject, projectsHandler.Delete)
			r.Get(RouteProjectTranslations, projectsHandler.Translations)
			r.Post(RouteProjectTranslations, projectsHandler.SaveTranslations)

			r.Get(RouteTeam, teamHandler.List)
			r.Post(RouteTeam, teamHandler.Save)

			// Maintenance is admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Get(RouteEvents, adminHandler.Events)
				r.Get(RouteCache, adminHandler.CacheStats)
				r.Post(RouteCacheClear, adminHandler.ClearCache)
			})
		})
	})

	return r
}
