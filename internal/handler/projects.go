// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/falahcapital/site/internal/i18n"
	"github.com/falahcapital/site/internal/middleware"
	"github.com/falahcapital/site/internal/service"
	"github.com/falahcapital/site/internal/translation"
)

// ProjectsHandler handles portfolio projects.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// PublicList handles GET /api/projects. Only published projects are listed;
// ?homepage=true narrows to the homepage selection.
func (h *ProjectsHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	homepage, _ := strconv.ParseBool(r.URL.Query().Get("homepage"))

	projects, err := h.projects.ListWithTranslations(r.Context(), service.ProjectFilter{
		PublishedOnly: true,
		HomepageOnly:  homepage,
	})
	if err != nil {
		writeServiceError(w, r, err, "listing projects")
		return
	}
	writeJSONSuccess(w, map[string]any{"projects": projects})
}

// Portfolio handles GET /api/portfolio/{id}. The id may also be a slug.
// Unpublished projects are not found.
func (h *ProjectsHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetWithTranslations(r.Context(), chi.URLParam(r, "id"))
	if err == nil && !p.Published {
		err = service.ErrNotFound
	}
	if err != nil {
		writeServiceError(w, r, err, "loading project", "id", chi.URLParam(r, "id"))
		return
	}
	writeJSONSuccess(w, map[string]any{
		"project":      p.Project,
		"translations": p.Translations,
	})
}

// List handles GET /api/admin/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), service.ProjectFilter{})
	if err != nil {
		writeServiceError(w, r, err, "listing projects")
		return
	}
	writeJSONSuccess(w, map[string]any{"projects": projects})
}

// Create handles POST /api/admin/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}

	p, err := h.projects.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "creating project", "title", in.Title)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"project": p})
}

// Update handles PUT /api/admin/projects/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in service.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}

	p, err := h.projects.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err, "updating project", "id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"project": p,
		"message": i18n.T(middleware.GetLang(r), "msg.saved"),
	})
}

// Delete handles DELETE /api/admin/projects/{id}.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.projects.Get(r.Context(), id)
	if err == nil {
		err = h.projects.Delete(r.Context(), p.ID)
	}
	if err != nil {
		writeServiceError(w, r, err, "deleting project", "id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"message": i18n.T(middleware.GetLang(r), "msg.deleted", p.Title),
	})
}

// Translations handles GET /api/admin/projects/{id}/translations.
func (h *ProjectsHandler) Translations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.projects.GetWithTranslations(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "loading project translations", "id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"translations": p.Translations})
}

// SaveTranslations handles POST /api/admin/projects/{id}/translations.
// Fields left out of the payload are not written.
func (h *ProjectsHandler) SaveTranslations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var u translation.ProjectUpdate
	if !decodeJSON(w, r, &u) {
		return
	}

	n, err := h.projects.SaveTranslations(r.Context(), id, u)
	if err != nil {
		writeServiceError(w, r, err, "saving project translations", "id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{
		"saved":   n,
		"message": i18n.T(middleware.GetLang(r), "msg.saved"),
	})
}
