// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/translation"
	"github.com/falahcapital/site/internal/util"
)

// ProjectStore is the row store surface used for portfolio projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, arg store.CreateProjectParams) (store.Project, error)
	UpdateProject(ctx context.Context, arg store.UpdateProjectParams) (store.Project, error)
	GetProject(ctx context.Context, id string) (store.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (store.Project, error)
	ListProjects(ctx context.Context, arg store.ListProjectsParams) ([]store.Project, error)
	DeleteProject(ctx context.Context, id string) (int64, error)
	ListProjectTranslations(ctx context.Context, projectID string) ([]store.ProjectTranslation, error)
	ListProjectTranslationsByProjectIDs(ctx context.Context, projectIDs []string) ([]store.ProjectTranslation, error)
	UpsertProjectTranslation(ctx context.Context, arg store.UpsertProjectTranslationParams) error
}

// ProjectInput holds the editable, non-localized fields of a project.
type ProjectInput struct {
	Slug           string             `json:"slug"`
	Title          string             `json:"title"`
	Image          string             `json:"image"`
	ContentImage   string             `json:"content_image"`
	Images         []string           `json:"images"`
	Badges         []model.BadgeStyle `json:"badges"`
	InvestmentYear *int               `json:"investment_year"`
	Published      bool               `json:"published"`
	ShowOnHomepage bool               `json:"show_on_homepage"`
}

// ProjectFilter narrows List.
type ProjectFilter struct {
	PublishedOnly bool
	HomepageOnly  bool
}

// ProjectService manages portfolio projects and their translations.
type ProjectService struct {
	store       ProjectStore
	cache       *cache.Manager
	concurrency int
	logger      *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(s ProjectStore, c *cache.Manager, concurrency int, logger *slog.Logger) *ProjectService {
	return &ProjectService{store: s, cache: c, concurrency: concurrency, logger: logger}
}

// List returns projects matching filter, newest first.
func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	rows, err := s.store.ListProjects(ctx, store.ListProjectsParams{
		PublishedOnly: filter.PublishedOnly,
		HomepageOnly:  filter.HomepageOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, s.toModel(r))
	}
	return projects, nil
}

// ListWithTranslations returns projects matching filter together with
// their translations, fetched in one query.
func (s *ProjectService) ListWithTranslations(ctx context.Context, filter ProjectFilter) ([]model.ProjectWithTranslations, error) {
	projects, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	translations, err := s.TranslationsBulk(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProjectWithTranslations, 0, len(projects))
	for _, p := range projects {
		out = append(out, model.ProjectWithTranslations{Project: p, Translations: translations[p.ID]})
	}
	return out, nil
}

// Get returns a project by id or slug.
func (s *ProjectService) Get(ctx context.Context, idOrSlug string) (model.Project, error) {
	row, err := s.store.GetProject(ctx, idOrSlug)
	if errors.Is(err, sql.ErrNoRows) {
		row, err = s.store.GetProjectBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, fmt.Errorf("getting project: %w", err)
	}
	return s.toModel(row), nil
}

// GetWithTranslations returns a project and its translations.
func (s *ProjectService) GetWithTranslations(ctx context.Context, idOrSlug string) (model.ProjectWithTranslations, error) {
	p, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return model.ProjectWithTranslations{}, err
	}
	tr, err := s.Translations(ctx, p.ID)
	if err != nil {
		return model.ProjectWithTranslations{}, err
	}
	return model.ProjectWithTranslations{Project: p, Translations: tr}, nil
}

// Create inserts a new project. The slug is derived from the title when
// empty and made unique with a numeric suffix.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (model.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Project{}, fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}

	slug, err := s.uniqueSlug(ctx, in.Slug, in.Title, "")
	if err != nil {
		return model.Project{}, err
	}
	images, badges, err := marshalProjectLists(in)
	if err != nil {
		return model.Project{}, err
	}

	now := time.Now()
	row, err := s.store.CreateProject(ctx, store.CreateProjectParams{
		ID:             uuid.NewString(),
		Slug:           slug,
		Title:          in.Title,
		Image:          in.Image,
		ContentImage:   in.ContentImage,
		Images:         images,
		Badges:         badges,
		InvestmentYear: util.NullInt64FromIntPtr(in.InvestmentYear),
		Published:      in.Published,
		ShowOnHomepage: in.ShowOnHomepage,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "id", row.ID, "slug", row.Slug)
	return s.toModel(row), nil
}

// Update replaces the non-localized fields of project id.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (model.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Project{}, fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}

	if _, err := s.store.GetProject(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, fmt.Errorf("getting project: %w", err)
	}

	slug, err := s.uniqueSlug(ctx, in.Slug, in.Title, id)
	if err != nil {
		return model.Project{}, err
	}
	images, badges, err := marshalProjectLists(in)
	if err != nil {
		return model.Project{}, err
	}

	row, err := s.store.UpdateProject(ctx, store.UpdateProjectParams{
		Slug:           slug,
		Title:          in.Title,
		Image:          in.Image,
		ContentImage:   in.ContentImage,
		Images:         images,
		Badges:         badges,
		InvestmentYear: util.NullInt64FromIntPtr(in.InvestmentYear),
		Published:      in.Published,
		ShowOnHomepage: in.ShowOnHomepage,
		UpdatedAt:      time.Now(),
		ID:             id,
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project: %w", err)
	}
	return s.toModel(row), nil
}

// Delete removes a project. Its translations are removed by the cascade.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	n, err := s.store.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := s.cache.InvalidateProjects(ctx, id); err != nil {
		s.logger.Warn("invalidating project cache", "id", id, "error", err)
	}
	s.logger.Info("project deleted", "id", id)
	return nil
}

// Translations returns the decoded translations of one project. A project
// without rows yields the empty value.
func (s *ProjectService) Translations(ctx context.Context, projectID string) (model.ProjectTranslations, error) {
	return s.cache.Projects.GetOrSet(ctx, projectID, func() (model.ProjectTranslations, error) {
		rows, err := s.store.ListProjectTranslations(ctx, projectID)
		if err != nil {
			return model.ProjectTranslations{}, fmt.Errorf("listing project translations: %w", err)
		}
		return translation.DecodeProject(toProjectRows(rows)), nil
	})
}

// TranslationsBulk decodes the translations of several projects with one
// query. Every requested id is present in the result.
func (s *ProjectService) TranslationsBulk(ctx context.Context, projectIDs []string) (map[string]model.ProjectTranslations, error) {
	if len(projectIDs) == 0 {
		return map[string]model.ProjectTranslations{}, nil
	}
	rows, err := s.store.ListProjectTranslationsByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("listing project translations: %w", err)
	}
	return translation.DecodeProjectsBulk(toProjectRows(rows), projectIDs), nil
}

// SaveTranslations writes the non-nil fields of u for projectID and
// returns the number of rows written.
func (s *ProjectService) SaveTranslations(ctx context.Context, projectID string, u translation.ProjectUpdate) (int, error) {
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("getting project: %w", err)
	}

	ops := translation.EncodeProject(projectID, u)
	if len(ops) == 0 {
		return 0, fmt.Errorf("%w: nothing to save", ErrInvalidPayload)
	}

	now := time.Now()
	writes := make([]writeFunc, 0, len(ops))
	for _, op := range ops {
		value, err := util.NullJSON(op.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, op.Type, err)
		}
		params := store.UpsertProjectTranslationParams{
			ID:              uuid.NewString(),
			ProjectID:       op.ProjectID,
			TranslationType: op.Type,
			Language:        op.Language.String(),
			Value:           value,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		writes = append(writes, func(ctx context.Context) error {
			if err := s.store.UpsertProjectTranslation(ctx, params); err != nil {
				return fmt.Errorf("upserting %s/%s: %w", params.TranslationType, params.Language, err)
			}
			return nil
		})
	}

	err := runBatch(ctx, s.concurrency, writes)
	if cerr := s.cache.InvalidateProjects(ctx, projectID); cerr != nil {
		s.logger.Warn("invalidating project cache", "id", projectID, "error", cerr)
	}
	if err != nil {
		s.logger.Error("saving project translations", "id", projectID, "error", err,
			"category", model.EventCategoryProject)
		return 0, err
	}

	s.logger.Info("project translations saved", "id", projectID, "rows", len(ops))
	return len(ops), nil
}

func (s *ProjectService) uniqueSlug(ctx context.Context, requested, title, selfID string) (string, error) {
	base := util.Slugify(requested)
	if base == "" {
		base = util.Slugify(title)
	}
	if base == "" {
		return "", fmt.Errorf("%w: cannot derive slug", ErrInvalidPayload)
	}

	slug := base
	for i := 2; ; i++ {
		existing, err := s.store.GetProjectBySlug(ctx, slug)
		if errors.Is(err, sql.ErrNoRows) {
			return slug, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if existing.ID == selfID {
			return slug, nil
		}
		slug = util.WithSuffix(base, i)
	}
}

func (s *ProjectService) toModel(r store.Project) model.Project {
	p := model.Project{
		ID:             r.ID,
		Slug:           r.Slug,
		Title:          r.Title,
		Image:          r.Image,
		ContentImage:   r.ContentImage,
		Images:         []string{},
		Badges:         []model.BadgeStyle{},
		InvestmentYear: util.IntPtrFromNullInt64(r.InvestmentYear),
		Published:      r.Published,
		ShowOnHomepage: r.ShowOnHomepage,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.Images != "" {
		if err := json.Unmarshal([]byte(r.Images), &p.Images); err != nil {
			s.logger.Warn("malformed project images", "id", r.ID, "error", err)
		}
	}
	if r.Badges != "" {
		if err := json.Unmarshal([]byte(r.Badges), &p.Badges); err != nil {
			s.logger.Warn("malformed project badges", "id", r.ID, "error", err)
		}
	}
	return p
}

func marshalProjectLists(in ProjectInput) (string, string, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	badges := in.Badges
	if badges == nil {
		badges = []model.BadgeStyle{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("%w: images: %v", ErrInvalidPayload, err)
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return "", "", fmt.Errorf("%w: badges: %v", ErrInvalidPayload, err)
	}
	return string(imagesJSON), string(badgesJSON), nil
}

func toProjectRows(rows []store.ProjectTranslation) []model.ProjectTranslationRow {
	out := make([]model.ProjectTranslationRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ProjectTranslationRow{
			ProjectID: r.ProjectID,
			Type:      r.TranslationType,
			Language:  model.Lang(r.Language),
			Value:     util.RawNullJSON(r.Value),
		})
	}
	return out
}
