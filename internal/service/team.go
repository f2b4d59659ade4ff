// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/translation"
	"github.com/falahcapital/site/internal/util"
)

// TeamStore is the row store surface used for team members.
type TeamStore interface {
	UpsertTeamMember(ctx context.Context, arg store.UpsertTeamMemberParams) (store.TeamMember, error)
	GetTeamMemberBySlug(ctx context.Context, slug string) (store.TeamMember, error)
	ListTeamMembers(ctx context.Context) ([]store.TeamMember, error)
	ListTeamTranslations(ctx context.Context, slug string) ([]store.TeamTranslation, error)
	ListAllTeamTranslations(ctx context.Context) ([]store.TeamTranslation, error)
	UpsertTeamTranslation(ctx context.Context, arg store.UpsertTeamTranslationParams) error
}

// TeamService manages the localized profiles of team members.
type TeamService struct {
	store       TeamStore
	cache       *cache.Manager
	concurrency int
	logger      *slog.Logger
}

// NewTeamService creates a TeamService.
func NewTeamService(s TeamStore, c *cache.Manager, concurrency int, logger *slog.Logger) *TeamService {
	return &TeamService{store: s, cache: c, concurrency: concurrency, logger: logger}
}

// Get returns a team member with its translations.
func (s *TeamService) Get(ctx context.Context, slug string) (model.TeamMemberWithTranslations, error) {
	member, err := s.store.GetTeamMemberBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TeamMemberWithTranslations{}, ErrNotFound
		}
		return model.TeamMemberWithTranslations{}, fmt.Errorf("getting team member: %w", err)
	}

	tr, err := s.cache.Team.GetOrSet(ctx, slug, func() (model.TeamTranslations, error) {
		rows, err := s.store.ListTeamTranslations(ctx, slug)
		if err != nil {
			return model.TeamTranslations{}, fmt.Errorf("listing team translations: %w", err)
		}
		return translation.DecodeTeam(toTeamRows(rows)), nil
	})
	if err != nil {
		return model.TeamMemberWithTranslations{}, err
	}

	return model.TeamMemberWithTranslations{TeamMember: toTeamMember(member), Translations: tr}, nil
}

// List returns every team member with translations.
func (s *TeamService) List(ctx context.Context) ([]model.TeamMemberWithTranslations, error) {
	members, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	rows, err := s.store.ListAllTeamTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team translations: %w", err)
	}

	slugs := make([]string, 0, len(members))
	for _, m := range members {
		slugs = append(slugs, m.Slug)
	}
	bySlug := translation.DecodeTeamBulk(toTeamRows(rows), slugs)

	out := make([]model.TeamMemberWithTranslations, 0, len(members))
	for _, m := range members {
		out = append(out, model.TeamMemberWithTranslations{
			TeamMember:   toTeamMember(m),
			Translations: bySlug[m.Slug],
		})
	}
	return out, nil
}

// UpsertMember creates member slug or replaces its photo.
func (s *TeamService) UpsertMember(ctx context.Context, slug, photo string) (model.TeamMember, error) {
	if !util.IsValidSlug(slug) {
		return model.TeamMember{}, fmt.Errorf("%w: invalid slug %q", ErrInvalidPayload, slug)
	}
	now := time.Now()
	m, err := s.store.UpsertTeamMember(ctx, store.UpsertTeamMemberParams{
		ID:        uuid.NewString(),
		Slug:      slug,
		Photo:     photo,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("upserting team member: %w", err)
	}
	return toTeamMember(m), nil
}

// Save writes the given translations of member slug and returns the number
// of rows written.
func (s *TeamService) Save(ctx context.Context, slug string, u translation.TeamUpdate) (int, error) {
	if _, err := s.store.GetTeamMemberBySlug(ctx, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("getting team member: %w", err)
	}

	ops, err := translation.EncodeTeam(slug, u)
	switch {
	case errors.Is(err, translation.ErrUnsupportedLanguage):
		return 0, fmt.Errorf("%w: %v", ErrInvalidLanguage, err)
	case err != nil:
		return 0, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	case len(ops) == 0:
		return 0, fmt.Errorf("%w: nothing to save", ErrInvalidPayload)
	}

	now := time.Now()
	writes := make([]writeFunc, 0, len(ops))
	for _, op := range ops {
		params := store.UpsertTeamTranslationParams{
			ID:              uuid.NewString(),
			TeamMemberSlug:  op.Slug,
			TranslationType: op.Type,
			Language:        op.Language.String(),
			Value:           op.Value,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		writes = append(writes, func(ctx context.Context) error {
			if err := s.store.UpsertTeamTranslation(ctx, params); err != nil {
				return fmt.Errorf("upserting %s/%s: %w", params.TranslationType, params.Language, err)
			}
			return nil
		})
	}

	err = runBatch(ctx, s.concurrency, writes)
	if cerr := s.cache.InvalidateTeam(ctx, slug); cerr != nil {
		s.logger.Warn("invalidating team cache", "slug", slug, "error", cerr)
	}
	if err != nil {
		s.logger.Error("saving team translations", "slug", slug, "error", err,
			"category", model.EventCategoryTeam)
		return 0, err
	}
	return len(ops), nil
}

func toTeamMember(m store.TeamMember) model.TeamMember {
	return model.TeamMember{
		ID:        m.ID,
		Slug:      m.Slug,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTeamRows(rows []store.TeamTranslation) []model.TeamTranslationRow {
	out := make([]model.TeamTranslationRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.TeamTranslationRow{
			Slug:     r.TeamMemberSlug,
			Type:     r.TranslationType,
			Language: model.Lang(r.Language),
			Value:    r.Value,
		})
	}
	return out
}
