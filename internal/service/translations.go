// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
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

// TranslationStore is the row store surface used for site translations.
type TranslationStore interface {
	ListTranslations(ctx context.Context) ([]store.Translation, error)
	ListTranslationsByPrefix(ctx context.Context, key string) ([]store.Translation, error)
	UpsertTranslation(ctx context.Context, arg store.UpsertTranslationParams) error
}

// TranslationService reads and writes the site translation tree.
type TranslationService struct {
	store       TranslationStore
	cache       *cache.Manager
	defaults    translation.Tree
	concurrency int
	logger      *slog.Logger
}

// NewTranslationService creates a TranslationService. defaults is the
// dictionary that live translations are merged over.
func NewTranslationService(s TranslationStore, c *cache.Manager, defaults translation.Tree, concurrency int, logger *slog.Logger) *TranslationService {
	return &TranslationService{
		store:       s,
		cache:       c,
		defaults:    defaults,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Tree returns the decoded tree of every stored translation.
func (s *TranslationService) Tree(ctx context.Context) (translation.Tree, error) {
	return s.cache.Translations.GetOrSet(ctx, cache.KeyTree, func() (translation.Tree, error) {
		rows, err := s.store.ListTranslations(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing translations: %w", err)
		}
		return translation.Decode(s.toRows(rows)), nil
	})
}

// Subtree decodes only key and the composite keys nested under it.
func (s *TranslationService) Subtree(ctx context.Context, key string) (any, bool, error) {
	rows, err := s.store.ListTranslationsByPrefix(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("listing translations under %q: %w", key, err)
	}
	v, ok := translation.Decode(s.toRows(rows)).Lookup(key)
	return v, ok, nil
}

// Snapshot merges the live tree over the defaults.
func (s *TranslationService) Snapshot(ctx context.Context) (translation.Snapshot, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return translation.Snapshot{}, err
	}
	return translation.Merge(s.defaults, tree), nil
}

// SaveUpdates encodes every top-level key of updates and writes the
// resulting rows concurrently. It returns the number of rows written.
func (s *TranslationService) SaveUpdates(ctx context.Context, updates map[string]any) (int, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("%w: no updates", ErrInvalidPayload)
	}

	ops, err := translation.EncodeUpdates(updates)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := s.apply(ctx, ops); err != nil {
		return 0, err
	}

	s.logger.Info("translations saved", "keys", len(updates), "rows", len(ops))
	return len(ops), nil
}

// SaveSingle writes exactly one (key, language) row with value as given.
func (s *TranslationService) SaveSingle(ctx context.Context, key, language string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidPayload)
	}
	lang, ok := model.ParseLang(language)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, language)
	}

	return s.apply(ctx, []translation.UpsertOp{{Key: key, Language: lang, Value: value}})
}

// SeedDefaults writes the default dictionary for every top-level key that
// has no rows yet. It returns the number of keys seeded.
func (s *TranslationService) SeedDefaults(ctx context.Context) (int, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return 0, err
	}

	missing := make(map[string]any)
	for key, value := range s.defaults {
		if _, exists := tree[key]; !exists {
			missing[key] = value
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if _, err := s.SaveUpdates(ctx, missing); err != nil {
		return 0, fmt.Errorf("seeding default translations: %w", err)
	}
	return len(missing), nil
}

func (s *TranslationService) apply(ctx context.Context, ops []translation.UpsertOp) error {
	now := time.Now()
	writes := make([]writeFunc, 0, len(ops))
	for _, op := range ops {
		value, err := util.NullJSON(op.Value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, op.Key, err)
		}
		params := store.UpsertTranslationParams{
			ID:        uuid.NewString(),
			Key:       op.Key,
			Language:  op.Language.String(),
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}
		writes = append(writes, func(ctx context.Context) error {
			if err := s.store.UpsertTranslation(ctx, params); err != nil {
				return fmt.Errorf("upserting %s/%s: %w", params.Key, params.Language, err)
			}
			return nil
		})
	}

	err := runBatch(ctx, s.concurrency, writes)

	// Some writes may have landed even when others failed.
	if cerr := s.cache.InvalidateTranslations(ctx); cerr != nil {
		s.logger.Warn("invalidating translation cache", "error", cerr)
	}

	if err != nil {
		s.logger.Error("saving translations", "error", err, "category", model.EventCategoryTranslation)
		return err
	}
	return nil
}

func (s *TranslationService) toRows(rows []store.Translation) []model.TranslationRow {
	out := make([]model.TranslationRow, 0, len(rows))
	for _, r := range rows {
		value, err := util.ParseNullJSON(r.Value)
		if err != nil {
			s.logger.Warn("malformed translation value, using raw text",
				"key", r.Key, "language", r.Language, "error", err)
			value = r.Value.String
		}
		out = append(out, model.TranslationRow{
			Key:      r.Key,
			Language: model.Lang(r.Language),
			Value:    value,
		})
	}
	return out
}
