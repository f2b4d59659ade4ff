// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/falahcapital/site/internal/cache"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
	"github.com/falahcapital/site/internal/util"
)

// ConfigStore is the row store surface used for site config.
type ConfigStore interface {
	UpsertConfig(ctx context.Context, arg store.UpsertConfigParams) error
}

// ConfigService manages site-wide settings such as hero images and photo
// lists. Values are plain JSON, not localized.
type ConfigService struct {
	store       ConfigStore
	cache       *cache.Manager
	concurrency int
	logger      *slog.Logger
}

// NewConfigService creates a ConfigService.
func NewConfigService(s ConfigStore, c *cache.Manager, concurrency int, logger *slog.Logger) *ConfigService {
	return &ConfigService{store: s, cache: c, concurrency: concurrency, logger: logger}
}

// All returns every config value.
func (s *ConfigService) All(ctx context.Context) (map[string]any, error) {
	return s.cache.Config.All(ctx)
}

// Get returns one config value.
func (s *ConfigService) Get(ctx context.Context, key string) (any, error) {
	v, ok, err := s.cache.Config.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Save upserts every entry of values concurrently.
func (s *ConfigService) Save(ctx context.Context, values map[string]any) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: no config values", ErrInvalidPayload)
	}

	now := time.Now()
	writes := make([]writeFunc, 0, len(values))
	for key, v := range values {
		value, err := util.NullJSON(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, key, err)
		}
		params := store.UpsertConfigParams{Key: key, Value: value, UpdatedAt: now}
		writes = append(writes, func(ctx context.Context) error {
			if err := s.store.UpsertConfig(ctx, params); err != nil {
				return fmt.Errorf("upserting config %s: %w", params.Key, err)
			}
			return nil
		})
	}

	err := runBatch(ctx, s.concurrency, writes)
	s.cache.InvalidateConfig()
	if err != nil {
		s.logger.Error("saving config", "error", err, "category", model.EventCategoryConfig)
		return err
	}

	s.logger.Info("config saved", "keys", len(values))
	return nil
}
