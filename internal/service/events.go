// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
)

// EventService records audit events in the event log.
type EventService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, logger *slog.Logger) *EventService {
	return &EventService{
		queries: store.New(db),
		logger:  logger,
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("failed to log event", "error", err, "category", category)
		return err
	}

	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, metadata)
}

// Recent returns the newest events, most recent first.
func (s *EventService) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.queries.ListEvents(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, model.Event{
			ID:        r.ID,
			Level:     r.Level,
			Category:  r.Category,
			Message:   r.Message,
			Metadata:  r.Metadata,
			CreatedAt: r.CreatedAt,
		})
	}
	return events, nil
}

// DeleteOldEvents removes events older than the specified duration.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	return s.queries.DeleteEventsBefore(ctx, cutoff)
}
