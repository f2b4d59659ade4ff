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

	"github.com/falahcapital/site/internal/auth"
	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/store"
)

// UserStore is the row store surface used for admin accounts.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (store.User, error)
	GetUserByUsername(ctx context.Context, username string) (store.User, error)
	UpdateUserPassword(ctx context.Context, arg store.UpdateUserPasswordParams) error
	UpdateUserLastLogin(ctx context.Context, arg store.UpdateUserLastLoginParams) error
}

// UserService authenticates admin users.
type UserService struct {
	store  UserStore
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(s UserStore, logger *slog.Logger) *UserService {
	return &UserService{store: s, logger: logger}
}

// Authenticate checks the credentials and stamps the last login time.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}

	ok, err := auth.CheckPassword(password, u.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash unreadable", "user_id", u.ID, "error", err)
		return model.User{}, ErrInvalidCredentials
	}
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.store.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLogin: sql.NullTime{Time: now, Valid: true},
		ID:        u.ID,
	}); err != nil {
		s.logger.Warn("failed to record last login", "user_id", u.ID, "error", err)
	} else {
		u.LastLogin = sql.NullTime{Time: now, Valid: true}
	}

	if auth.NeedsRehash(u.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.store.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    now,
				ID:           u.ID,
			}); err == nil {
				u.PasswordHash = hash
			}
		}
	}

	return toUser(u), nil
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}
	return toUser(u), nil
}

// ChangePassword replaces the password of user id after verifying the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	u, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("getting user: %w", err)
	}

	ok, err := auth.CheckPassword(current, u.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(next); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
		ID:           id,
	}); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	s.logger.Info("password changed", "user_id", id, "category", model.EventCategoryAuth)
	return nil
}

func toUser(u store.User) model.User {
	return model.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
