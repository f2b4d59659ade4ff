// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/falahcapital/site/internal/auth"
	"github.com/falahcapital/site/internal/model"
)

// Default admin credentials, used only when none are configured.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

// SeedConfig holds the credentials of the initial admin account.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Seed creates the initial admin user if it does not exist yet.
func Seed(ctx context.Context, db *sql.DB, cfg SeedConfig) error {
	queries := New(db)

	username := cfg.AdminUsername
	if username == "" {
		username = DefaultAdminUsername
	}
	password := cfg.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
	}

	_, err := queries.GetUserByUsername(ctx, username)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "username", username)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	attrs := []any{"id", user.ID, "username", user.Username}
	if cfg.AdminPassword == "" {
		attrs = append(attrs, "password", DefaultAdminPassword)
	}
	slog.Info("created admin user", attrs...)

	return nil
}
