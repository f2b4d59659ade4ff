// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type Config struct {
	Key       string         `json:"key"`
	Value     sql.NullString `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type EventLog struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

type Project struct {
	ID             string        `json:"id"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Image          string        `json:"image"`
	ContentImage   string        `json:"content_image"`
	Images         string        `json:"images"`
	Badges         string        `json:"badges"`
	InvestmentYear sql.NullInt64 `json:"investment_year"`
	Published      bool          `json:"published"`
	ShowOnHomepage bool          `json:"show_on_homepage"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type ProjectTranslation struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	TranslationType string         `json:"translation_type"`
	Language        string         `json:"language"`
	Value           sql.NullString `json:"value"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type TeamMember struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TeamTranslation struct {
	ID              string    `json:"id"`
	TeamMemberSlug  string    `json:"team_member_slug"`
	TranslationType string    `json:"translation_type"`
	Language        string    `json:"language"`
	Value           string    `json:"value"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Translation struct {
	ID        string         `json:"id"`
	Key       string         `json:"key"`
	Language  string         `json:"language"`
	Value     sql.NullString `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"password_hash"`
	Role         string       `json:"role"`
	LastLogin    sql.NullTime `json:"last_login"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
