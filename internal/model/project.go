// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BadgeStyle carries the presentation of a project badge. The badge label
// itself is translated and lives in the project translations.
type BadgeStyle struct {
	Color string `json:"color"`
}

// Project is a portfolio entry.
type Project struct {
	ID             string       `json:"id"`
	Slug           string       `json:"slug"`
	Title          string       `json:"title"`
	Image          string       `json:"image"`
	ContentImage   string       `json:"content_image"`
	Images         []string     `json:"images"`
	Badges         []BadgeStyle `json:"badges"`
	InvestmentYear *int         `json:"investment_year,omitempty"`
	Published      bool         `json:"published"`
	ShowOnHomepage bool         `json:"show_on_homepage"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ProjectWithTranslations is a project together with its translated content.
type ProjectWithTranslations struct {
	Project
	Translations ProjectTranslations `json:"translations"`
}
