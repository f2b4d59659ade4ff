// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Well-known config keys. Config entries are single-language values such
// as image URLs and counters; they are never wrapped per language.
const (
	ConfigKeyHeroImage      = "heroImage"
	ConfigKeyAboutImage     = "aboutImage"
	ConfigKeyTeamPhotos     = "teamPhotos"
	ConfigKeyPortfolioCount = "portfolioCount"
)

// ConfigEntry is one row of the config table.
type ConfigEntry struct {
	Key       string    `json:"key"`
	Value     any       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
