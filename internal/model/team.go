// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Team translation types.
const (
	TeamTranslationName     = "name"
	TeamTranslationRole     = "role"
	TeamTranslationBioLeft  = "bio_left"
	TeamTranslationBioRight = "bio_right"
)

// TeamTranslationTypes lists the team translation types in display order.
var TeamTranslationTypes = []string{
	TeamTranslationName,
	TeamTranslationRole,
	TeamTranslationBioLeft,
	TeamTranslationBioRight,
}

// IsTeamTranslationType reports whether t is a known team translation type.
func IsTeamTranslationType(t string) bool {
	for _, tt := range TeamTranslationTypes {
		if tt == t {
			return true
		}
	}
	return false
}

// TeamMember is a person shown on the about and team pages.
type TeamMember struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamTranslationRow is one (slug, type, language, value) row.
type TeamTranslationRow struct {
	Slug     string `json:"team_member_slug"`
	Type     string `json:"translation_type"`
	Language Lang   `json:"language"`
	Value    string `json:"value"`
}

// TeamTranslations is the translated content of one team member.
type TeamTranslations struct {
	Name     LocalizedString `json:"name"`
	Role     LocalizedString `json:"role"`
	BioLeft  LocalizedString `json:"bio_left"`
	BioRight LocalizedString `json:"bio_right"`
}

// Field returns a pointer to the field holding translation type t, or nil.
func (t *TeamTranslations) Field(typ string) *LocalizedString {
	switch typ {
	case TeamTranslationName:
		return &t.Name
	case TeamTranslationRole:
		return &t.Role
	case TeamTranslationBioLeft:
		return &t.BioLeft
	case TeamTranslationBioRight:
		return &t.BioRight
	}
	return nil
}

// TeamMemberWithTranslations is a team member together with its translated content.
type TeamMemberWithTranslations struct {
	TeamMember
	Translations TeamTranslations `json:"translations"`
}
