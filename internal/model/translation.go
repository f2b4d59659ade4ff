// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "encoding/json"

// TranslationRow is one (key, language, value) row of the translations table.
// Value holds a decoded JSON value: string, float64, bool, []any,
// map[string]any or nil. Arrays and objects are frequently stored as a
// string that itself contains serialized JSON.
type TranslationRow struct {
	Key      string `json:"key"`
	Language Lang   `json:"language"`
	Value    any    `json:"value"`
}

// Project translation types.
const (
	ProjectTranslationTitle    = "title"
	ProjectTranslationBadges   = "badges"
	ProjectTranslationSections = "sections"
)

// IsProjectTranslationType reports whether t is a known project translation type.
func IsProjectTranslationType(t string) bool {
	switch t {
	case ProjectTranslationTitle, ProjectTranslationBadges, ProjectTranslationSections:
		return true
	}
	return false
}

// ProjectTranslationRow is one (project_id, type, language, value) row.
// Value is the raw JSON document stored in the row.
type ProjectTranslationRow struct {
	ProjectID string          `json:"project_id"`
	Type      string          `json:"translation_type"`
	Language  Lang            `json:"language"`
	Value     json.RawMessage `json:"value"`
}

// LocalizedString holds one string per supported language.
type LocalizedString struct {
	EN string `json:"en"`
	RU string `json:"ru"`
	KZ string `json:"kz"`
}

// Get returns the value for lang, or "" for unsupported languages.
func (s LocalizedString) Get(lang Lang) string {
	switch lang {
	case LangEN:
		return s.EN
	case LangRU:
		return s.RU
	case LangKZ:
		return s.KZ
	}
	return ""
}

// Set stores v for lang. Unsupported languages are ignored.
func (s *LocalizedString) Set(lang Lang, v string) {
	switch lang {
	case LangEN:
		s.EN = v
	case LangRU:
		s.RU = v
	case LangKZ:
		s.KZ = v
	}
}

// IsZero reports whether no language has a value.
func (s LocalizedString) IsZero() bool {
	return s.EN == "" && s.RU == "" && s.KZ == ""
}

// Section is one titled block of text on a project page.
type Section struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// LocalizedSections holds an independent list of sections per language.
type LocalizedSections struct {
	EN []Section `json:"en"`
	RU []Section `json:"ru"`
	KZ []Section `json:"kz"`
}

// Get returns the sections for lang.
func (s LocalizedSections) Get(lang Lang) []Section {
	switch lang {
	case LangEN:
		return s.EN
	case LangRU:
		return s.RU
	case LangKZ:
		return s.KZ
	}
	return nil
}

// Set stores sections for lang. Nil is normalized to an empty list.
func (s *LocalizedSections) Set(lang Lang, sections []Section) {
	if sections == nil {
		sections = []Section{}
	}
	switch lang {
	case LangEN:
		s.EN = sections
	case LangRU:
		s.RU = sections
	case LangKZ:
		s.KZ = sections
	}
}

// ProjectTranslations is the fixed-shape translated content of one project.
type ProjectTranslations struct {
	Title    LocalizedString   `json:"title"`
	Badges   []LocalizedString `json:"badges"`
	Sections LocalizedSections `json:"sections"`
}

// NewProjectTranslations returns the empty value: blank title, no badges and
// an empty section list for every language. It never contains nil slices.
func NewProjectTranslations() ProjectTranslations {
	return ProjectTranslations{
		Badges: []LocalizedString{},
		Sections: LocalizedSections{
			EN: []Section{},
			RU: []Section{},
			KZ: []Section{},
		},
	}
}

// IsEmpty reports whether the project has no translated content at all.
func (p ProjectTranslations) IsEmpty() bool {
	if !p.Title.IsZero() || len(p.Badges) > 0 {
		return false
	}
	for _, lang := range Languages {
		if len(p.Sections.Get(lang)) > 0 {
			return false
		}
	}
	return true
}
