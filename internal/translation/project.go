// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"bytes"
	"encoding/json"

	"github.com/falahcapital/site/internal/model"
)

// ProjectUpdate carries the fields of a project translation save.
// Nil fields are not written.
type ProjectUpdate struct {
	Title    *model.LocalizedString   `json:"title,omitempty"`
	Badges   *[]model.LocalizedString `json:"badges,omitempty"`
	Sections *model.LocalizedSections `json:"sections,omitempty"`
}

// ProjectUpsertOp is a single write keyed by (ProjectID, Type, Language).
type ProjectUpsertOp struct {
	ProjectID string
	Type      string
	Language  model.Lang
	Value     any
}

// DecodeProject folds the rows of one project into its fixed-shape
// translations. Without rows it returns the empty value, never nil slices.
//
// Badges are stored once per language but are language independent: the
// first non-empty badges row wins and the rest are ignored without
// comparing them.
func DecodeProject(rows []model.ProjectTranslationRow) model.ProjectTranslations {
	result := model.NewProjectTranslations()
	for _, row := range rows {
		applyProjectRow(&result, row)
	}
	return result
}

// DecodeProjectsBulk decodes rows of several projects at once. The result
// has exactly one entry per requested id, including ids without rows. Rows
// of projects that were not requested are ignored.
func DecodeProjectsBulk(rows []model.ProjectTranslationRow, projectIDs []string) map[string]model.ProjectTranslations {
	result := make(map[string]model.ProjectTranslations, len(projectIDs))
	for _, id := range projectIDs {
		result[id] = model.NewProjectTranslations()
	}

	for _, row := range rows {
		p, ok := result[row.ProjectID]
		if !ok {
			continue
		}
		applyProjectRow(&p, row)
		result[row.ProjectID] = p
	}
	return result
}

func applyProjectRow(p *model.ProjectTranslations, row model.ProjectTranslationRow) {
	if !row.Language.Valid() {
		return
	}

	switch row.Type {
	case model.ProjectTranslationTitle:
		p.Title.Set(row.Language, decodeTitle(row.Value))
	case model.ProjectTranslationBadges:
		if len(p.Badges) > 0 {
			return
		}
		var badges []model.LocalizedString
		if unmarshalLenient(row.Value, &badges) && badges != nil {
			p.Badges = badges
		}
	case model.ProjectTranslationSections:
		var sections []model.Section
		if unmarshalLenient(row.Value, &sections) {
			p.Sections.Set(row.Language, sections)
		}
	}
}

// decodeTitle returns the stored string, or the raw JSON text when the
// stored value is not a string.
func decodeTitle(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// unmarshalLenient decodes raw into dst. A JSON string holding serialized
// JSON is unwrapped first. It reports false for null or malformed values.
func unmarshalLenient(raw json.RawMessage, dst any) bool {
	if isNull(raw) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err == nil {
		return true
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return false
	}
	return json.Unmarshal([]byte(inner), dst) == nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// EncodeProject returns the upserts for a project translation save.
//
// The title writes one string per language. Badges write the same array to
// every language row. Sections write each language's list to its own row.
func EncodeProject(projectID string, u ProjectUpdate) []ProjectUpsertOp {
	var ops []ProjectUpsertOp

	if u.Title != nil {
		for _, lang := range model.Languages {
			ops = append(ops, ProjectUpsertOp{
				ProjectID: projectID,
				Type:      model.ProjectTranslationTitle,
				Language:  lang,
				Value:     u.Title.Get(lang),
			})
		}
	}

	if u.Badges != nil {
		badges := *u.Badges
		if badges == nil {
			badges = []model.LocalizedString{}
		}
		for _, lang := range model.Languages {
			ops = append(ops, ProjectUpsertOp{
				ProjectID: projectID,
				Type:      model.ProjectTranslationBadges,
				Language:  lang,
				Value:     badges,
			})
		}
	}

	if u.Sections != nil {
		for _, lang := range model.Languages {
			sections := u.Sections.Get(lang)
			if sections == nil {
				sections = []model.Section{}
			}
			ops = append(ops, ProjectUpsertOp{
				ProjectID: projectID,
				Type:      model.ProjectTranslationSections,
				Language:  lang,
				Value:     sections,
			})
		}
	}

	return ops
}
