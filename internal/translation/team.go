// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"errors"
	"fmt"

	"github.com/falahcapital/site/internal/model"
)

// Errors returned by EncodeTeam.
var (
	ErrUnknownType         = errors.New("unknown translation type")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// TeamUpdate maps a team translation type to the per-language values to write.
type TeamUpdate map[string]map[model.Lang]string

// TeamUpsertOp is a single write keyed by (Slug, Type, Language).
type TeamUpsertOp struct {
	Slug     string
	Type     string
	Language model.Lang
	Value    string
}

// DecodeTeam folds the rows of one team member into its translations.
// Rows with unknown types or languages are ignored.
func DecodeTeam(rows []model.TeamTranslationRow) model.TeamTranslations {
	var result model.TeamTranslations
	for _, row := range rows {
		applyTeamRow(&result, row)
	}
	return result
}

// DecodeTeamBulk decodes rows of several members, keyed by slug. Every
// requested slug is present in the result.
func DecodeTeamBulk(rows []model.TeamTranslationRow, slugs []string) map[string]model.TeamTranslations {
	result := make(map[string]model.TeamTranslations, len(slugs))
	for _, slug := range slugs {
		result[slug] = model.TeamTranslations{}
	}
	for _, row := range rows {
		t, ok := result[row.Slug]
		if !ok {
			continue
		}
		applyTeamRow(&t, row)
		result[row.Slug] = t
	}
	return result
}

func applyTeamRow(t *model.TeamTranslations, row model.TeamTranslationRow) {
	if !row.Language.Valid() {
		return
	}
	if field := t.Field(row.Type); field != nil {
		field.Set(row.Language, row.Value)
	}
}

// EncodeTeam returns one upsert per (type, language) present in u.
func EncodeTeam(slug string, u TeamUpdate) ([]TeamUpsertOp, error) {
	for typ, values := range u {
		if !model.IsTeamTranslationType(typ) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
		}
		for lang := range values {
			if !lang.Valid() {
				return nil, fmt.Errorf("%w: %q for %s", ErrUnsupportedLanguage, lang, typ)
			}
		}
	}

	var ops []TeamUpsertOp
	for _, typ := range model.TeamTranslationTypes {
		values, ok := u[typ]
		if !ok {
			continue
		}
		for _, lang := range model.Languages {
			v, ok := values[lang]
			if !ok {
				continue
			}
			ops = append(ops, TeamUpsertOp{Slug: slug, Type: typ, Language: lang, Value: v})
		}
	}
	return ops, nil
}
