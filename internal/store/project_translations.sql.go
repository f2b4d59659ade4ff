// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const projectTranslationColumns = `id, project_id, translation_type, language, value, created_at, updated_at`

const listProjectTranslations = `-- name: ListProjectTranslations :many
SELECT ` + projectTranslationColumns + ` FROM project_translations
WHERE project_id = ?
ORDER BY created_at, rowid
`

func (q *Queries) ListProjectTranslations(ctx context.Context, projectID string) ([]ProjectTranslation, error) {
	rows, err := q.db.QueryContext(ctx, listProjectTranslations, projectID)
	if err != nil {
		return nil, err
	}
	return scanProjectTranslations(rows)
}

// ListProjectTranslationsByProjectIDs returns the rows of every listed
// project in one query.
func (q *Queries) ListProjectTranslationsByProjectIDs(ctx context.Context, projectIDs []string) ([]ProjectTranslation, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(projectIDs)
	query := `SELECT ` + projectTranslationColumns + ` FROM project_translations
WHERE project_id IN (` + placeholders + `)
ORDER BY project_id, created_at, rowid`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanProjectTranslations(rows)
}

func scanProjectTranslations(rows *sql.Rows) ([]ProjectTranslation, error) {
	defer func() { _ = rows.Close() }()
	var items []ProjectTranslation
	for rows.Next() {
		var i ProjectTranslation
		if err := rows.Scan(
			&i.ID,
			&i.ProjectID,
			&i.TranslationType,
			&i.Language,
			&i.Value,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertProjectTranslation = `-- name: UpsertProjectTranslation :exec
INSERT INTO project_translations (id, project_id, translation_type, language, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (project_id, translation_type, language) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`

type UpsertProjectTranslationParams struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	TranslationType string         `json:"translation_type"`
	Language        string         `json:"language"`
	Value           sql.NullString `json:"value"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (q *Queries) UpsertProjectTranslation(ctx context.Context, arg UpsertProjectTranslationParams) error {
	_, err := q.db.ExecContext(ctx, upsertProjectTranslation,
		arg.ID,
		arg.ProjectID,
		arg.TranslationType,
		arg.Language,
		arg.Value,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
