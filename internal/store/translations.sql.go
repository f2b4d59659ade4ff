// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Rows are returned in insertion order within a key. Decoding compares
// every language against the first row of a key, so this order matters.
const listTranslations = `-- name: ListTranslations :many
SELECT id, key, language, value, created_at, updated_at FROM translations
ORDER BY key, created_at, rowid
`

func (q *Queries) ListTranslations(ctx context.Context) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, listTranslations)
	if err != nil {
		return nil, err
	}
	return scanTranslations(rows)
}

const listTranslationsByPrefix = `-- name: ListTranslationsByPrefix :many
SELECT id, key, language, value, created_at, updated_at FROM translations
WHERE key = ?1 OR substr(key, 1, length(?1) + 1) = ?1 || '.'
ORDER BY key, created_at, rowid
`

// ListTranslationsByPrefix returns the rows of key and of every composite
// key nested under it.
func (q *Queries) ListTranslationsByPrefix(ctx context.Context, key string) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, listTranslationsByPrefix, key)
	if err != nil {
		return nil, err
	}
	return scanTranslations(rows)
}

func scanTranslations(rows *sql.Rows) ([]Translation, error) {
	defer func() { _ = rows.Close() }()
	var items []Translation
	for rows.Next() {
		var i Translation
		if err := rows.Scan(
			&i.ID,
			&i.Key,
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

const getTranslation = `-- name: GetTranslation :one
SELECT id, key, language, value, created_at, updated_at FROM translations
WHERE key = ? AND language = ?
`

func (q *Queries) GetTranslation(ctx context.Context, key, language string) (Translation, error) {
	row := q.db.QueryRowContext(ctx, getTranslation, key, language)
	var i Translation
	err := row.Scan(
		&i.ID,
		&i.Key,
		&i.Language,
		&i.Value,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertTranslation = `-- name: UpsertTranslation :exec
INSERT INTO translations (id, key, language, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (key, language) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`

type UpsertTranslationParams struct {
	ID        string         `json:"id"`
	Key       string         `json:"key"`
	Language  string         `json:"language"`
	Value     sql.NullString `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UpsertTranslation writes a row keyed by (key, language). An existing row
// keeps its id and created_at.
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) error {
	_, err := q.db.ExecContext(ctx, upsertTranslation,
		arg.ID,
		arg.Key,
		arg.Language,
		arg.Value,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const countTranslations = `-- name: CountTranslations :one
SELECT COUNT(*) FROM translations
`

func (q *Queries) CountTranslations(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTranslations)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteTranslationsByKey = `-- name: DeleteTranslationsByKey :exec
DELETE FROM translations WHERE key = ?
`

func (q *Queries) DeleteTranslationsByKey(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteTranslationsByKey, key)
	return err
}
