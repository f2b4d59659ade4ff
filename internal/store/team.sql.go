// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const upsertTeamMember = `-- name: UpsertTeamMember :one
INSERT INTO team_members (id, slug, photo, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    photo = excluded.photo,
    updated_at = excluded.updated_at
RETURNING id, slug, photo, created_at, updated_at
`

type UpsertTeamMemberParams struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) UpsertTeamMember(ctx context.Context, arg UpsertTeamMemberParams) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, upsertTeamMember,
		arg.ID,
		arg.Slug,
		arg.Photo,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i TeamMember
	err := row.Scan(&i.ID, &i.Slug, &i.Photo, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getTeamMemberBySlug = `-- name: GetTeamMemberBySlug :one
SELECT id, slug, photo, created_at, updated_at FROM team_members WHERE slug = ?
`

func (q *Queries) GetTeamMemberBySlug(ctx context.Context, slug string) (TeamMember, error) {
	row := q.db.QueryRowContext(ctx, getTeamMemberBySlug, slug)
	var i TeamMember
	err := row.Scan(&i.ID, &i.Slug, &i.Photo, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listTeamMembers = `-- name: ListTeamMembers :many
SELECT id, slug, photo, created_at, updated_at FROM team_members ORDER BY created_at, rowid
`

func (q *Queries) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []TeamMember
	for rows.Next() {
		var i TeamMember
		if err := rows.Scan(&i.ID, &i.Slug, &i.Photo, &i.CreatedAt, &i.UpdatedAt); err != nil {
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

const teamTranslationColumns = `id, team_member_slug, translation_type, language, value, created_at, updated_at`

const listTeamTranslations = `-- name: ListTeamTranslations :many
SELECT ` + teamTranslationColumns + ` FROM team_translations
WHERE team_member_slug = ?
ORDER BY created_at, rowid
`

func (q *Queries) ListTeamTranslations(ctx context.Context, slug string) ([]TeamTranslation, error) {
	rows, err := q.db.QueryContext(ctx, listTeamTranslations, slug)
	if err != nil {
		return nil, err
	}
	return scanTeamTranslations(rows)
}

const listAllTeamTranslations = `-- name: ListAllTeamTranslations :many
SELECT ` + teamTranslationColumns + ` FROM team_translations
ORDER BY team_member_slug, created_at, rowid
`

func (q *Queries) ListAllTeamTranslations(ctx context.Context) ([]TeamTranslation, error) {
	rows, err := q.db.QueryContext(ctx, listAllTeamTranslations)
	if err != nil {
		return nil, err
	}
	return scanTeamTranslations(rows)
}

func scanTeamTranslations(rows *sql.Rows) ([]TeamTranslation, error) {
	defer func() { _ = rows.Close() }()
	var items []TeamTranslation
	for rows.Next() {
		var i TeamTranslation
		if err := rows.Scan(
			&i.ID,
			&i.TeamMemberSlug,
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

const upsertTeamTranslation = `-- name: UpsertTeamTranslation :exec
INSERT INTO team_translations (id, team_member_slug, translation_type, language, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (team_member_slug, translation_type, language) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`

type UpsertTeamTranslationParams struct {
	ID              string    `json:"id"`
	TeamMemberSlug  string    `json:"team_member_slug"`
	TranslationType string    `json:"translation_type"`
	Language        string    `json:"language"`
	Value           string    `json:"value"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (q *Queries) UpsertTeamTranslation(ctx context.Context, arg UpsertTeamTranslationParams) error {
	_, err := q.db.ExecContext(ctx, upsertTeamTranslation,
		arg.ID,
		arg.TeamMemberSlug,
		arg.TranslationType,
		arg.Language,
		arg.Value,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
