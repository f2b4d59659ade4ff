// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const projectColumns = `id, slug, title, image, content_image, images, badges, investment_year, published, show_on_homepage, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (Project, error) {
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Title,
		&i.Image,
		&i.ContentImage,
		&i.Images,
		&i.Badges,
		&i.InvestmentYear,
		&i.Published,
		&i.ShowOnHomepage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProject = `-- name: CreateProject :one
INSERT INTO projects (
    id, slug, title, image, content_image, images, badges, investment_year,
    published, show_on_homepage, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + projectColumns

type CreateProjectParams struct {
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

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.ID,
		arg.Slug,
		arg.Title,
		arg.Image,
		arg.ContentImage,
		arg.Images,
		arg.Badges,
		arg.InvestmentYear,
		arg.Published,
		arg.ShowOnHomepage,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanProject(row)
}

const updateProject = `-- name: UpdateProject :one
UPDATE projects SET
    slug = ?, title = ?, image = ?, content_image = ?, images = ?, badges = ?,
    investment_year = ?, published = ?, show_on_homepage = ?, updated_at = ?
WHERE id = ?
RETURNING ` + projectColumns

type UpdateProjectParams struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Image          string        `json:"image"`
	ContentImage   string        `json:"content_image"`
	Images         string        `json:"images"`
	Badges         string        `json:"badges"`
	InvestmentYear sql.NullInt64 `json:"investment_year"`
	Published      bool          `json:"published"`
	ShowOnHomepage bool          `json:"show_on_homepage"`
	UpdatedAt      time.Time     `json:"updated_at"`
	ID             string        `json:"id"`
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, updateProject,
		arg.Slug,
		arg.Title,
		arg.Image,
		arg.ContentImage,
		arg.Images,
		arg.Badges,
		arg.InvestmentYear,
		arg.Published,
		arg.ShowOnHomepage,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanProject(row)
}

const getProject = `-- name: GetProject :one
SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

func (q *Queries) GetProject(ctx context.Context, id string) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProject, id))
}

const getProjectBySlug = `-- name: GetProjectBySlug :one
SELECT ` + projectColumns + ` FROM projects WHERE slug = ?`

func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectBySlug, slug))
}

const listProjects = `-- name: ListProjects :many
SELECT ` + projectColumns + ` FROM projects
WHERE (?1 = 0 OR published = 1)
  AND (?2 = 0 OR show_on_homepage = 1)
ORDER BY created_at DESC, rowid DESC
`

type ListProjectsParams struct {
	PublishedOnly bool `json:"published_only"`
	HomepageOnly  bool `json:"homepage_only"`
}

// ListProjects returns projects newest first.
func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects, arg.PublishedOnly, arg.HomepageOnly)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Project
	for rows.Next() {
		i, err := scanProject(rows)
		if err != nil {
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

const deleteProject = `-- name: DeleteProject :execrows
DELETE FROM projects WHERE id = ?
`

// DeleteProject removes a project and, through the foreign key, its
// translations. It returns the number of deleted projects.
func (q *Queries) DeleteProject(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProject, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
