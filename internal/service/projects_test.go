// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/testutil"
	"github.com/falahcapital/site/internal/translation"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	_, q, m := testSetup(t)
	return NewProjectService(q, m, 4, testutil.TestLogger())
}

func TestProjectServiceCreate(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()
	year := 2024

	p, err := svc.Create(ctx, ProjectInput{
		Title:          "Алматы Tower",
		Images:         []string{"/uploads/a.jpg"},
		Badges:         []model.BadgeStyle{{Color: "#fff"}},
		InvestmentYear: &year,
		Published:      true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "almaty-tower", p.Slug)
	assert.Equal(t, []string{"/uploads/a.jpg"}, p.Images)
	assert.Equal(t, []model.BadgeStyle{{Color: "#fff"}}, p.Badges)
	require.NotNil(t, p.InvestmentYear)
	assert.Equal(t, 2024, *p.InvestmentYear)

	second, err := svc.Create(ctx, ProjectInput{Title: "Almaty Tower"})
	require.NoError(t, err)
	assert.Equal(t, "almaty-tower-2", second.Slug)
	assert.Nil(t, second.InvestmentYear)
	assert.Empty(t, second.Images)

	_, err = svc.Create(ctx, ProjectInput{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestProjectServiceGetUpdateDelete(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProjectInput{Title: "Solar Park"})
	require.NoError(t, err)

	bySlug, err := svc.Get(ctx, "solar-park")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	updated, err := svc.Update(ctx, p.ID, ProjectInput{Title: "Solar Park", Slug: "solar-park", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "solar-park", updated.Slug, "a project keeps its own slug")
	assert.True(t, updated.Published)

	_, err = svc.Update(ctx, "missing", ProjectInput{Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)
}

func TestProjectServiceTranslations(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProjectInput{Title: "Logistics"})
	require.NoError(t, err)

	empty, err := svc.Translations(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Badges)

	title := model.LocalizedString{EN: "Logistics", RU: "Логистика", KZ: "Логистика"}
	badges := []model.LocalizedString{{EN: "Cold chain", RU: "Холодовая цепь"}}
	sections := model.LocalizedSections{
		EN: []model.Section{{Title: "Overview", Text: "<b>Hub</b>"}},
	}

	n, err := svc.SaveTranslations(ctx, p.ID, translation.ProjectUpdate{
		Title:    &title,
		Badges:   &badges,
		Sections: &sections,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	got, err := svc.Translations(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, badges, got.Badges)
	assert.Equal(t, sections.EN, got.Sections.EN)
	assert.Empty(t, got.Sections.RU)

	_, err = svc.SaveTranslations(ctx, "missing", translation.ProjectUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SaveTranslations(ctx, p.ID, translation.ProjectUpdate{})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestProjectServiceBulk(t *testing.T) {
	_, q, m := seededSetup(t)
	svc := NewProjectService(q, m, 4, testutil.TestLogger())
	ctx := context.Background()

	all, err := svc.ListWithTranslations(ctx, ProjectFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.NotEmpty(t, p.Translations.Title.EN, p.Slug)
	}

	home, err := svc.List(ctx, ProjectFilter{HomepageOnly: true})
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, "steppe-solar", home[0].Slug)

	bulk, err := svc.TranslationsBulk(ctx, []string{home[0].ID, "unknown"})
	require.NoError(t, err)
	assert.Len(t, bulk, 2)
	assert.Equal(t, "Steppe Solar", bulk[home[0].ID].Title.EN)
	assert.True(t, bulk["unknown"].IsEmpty())

	none, err := svc.TranslationsBulk(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
