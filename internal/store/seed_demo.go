// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/falahcapital/site/internal/model"
	"github.com/falahcapital/site/internal/translation"
)

type demoProject struct {
	slug         string
	title        model.LocalizedString
	badges       []model.LocalizedString
	badgeColors  []string
	sections     model.LocalizedSections
	year         int
	showHomepage bool
}

type demoMember struct {
	slug         string
	photo        string
	translations translation.TeamUpdate
}

// SeedDemo inserts sample portfolio projects and team members. Content that
// already exists is left alone, so it is safe to run on every start.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	slog.Info("seeding demo content")
	queries := New(db)

	for _, p := range getDemoProjects() {
		if err := seedDemoProject(ctx, queries, p); err != nil {
			return fmt.Errorf("seeding project %s: %w", p.slug, err)
		}
	}

	for _, m := range getDemoMembers() {
		if err := seedDemoMember(ctx, queries, m); err != nil {
			return fmt.Errorf("seeding team member %s: %w", m.slug, err)
		}
	}

	return nil
}

func seedDemoProject(ctx context.Context, queries *Queries, p demoProject) error {
	_, err := queries.GetProjectBySlug(ctx, p.slug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	styles := make([]model.BadgeStyle, len(p.badgeColors))
	for i, c := range p.badgeColors {
		styles[i] = model.BadgeStyle{Color: c}
	}
	badgeJSON, err := json.Marshal(styles)
	if err != nil {
		return err
	}

	now := time.Now()
	project, err := queries.CreateProject(ctx, CreateProjectParams{
		ID:             uuid.NewString(),
		Slug:           p.slug,
		Title:          p.title.EN,
		Images:         "[]",
		Badges:         string(badgeJSON),
		InvestmentYear: sql.NullInt64{Int64: int64(p.year), Valid: p.year > 0},
		Published:      true,
		ShowOnHomepage: p.showHomepage,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	ops := translation.EncodeProject(project.ID, translation.ProjectUpdate{
		Title:    &p.title,
		Badges:   &p.badges,
		Sections: &p.sections,
	})
	for _, op := range ops {
		value, err := json.Marshal(op.Value)
		if err != nil {
			return err
		}
		if err := queries.UpsertProjectTranslation(ctx, UpsertProjectTranslationParams{
			ID:              uuid.NewString(),
			ProjectID:       op.ProjectID,
			TranslationType: op.Type,
			Language:        op.Language.String(),
			Value:           sql.NullString{String: string(value), Valid: true},
			CreatedAt:       now,
			UpdatedAt:       now,
		}); err != nil {
			return fmt.Errorf("writing %s/%s: %w", op.Type, op.Language, err)
		}
	}

	slog.Info("created demo project", "slug", p.slug, "rows", len(ops))
	return nil
}

func seedDemoMember(ctx context.Context, queries *Queries, m demoMember) error {
	_, err := queries.GetTeamMemberBySlug(ctx, m.slug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	now := time.Now()
	if _, err := queries.UpsertTeamMember(ctx, UpsertTeamMemberParams{
		ID:        uuid.NewString(),
		Slug:      m.slug,
		Photo:     m.photo,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("creating team member: %w", err)
	}

	ops, err := translation.EncodeTeam(m.slug, m.translations)
	if err != nil {
		return err
	}
	for _, op := range ops {
		if err := queries.UpsertTeamTranslation(ctx, UpsertTeamTranslationParams{
			ID:              uuid.NewString(),
			TeamMemberSlug:  op.Slug,
			TranslationType: op.Type,
			Language:        op.Language.String(),
			Value:           op.Value,
			CreatedAt:       now,
			UpdatedAt:       now,
		}); err != nil {
			return fmt.Errorf("writing %s/%s: %w", op.Type, op.Language, err)
		}
	}
	return nil
}

func getDemoProjects() []demoProject {
	return []demoProject{
		{
			slug: "steppe-solar",
			title: model.LocalizedString{
				EN: "Steppe Solar",
				RU: "Степная солнечная станция",
				KZ: "Дала күн станциясы",
			},
			badges: []model.LocalizedString{
				{EN: "Renewable energy", RU: "Возобновляемая энергия", KZ: "Жаңартылатын энергия"},
				{EN: "Infrastructure", RU: "Инфраструктура", KZ: "Инфрақұрылым"},
			},
			badgeColors: []string{"#2f855a", "#2b6cb0"},
			sections: model.LocalizedSections{
				EN: []model.Section{{Title: "Overview", Text: "A 50 MW solar plant in the Karaganda region."}},
				RU: []model.Section{{Title: "Обзор", Text: "Солнечная станция мощностью 50 МВт в Карагандинской области."}},
				KZ: []model.Section{{Title: "Шолу", Text: "Қарағанды облысындағы қуаты 50 МВт күн станциясы."}},
			},
			year:         2023,
			showHomepage: true,
		},
		{
			slug: "halal-logistics",
			title: model.LocalizedString{
				EN: "Halal Logistics Hub",
				RU: "Халяль логистический хаб",
				KZ: "Халал логистикалық хаб",
			},
			badges: []model.LocalizedString{
				{EN: "Logistics", RU: "Логистика", KZ: "Логистика"},
			},
			badgeColors: []string{"#b7791f"},
			sections: model.LocalizedSections{
				EN: []model.Section{{Title: "Overview", Text: "Cold-chain warehousing near Almaty."}},
				RU: []model.Section{{Title: "Обзор", Text: "Складской комплекс с холодовой цепью под Алматы."}},
				KZ: []model.Section{},
			},
			year: 2024,
		},
	}
}

func getDemoMembers() []demoMember {
	return []demoMember{
		{
			slug:  "managing-partner",
			photo: "/uploads/team/managing-partner.jpg",
			translations: translation.TeamUpdate{
				model.TeamTranslationName: {
					model.LangEN: "Managing Partner",
					model.LangRU: "Управляющий партнёр",
					model.LangKZ: "Басқарушы серіктес",
				},
				model.TeamTranslationRole: {
					model.LangEN: "Investments",
					model.LangRU: "Инвестиции",
					model.LangKZ: "Инвестициялар",
				},
			},
		},
	}
}
