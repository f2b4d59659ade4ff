// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the localized messages of the JSON API.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/falahcapital/site/internal/model"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[model.Lang]map[string]string // lang -> key -> translation
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// Site languages and their BCP 47 tags. Kazakh is "kk"; the site uses the
// country code "kz" for it.
var (
	supported = []model.Lang{model.LangEN, model.LangRU, model.LangKZ}
	tags      = []language.Tag{language.English, language.Russian, language.Kazakh}
	matcher   = language.NewMatcher(tags)
)

// Init initializes the i18n system with the given logger.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[model.Lang]map[string]string),
		logger:       logger,
	}

	for _, lang := range supported {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", supported)
	}

	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang model.Lang) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}

	return nil
}

// T translates a message key to the specified language.
// Unknown languages and missing keys fall back to English, then to the key.
func T(lang model.Lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	translation, ok := catalog.translations[lang][key]
	if !ok && lang != model.DefaultLang {
		translation, ok = catalog.translations[model.DefaultLang][key]
		if ok && catalog.logger != nil {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}
	catalog.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best supported language for a language code or
// an Accept-Language header value.
func MatchLanguage(acceptLang string) model.Lang {
	if lang, ok := model.ParseLang(acceptLang); ok {
		return lang
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return model.DefaultLang
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return model.DefaultLang
	}
	return supported[idx]
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang model.Lang) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return len(catalog.translations[lang])
}
