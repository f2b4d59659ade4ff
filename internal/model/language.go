// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the codec, the row store
// and the HTTP layer: languages, translation rows, projects, team and users.
package model

import "strings"

// Lang is one of the closed set of content languages.
type Lang string

// Supported content languages.
const (
	LangEN Lang = "en"
	LangRU Lang = "ru"
	LangKZ Lang = "kz"
)

// DefaultLang is used when a request does not name a language.
const DefaultLang = LangEN

// Languages lists every supported language in canonical order.
// Encoders emit rows in this order.
var Languages = []Lang{LangEN, LangRU, LangKZ}

// ParseLang converts a language code into a Lang.
// Matching is case-insensitive; ok is false for unsupported codes.
func ParseLang(code string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(code)))
	return l, l.Valid()
}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	switch l {
	case LangEN, LangRU, LangKZ:
		return true
	}
	return false
}

func (l Lang) String() string {
	return string(l)
}

// LanguageInfo describes a language for switchers and admin screens.
type LanguageInfo struct {
	Code       Lang   `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// LanguageInfos returns display metadata for all supported languages.
func LanguageInfos() []LanguageInfo {
	return []LanguageInfo{
		{LangEN, "English", "English"},
		{LangRU, "Russian", "Русский"},
		{LangKZ, "Kazakh", "Қазақша"},
	}
}
