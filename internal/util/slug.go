// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug generation and conversions between Go values
// and the nullable columns of the row store.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds generated project slugs.
const MaxSlugLength = 80

// nonSlugRun matches every run of characters that cannot appear in a slug.
var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title in any site language into a URL slug. Marks are
// stripped, Cyrillic is transliterated to Latin, and anything else becomes
// a single hyphen. The result is cut at a word boundary to MaxSlugLength.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, _ := transform.String(t, s)

	slug := strings.ToLower(unidecode.Unidecode(plain))
	slug = strings.Trim(nonSlugRun.ReplaceAllString(slug, "-"), "-")
	return truncateSlug(slug, MaxSlugLength)
}

// WithSuffix returns base-n, shortening base so the result still fits
// MaxSlugLength. It is used to resolve slug collisions.
func WithSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	return truncateSlug(base, MaxSlugLength-len(suffix)) + suffix
}

func truncateSlug(slug string, limit int) string {
	if len(slug) <= limit {
		return slug
	}
	slug = slug[:limit]
	if i := strings.LastIndexByte(slug, '-'); i > 0 {
		slug = slug[:i]
	}
	return strings.TrimRight(slug, "-")
}

// IsValidSlug reports whether s is lowercase ASCII words joined by single hyphens.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
