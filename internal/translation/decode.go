// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"encoding/json"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/falahcapital/site/internal/model"
)

// Tree is a decoded translation tree. Leaves are localized objects
// ({"en": ..., "ru": ..., "kz": ...}) or bare arrays shared by all languages;
// dotted keys become nested plain objects.
type Tree map[string]any

type entry struct {
	lang  model.Lang
	value any
}

// Decode groups rows by key and rebuilds the nested tree.
//
// String values starting with "[" or "{" are parsed as JSON, falling back to
// the raw string when parsing fails. When the first entry of a key is an
// array and every entry of that key is deep-equal to it, the key decodes to
// that bare array instead of a localized object.
//
// The collapse check uses whichever entry comes first in rows as its
// reference. With rows in a different order, a key where only some
// languages agree can decode differently. Callers that need a stable
// result must supply rows in a stable order.
//
// Missing languages are simply absent from the localized object. Decode
// never fails.
func Decode(rows []model.TranslationRow) Tree {
	var order []string
	grouped := make(map[string][]entry)
	for _, row := range rows {
		if _, seen := grouped[row.Key]; !seen {
			order = append(order, row.Key)
		}
		grouped[row.Key] = append(grouped[row.Key], entry{
			lang:  row.Language,
			value: ParseValue(row.Value),
		})
	}

	tree := make(Tree)
	for _, key := range order {
		entries := grouped[key]
		path := ParseKey(key)

		parent, ok := descend(tree, path.Parent())
		if !ok {
			continue
		}

		if shared, ok := collapse(entries); ok {
			parent[path.Leaf()] = shared
			continue
		}

		localized := make(map[string]any, len(entries))
		for _, e := range entries {
			localized[string(e.lang)] = e.value
		}
		parent[path.Leaf()] = localized
	}

	return tree
}

// ParseValue decodes JSON-looking strings. Anything else, including
// malformed JSON, is returned unchanged.
func ParseValue(v any) any {
	s, ok := v.(string)
	if !ok || !(strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) {
		return v
	}

	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return s
	}
	return parsed
}

// collapse returns the shared array when every entry holds the same array
// as the first one.
func collapse(entries []entry) ([]any, bool) {
	if len(entries) == 0 {
		return nil, false
	}
	first, ok := entries[0].value.([]any)
	if !ok {
		return nil, false
	}
	for _, e := range entries[1:] {
		if !cmp.Equal(e.value, any(first)) {
			return nil, false
		}
	}
	return first, true
}

// descend walks to the object at path, creating missing levels. It reports
// false when an existing value on the way is not an object; such rows are
// dropped and the existing value is kept.
func descend(tree Tree, path Path) (map[string]any, bool) {
	current := map[string]any(tree)
	for _, seg := range path {
		next, exists := current[seg]
		if !exists || next == nil {
			child := make(map[string]any)
			current[seg] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}
