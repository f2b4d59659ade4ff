// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"encoding/json"

	"github.com/falahcapital/site/internal/model"
)

// Snapshot is an immutable view of the translations served to pages:
// the bundled defaults overlaid with the live tree. Accessors return
// copies, so a Snapshot can be shared between requests.
type Snapshot struct {
	tree Tree
}

// Merge overlays overrides on defaults. Top-level keys present in overrides
// replace the default entry as a whole. Neither argument is modified.
func Merge(defaults, overrides Tree) Snapshot {
	merged := make(Tree, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = deepCopy(v)
	}
	for k, v := range overrides {
		merged[k] = deepCopy(v)
	}
	return Snapshot{tree: merged}
}

// Tree returns a copy of the merged tree.
func (s Snapshot) Tree() Tree {
	out := make(Tree, len(s.tree))
	for k, v := range s.tree {
		out[k] = deepCopy(v)
	}
	return out
}

// Len returns the number of top-level keys.
func (s Snapshot) Len() int {
	return len(s.tree)
}

// Lookup returns a copy of the value at a composite key.
func (s Snapshot) Lookup(key string) (any, bool) {
	v, ok := s.tree.Lookup(key)
	if !ok {
		return nil, false
	}
	return deepCopy(v), true
}

// Text returns the string at key for lang, falling back to the default
// language. Shared values that are plain strings are returned as is.
func (s Snapshot) Text(key string, lang model.Lang) string {
	v, ok := s.tree.Lookup(key)
	if !ok {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if str, ok := obj[string(lang)].(string); ok && str != "" {
		return str
	}
	str, _ := obj[string(model.DefaultLang)].(string)
	return str
}

// MarshalJSON encodes the merged tree.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.tree == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.tree)
}

// UnmarshalJSON restores a snapshot from its JSON form.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	s.tree = tree
	return nil
}

// Lookup walks a composite key through nested objects.
func (t Tree) Lookup(key string) (any, bool) {
	var current any = map[string]any(t)
	for _, seg := range ParseKey(key) {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = deepCopy(child)
		}
		return out
	case Tree:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}
