// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translation converts between the flat (key, language, value) rows
// of the translations table and the nested, language-keyed trees consumed by
// page renderers. It performs no I/O: decoders take rows, encoders return
// upsert operations for the caller to execute.
package translation

import "strings"

// Separator joins path segments into a composite row key.
const Separator = "."

// Path is a composite key split into its segments. Keys are only flattened
// to dotted strings at the row store boundary.
type Path []string

// ParseKey splits a stored composite key into a Path.
func ParseKey(key string) Path {
	return Path(strings.Split(key, Separator))
}

// Child returns a new path with seg appended. p is not modified.
func (p Path) Child(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Key flattens the path into the composite key stored in the row store.
func (p Path) Key() string {
	return strings.Join(p, Separator)
}

// Leaf returns the last segment.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns every segment but the last.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// IsNested reports whether the path has more than one segment.
func (p Path) IsNested() bool {
	return len(p) > 1
}

func (p Path) String() string {
	return p.Key()
}
