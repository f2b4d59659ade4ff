// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"encoding/json"
	"sort"

	"github.com/falahcapital/site/internal/model"
)

// UpdateValue is the closed set of shapes an update can take. Classify
// builds one from a decoded JSON value; the encoder switches over it.
type UpdateValue interface {
	isUpdateValue()
}

// Null clears a key: every language row is written with a null value.
type Null struct{}

// Array is a list shared by all languages.
type Array struct {
	Items []any
}

// Localized holds per-language content. Only the languages present in the
// update are set; the others are left untouched.
type Localized struct {
	Values map[model.Lang]any
}

// Nested is a plain object whose fields extend the composite key.
type Nested struct {
	Fields []Field
}

// Field is one named child of a Nested value.
type Field struct {
	Name  string
	Value UpdateValue
}

// Scalar is a string, number or boolean applied to every language.
type Scalar struct {
	Value any
}

func (Null) isUpdateValue()      {}
func (Array) isUpdateValue()     {}
func (Localized) isUpdateValue() {}
func (Nested) isUpdateValue()    {}
func (Scalar) isUpdateValue()    {}

// Classify inspects v once and returns its UpdateValue.
//
// An object is Localized when it owns at least one language key (en, ru or
// kz); any other keys on it are ignored. Other objects are Nested, with
// fields in key order.
func Classify(v any) UpdateValue {
	switch val := normalize(v).(type) {
	case nil:
		return Null{}
	case []any:
		return Array{Items: val}
	case map[string]any:
		if isLocalized(val) {
			values := make(map[model.Lang]any, len(model.Languages))
			for _, lang := range model.Languages {
				if lv, ok := val[string(lang)]; ok {
					values[lang] = lv
				}
			}
			return Localized{Values: values}
		}

		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, 0, len(names))
		for _, name := range names {
			fields = append(fields, Field{Name: name, Value: Classify(val[name])})
		}
		return Nested{Fields: fields}
	default:
		return Scalar{Value: val}
	}
}

// isLocalized reports whether obj has at least one language key.
func isLocalized(obj map[string]any) bool {
	for _, lang := range model.Languages {
		if _, ok := obj[string(lang)]; ok {
			return true
		}
	}
	return false
}

// normalize maps Go values that did not come from encoding/json (typed
// slices, structs, map[string]string) onto the generic JSON shapes.
func normalize(v any) any {
	switch v.(type) {
	case nil, string, bool, float64, json.Number, []any, map[string]any:
		return v
	case int, int32, int64, float32, uint, uint32, uint64:
		return v
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
