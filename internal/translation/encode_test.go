// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/falahcapital/site/internal/model"
)

func TestEncodeNullWritesTombstones(t *testing.T) {
	ops := mustEncode(t, "k", nil)
	want := []UpsertOp{
		{Key: "k", Language: model.LangEN, Value: nil},
		{Key: "k", Language: model.LangRU, Value: nil},
		{Key: "k", Language: model.LangKZ, Value: nil},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Encode(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSharedArray(t *testing.T) {
	value := []any{
		map[string]any{"title": map[string]any{"en": "A"}},
		map[string]any{"title": map[string]any{"en": "B"}},
	}
	ops := mustEncode(t, "aboutPageSectors", value)
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}

	const want = `[{"title":{"en":"A"}},{"title":{"en":"B"}}]`
	for i, op := range ops {
		if op.Language != model.Languages[i] {
			t.Errorf("op %d language = %q, want %q", i, op.Language, model.Languages[i])
		}
		if op.Value != want {
			t.Errorf("op %d value = %v, want %s", i, op.Value, want)
		}
	}
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	ops := mustEncode(t, "k", []any{"<b>&</b>"})
	if got := ops[0].Value; got != `["<b>&</b>"]` {
		t.Errorf("value = %v", got)
	}
}

func TestEncodeLocalized(t *testing.T) {
	ops := mustEncode(t, "heroTitle", map[string]any{
		"ru":    "Привет",
		"en":    "Hi",
		"extra": "ignored",
	})
	want := []UpsertOp{
		{Key: "heroTitle", Language: model.LangEN, Value: "Hi"},
		{Key: "heroTitle", Language: model.LangRU, Value: "Привет"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLocalizedArraysAreSerialized(t *testing.T) {
	ops := mustEncode(t, "ctaTitle", map[string]any{"en": []any{"Line 1", "Line 2"}})
	want := []UpsertOp{{Key: "ctaTitle", Language: model.LangEN, Value: `["Line 1","Line 2"]`}}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeNestedComposesKeys(t *testing.T) {
	ops := mustEncode(t, "portfolioI18n", map[string]any{
		"heroTitle": map[string]any{"en": "T"},
		"meta": map[string]any{
			"count": 3.0,
		},
	})

	var keys []string
	for _, op := range ops {
		keys = append(keys, op.Key+"/"+string(op.Language))
	}
	want := []string{
		"portfolioI18n.heroTitle/en",
		"portfolioI18n.meta.count/en",
		"portfolioI18n.meta.count/ru",
		"portfolioI18n.meta.count/kz",
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeScalar(t *testing.T) {
	for _, v := range []any{"text", 7.0, true} {
		ops := mustEncode(t, "k", v)
		if len(ops) != 3 {
			t.Fatalf("Encode(%v) returned %d ops, want 3", v, len(ops))
		}
		for _, op := range ops {
			if op.Value != v {
				t.Errorf("Encode(%v) op value = %v", v, op.Value)
			}
		}
	}
}

func TestEncodeUnserializable(t *testing.T) {
	if _, err := Encode("k", []any{math.Inf(1)}); err == nil {
		t.Error("expected error for unserializable array")
	}
}

func TestEncodeUpdatesSortedKeys(t *testing.T) {
	ops, err := EncodeUpdates(map[string]any{
		"b": "B",
		"a": map[string]any{"en": "A"},
	})
	if err != nil {
		t.Fatalf("EncodeUpdates error: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4", len(ops))
	}
	if ops[0].Key != "a" || ops[1].Key != "b" {
		t.Errorf("unexpected order: %+v", ops)
	}
}

func TestClassify(t *testing.T) {
	type custom struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name string
		in   any
		want UpdateValue
	}{
		{"nil", nil, Null{}},
		{"array", []any{"x"}, Array{Items: []any{"x"}}},
		{"localized", map[string]any{"kz": "k"}, Localized{Values: map[model.Lang]any{model.LangKZ: "k"}}},
		{"nested", map[string]any{"b": 1.0, "a": nil}, Nested{Fields: []Field{
			{Name: "a", Value: Null{}},
			{Name: "b", Value: Scalar{Value: 1.0}},
		}}},
		{"scalar", "s", Scalar{Value: "s"}},
		{"struct is normalized", custom{Name: "n"}, Nested{Fields: []Field{
			{Name: "name", Value: Scalar{Value: "n"}},
		}}},
		{"typed slice is normalized", []string{"a", "b"}, Array{Items: []any{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Classify(tt.in)); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPath(t *testing.T) {
	p := ParseKey("a.b")
	child := p.Child("c")
	if got := child.Key(); got != "a.b.c" {
		t.Errorf("Key() = %q", got)
	}
	if got := p.Key(); got != "a.b" {
		t.Errorf("parent path modified: %q", got)
	}
	if got := child.Leaf(); got != "c" {
		t.Errorf("Leaf() = %q", got)
	}
	if got := child.Parent().Key(); got != "a.b" {
		t.Errorf("Parent() = %q", got)
	}
	if ParseKey("flat").IsNested() {
		t.Error("flat key reported as nested")
	}
}
