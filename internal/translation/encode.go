// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/falahcapital/site/internal/model"
)

// UpsertOp is a single write keyed by (Key, Language).
// A nil Value is a tombstone, not a deletion.
type UpsertOp struct {
	Key      string
	Language model.Lang
	Value    any
}

// Encode turns an update for key into row upserts. key may itself be a
// composite key ("parent.child").
//
//   - null writes a null to every language
//   - an array is serialized once and the same string is written to every language
//   - a localized object writes one row per language present, serializing
//     array values first
//   - any other object recurses with "key.child" composite keys
//   - a scalar is written unchanged to every language
//
// Encode is pure. The only error is a value that cannot be serialized.
func Encode(key string, value any) ([]UpsertOp, error) {
	return EncodePath(ParseKey(key), Classify(value))
}

// EncodePath encodes an already classified value at path.
func EncodePath(path Path, value UpdateValue) ([]UpsertOp, error) {
	return appendOps(nil, path, value)
}

// EncodeUpdates encodes every top-level key of an update object and
// concatenates the operations. Keys are processed in sorted order.
func EncodeUpdates(updates map[string]any) ([]UpsertOp, error) {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var ops []UpsertOp
	for _, k := range keys {
		var err error
		ops, err = appendOps(ops, ParseKey(k), Classify(updates[k]))
		if err != nil {
			return nil, err
		}
	}
	return ops, nil
}

func appendOps(ops []UpsertOp, path Path, value UpdateValue) ([]UpsertOp, error) {
	key := path.Key()

	switch v := value.(type) {
	case Null:
		for _, lang := range model.Languages {
			ops = append(ops, UpsertOp{Key: key, Language: lang, Value: nil})
		}

	case Array:
		serialized, err := marshalString(v.Items)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}
		for _, lang := range model.Languages {
			ops = append(ops, UpsertOp{Key: key, Language: lang, Value: serialized})
		}

	case Localized:
		for _, lang := range model.Languages {
			lv, ok := v.Values[lang]
			if !ok {
				continue
			}
			if items, isArray := lv.([]any); isArray {
				serialized, err := marshalString(items)
				if err != nil {
					return nil, fmt.Errorf("encoding %q (%s): %w", key, lang, err)
				}
				lv = serialized
			}
			ops = append(ops, UpsertOp{Key: key, Language: lang, Value: lv})
		}

	case Nested:
		for _, f := range v.Fields {
			var err error
			ops, err = appendOps(ops, path.Child(f.Name), f.Value)
			if err != nil {
				return nil, err
			}
		}

	case Scalar:
		for _, lang := range model.Languages {
			ops = append(ops, UpsertOp{Key: key, Language: lang, Value: v.Value})
		}

	default:
		return nil, fmt.Errorf("encoding %q: unsupported value %T", key, value)
	}

	return ops, nil
}

// marshalString serializes v to compact JSON without HTML escaping, so
// stored strings stay readable and byte-identical across languages.
func marshalString(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
