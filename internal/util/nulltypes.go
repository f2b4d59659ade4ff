// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// NullInt64FromIntPtr converts an optional int into sql.NullInt64.
func NullInt64FromIntPtr(ptr *int) sql.NullInt64 {
	if ptr == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*ptr), Valid: true}
}

// IntPtrFromNullInt64 is the inverse of NullInt64FromIntPtr.
func IntPtrFromNullInt64(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// NullJSON serializes v for a JSON value column. nil becomes SQL NULL.
func NullJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling value: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ParseNullJSON decodes a JSON value column. SQL NULL becomes nil.
func ParseNullJSON(ns sql.NullString) (any, error) {
	if !ns.Valid {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return nil, fmt.Errorf("unmarshaling value: %w", err)
	}
	return v, nil
}

// RawNullJSON returns the column as raw JSON, with SQL NULL as "null".
func RawNullJSON(ns sql.NullString) json.RawMessage {
	if !ns.Valid {
		return json.RawMessage("null")
	}
	return json.RawMessage(ns.String)
}
