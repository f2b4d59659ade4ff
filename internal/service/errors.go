// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service orchestrates the row store, the translation codec and the
// caches. Readers fetch rows and decode them; writers encode updates and run
// the resulting upserts as one concurrent batch.
package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// BatchError reports the failed writes of a batch. Writes that succeeded
// are not rolled back, so the store may hold a mix of old and new values.
type BatchError struct {
	Failed int
	Total  int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d writes failed: %v", e.Failed, e.Total, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
