// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWriteConcurrency bounds the upserts of one batch running at once.
const DefaultWriteConcurrency = 8

type writeFunc func(ctx context.Context) error

// runBatch executes every write with at most limit in flight. A failing
// write does not cancel the others; all failures are joined into a single
// *BatchError.
func runBatch(ctx context.Context, limit int, writes []writeFunc) error {
	if len(writes) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultWriteConcurrency
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(limit)
	for _, w := range writes {
		g.Go(func() error {
			if err := w(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == 0 {
		return nil
	}
	return &BatchError{
		Failed: len(errs),
		Total:  len(writes),
		Err:    errors.Join(errs...),
	}
}
