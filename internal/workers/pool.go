// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrSkipped marks items that were never started because the batch stopped
// early.
var ErrSkipped = errors.New("skipped: batch stopped")

// ForEach runs fn for indices 0..n-1 with at most limit calls in flight and
// returns one error slot per index.
//
// A failing item does not stop its siblings. When stop reports true for an
// item's error no further items are started; items already running keep ctx
// and finish, and items not started get an error wrapping [ErrSkipped] and
// the stopping cause. Cancelling ctx behaves the same way for starts.
func ForEach(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error, stop func(error) bool) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	if limit < 1 {
		limit = 1
	}

	// halted only gates new starts; running items never see it
	halted, halt := context.WithCancelCause(ctx)
	defer halt(nil)

	var g errgroup.Group
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		if halted.Err() != nil {
			for j := i; j < n; j++ {
				errs[j] = errors.Join(ErrSkipped, context.Cause(halted))
			}
			break
		}
		g.Go(func() error {
			// a stop may have been raised while Go waited for a free slot
			if halted.Err() != nil {
				errs[i] = errors.Join(ErrSkipped, context.Cause(halted))
				return nil
			}
			err := fn(ctx, i)
			errs[i] = err
			if err != nil && stop != nil && stop(err) {
				halt(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
