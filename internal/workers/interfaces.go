// Package workers runs long-lived background workers and bounded batches of
// short per-item tasks.
package workers

import "context"

// Worker is a long-running background component. Run blocks until ctx is
// cancelled or the worker fails.
//
// Example implementation:
//
//	type ticker struct{}
//
//	func (w *ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error { return f(ctx) }
