package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package. It satisfies workers.Worker.
type Server interface {
	// Run starts serving requests and blocks until ctx is cancelled or the
	// listener fails. A cancelled ctx triggers a graceful shutdown and is not
	// reported as an error.
	Run(ctx context.Context) error
}
