// Package scheduler runs the recurring background jobs of the sync daemon.
//
// [TaskScheduler] is the low-level collaborator that accepts one-shot run
// requests; [TimerScheduler] implements it in process. [BackgroundScheduler]
// owns the sync and cleanup jobs on top of it and resubmits each job after
// every run.
package scheduler

import (
	"context"
	"time"
)

// Handler runs one occurrence of a job. The context ends when the run
// expires; its cause is then ErrTaskExpired.
type Handler func(ctx context.Context) error

// Constraints restrict when a request may start.
type Constraints struct {
	RequiresNetwork       bool
	RequiresExternalPower bool
}

// Request asks for one run of JobID no earlier than EarliestBegin.
type Request struct {
	JobID         string
	Constraints   Constraints
	EarliestBegin time.Time
}

// TaskScheduler accepts job handlers and run requests. A job has at most one
// outstanding request; submitting again replaces it.
type TaskScheduler interface {
	Register(jobID string, h Handler) error
	Submit(req Request) error
	Pending(jobID string) (Request, bool)
}

// ConnectivityProbe reports whether the remote can be reached.
type ConnectivityProbe interface {
	Ping(ctx context.Context) error
}
