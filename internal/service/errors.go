package service

import (
	"errors"
)

var (
	// ErrSyncInProgress is returned when a cycle is requested while another
	// one is running. The request is a no-op.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrAuthenticationRequired is returned when the remote account is not
	// available for syncing or rejected the credentials.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrQuotaExceeded is returned when the remote refused further writes.
	ErrQuotaExceeded = errors.New("remote quota exceeded")

	// ErrRemoteUnavailable is returned when the remote could not be reached
	// within the retry budget of a cycle.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrSyncCancelled is returned when the cycle context ended before the
	// cycle completed. Work committed before that point stays committed.
	ErrSyncCancelled = errors.New("sync cancelled")

	ErrInvalidChange = errors.New("invalid change")

	// ErrQueueUnavailable is returned when the pending queue cannot be read
	// or written.
	ErrQueueUnavailable = errors.New("pending queue unavailable")

	ErrLocalStore = errors.New("local store failure")
)

// Cycle steps reported by [SyncError].
const (
	StepAuth      = "auth"
	StepDrain     = "drain"
	StepPull      = "pull"
	StepResolve   = "resolve"
	StepApply     = "apply"
	StepWatermark = "watermark"
)

// SyncError is a cycle-level failure. Step names the phase that failed; Err
// wraps one of the sentinel errors above.
type SyncError struct {
	Step string
	Err  error
}

func (e *SyncError) Error() string {
	return "sync " + e.Step + ": " + e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
