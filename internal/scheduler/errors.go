package scheduler

import "errors"

var (
	// ErrTooManyPendingRequests is returned by Submit when the scheduler
	// already holds its maximum of outstanding requests.
	ErrTooManyPendingRequests = errors.New("too many pending scheduling requests")

	// ErrTaskExpired is the cancellation cause of a run that outlived its
	// deadline.
	ErrTaskExpired = errors.New("background task expired")

	ErrUnknownJob           = errors.New("job is not registered")
	ErrJobAlreadyRegistered = errors.New("job is already registered")
)
