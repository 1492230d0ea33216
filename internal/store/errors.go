package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrQueueEntryNotFound is returned when an operation targets a pending
	// operation id that is not in the queue.
	ErrQueueEntryNotFound = errors.New("pending operation not found")

	// ErrDuplicateQueueEntry is returned when a pending operation id is
	// enqueued twice.
	ErrDuplicateQueueEntry = errors.New("pending operation already queued")

	// ErrRecordNotFound is returned when a record lookup in the local store
	// finds nothing.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCorruptedEntry is returned when a persisted value cannot be decoded.
	ErrCorruptedEntry = errors.New("corrupted storage entry")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
