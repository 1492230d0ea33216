package adapter

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthRejected is returned when the remote refuses the credentials
	// (HTTP 401 or 403).
	ErrAuthRejected = errors.New("remote rejected authentication")

	// ErrQuotaExceeded is returned when the remote throttles or runs out of
	// space for the account (HTTP 429 or 507).
	ErrQuotaExceeded = errors.New("remote quota exceeded")

	// ErrRecordRejected is returned when the remote refuses a single record
	// (HTTP 400, 409 or 422).
	ErrRecordRejected = errors.New("remote rejected record")

	// ErrRecordNotFound is returned when the record does not exist remotely
	// (HTTP 404).
	ErrRecordNotFound = errors.New("record not found remotely")

	// ErrRemoteUnavailable covers timeouts, 5xx responses and transport errors.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	ErrInvalidResponse = errors.New("invalid remote response")
)

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsTerminalRecord reports whether err concerns one record only and retrying
// it cannot help.
func IsTerminalRecord(err error) bool {
	return errors.Is(err, ErrRecordRejected) || errors.Is(err, ErrRecordNotFound)
}

// IsTerminalGlobal reports whether err must abort the rest of the batch.
func IsTerminalGlobal(err error) bool {
	return errors.Is(err, ErrAuthRejected) || errors.Is(err, ErrQuotaExceeded)
}

// statusErrors maps HTTP status codes to the sentinel they stand for.
var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrRecordRejected,
	http.StatusUnauthorized:        ErrAuthRejected,
	http.StatusForbidden:           ErrAuthRejected,
	http.StatusNotFound:            ErrRecordNotFound,
	http.StatusRequestTimeout:      ErrRemoteUnavailable,
	http.StatusConflict:            ErrRecordRejected,
	http.StatusUnprocessableEntity: ErrRecordRejected,
	http.StatusTooManyRequests:     ErrQuotaExceeded,
	http.StatusInsufficientStorage: ErrQuotaExceeded,
}
