package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
)

// mapAdapterError translates a remote store error into a service error. The
// original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrSyncCancelled, err)
	case errors.Is(err, adapter.ErrAuthRejected):
		return fmt.Errorf("%w: %w", ErrAuthenticationRequired, err)
	case errors.Is(err, adapter.ErrQuotaExceeded):
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	case errors.Is(err, adapter.ErrRemoteUnavailable):
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	default:
		return err
	}
}
