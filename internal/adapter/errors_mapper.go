package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: http %d: %s", sentinel, code, body)
	}
	if code >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrRemoteUnavailable, code, body)
	}
	// unexpected 3xx/4xx: the record is not accepted as sent
	return fmt.Errorf("%w: http %d: %s", ErrRecordRejected, code, body)
}

// mapTransportError classifies an error returned before any response was read.
// Once ctx is done the failure is reported as cancellation, never as a flaky
// network, and a custom cancel cause stays in the chain next to ctx.Err().
func mapTransportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, ctxErr) {
			return fmt.Errorf("%s: %w: %w", op, ctxErr, cause)
		}
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRemoteUnavailable, err)
}
