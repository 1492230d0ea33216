package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrSyncInProgress:         http.StatusConflict,
	service.ErrAuthenticationRequired: http.StatusUnauthorized,
	service.ErrQuotaExceeded:          http.StatusTooManyRequests,
	service.ErrRemoteUnavailable:      http.StatusServiceUnavailable,
	service.ErrSyncCancelled:          http.StatusServiceUnavailable,
	service.ErrInvalidChange:          http.StatusBadRequest,
	service.ErrQueueUnavailable:       http.StatusInternalServerError,
	service.ErrLocalStore:             http.StatusInternalServerError,

	store.ErrRecordNotFound: http.StatusNotFound,

	utils.ErrEmptyBody:          http.StatusBadRequest,
	errInvalidJSON:              http.StatusBadRequest,
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidAPIToken:          http.StatusUnauthorized,
	ErrMethodNotAllowed:         http.StatusMethodNotAllowed,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse is the body of every failed control API call.
type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// writeError logs err and answers with the status mapped from it.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	ev := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.FromRequest(r).Error()
	}
	ev.Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	utils.WriteJSON(w, errorResponse{
		Error:   err.Error(),
		TraceID: w.Header().Get(traceIDHeader),
	}, status)
}
