package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/utils"
)

// auth enforces the configured API token. Without a token every request
// passes.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, r, "Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		token, err := utils.ParseBearerToken(header)
		if err != nil {
			writeError(w, r, "Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAPIToken, err))
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) != 1 {
			writeError(w, r, "Handler.auth", ErrInvalidAPIToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
