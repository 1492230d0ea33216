// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// ── auth ──────────────────────────────────────────────────────────────────────

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer secret", http.StatusOK},
		{"case insensitive scheme", "bearer secret", http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"malformed", "Token secret extra", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestRouter(t, WithAPIToken("secret"))
			if tt.want == http.StatusOK {
				svc.EXPECT().CacheStatistics().Return(models.CacheStatistics{})
			}

			var header []string
			if tt.header != "" {
				header = []string{"Authorization", tt.header}
			}
			rec := do(t, h, http.MethodGet, "/api/cache/stats", nil, header...)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuth_OpenWithoutToken(t *testing.T) {
	h, svc := newTestRouter(t)
	svc.EXPECT().CacheStatistics().Return(models.CacheStatistics{})

	rec := do(t, h, http.MethodGet, "/api/cache/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ── method check ──────────────────────────────────────────────────────────────

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/queue", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

	rec = do(t, h, http.MethodGet, "/api/sync", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

// ── trace id ──────────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get(traceIDHeader)
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		assert.Equal(t, rec.Header().Get(traceIDHeader), seen)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(traceIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(rec, req)
		assert.Equal(t, "abc", rec.Header().Get(traceIDHeader))
	})
}

// ── logging ───────────────────────────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLogger("test")
	l.Logger = l.Output(&buf)
	h := &Handler{logger: l}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/api/sync", entry["uri"])
	assert.Equal(t, "POST", entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
	assert.Equal(t, rec.Header().Get(traceIDHeader), entry["trace_id"])
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	n, err := w.Write([]byte("hi"))
	require.NoError(t, err)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, 2, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, w.size)
}

func TestMethodNotAllowed_JSONBody(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/health", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), ErrMethodNotAllowed.Error())
}
