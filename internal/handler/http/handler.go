package http

import (
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
)

// BuildInfo is the build metadata served by GET /api/version.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

type Handler struct {
	sync    service.SyncService
	metrics http.Handler

	apiToken string
	build    BuildInfo

	logger *logger.Logger
}

type Option func(*Handler)

// WithAPIToken requires every protected route to present token as a bearer
// token. An empty token leaves the API open.
func WithAPIToken(token string) Option {
	return func(h *Handler) { h.apiToken = token }
}

// WithMetrics mounts the Prometheus handler at /metrics.
func WithMetrics(m http.Handler) Option {
	return func(h *Handler) { h.metrics = m }
}

func WithBuildInfo(b BuildInfo) Option {
	return func(h *Handler) { h.build = b }
}

func NewHandler(sync service.SyncService, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		sync:   sync,
		build:  BuildInfo{Version: "N/A", Date: "N/A", Commit: "N/A"},
		logger: logger.WithComponent("http"),
	}
	for _, opt := range opts {
		opt(h)
	}
	logger.Info().Bool("auth", h.apiToken != "").Msg("http handler created")
	return h
}
