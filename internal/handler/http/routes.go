package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.version)
		if h.metrics != nil {
			r.Handle("/metrics", h.metrics)
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync", h.syncInventory)
		r.Get("/api/sync/status", h.syncStatus)
		r.Get("/api/sync/stats", h.syncStatistics)
		r.Delete("/api/sync/state", h.resetSyncState)

		r.Get("/api/queue", h.pendingOperations)
		r.Post("/api/queue", h.queueForSync)
		r.Post("/api/queue/flush", h.processPendingQueue)

		r.Post("/api/records", h.recordLocalChange)
		r.Get("/api/records/{type}", h.records)
		r.Get("/api/records/{type}/{id}", h.record)

		r.Get("/api/cache/stats", h.cacheStatistics)
		r.Delete("/api/cache", h.clearCache)
	})

	router.MethodNotAllowed(h.methodNotAllowed(router))

	return router
}
