package http

import (
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
)

func (h *Handler) cacheStatistics(w http.ResponseWriter, r *http.Request) {
	stats := h.sync.CacheStatistics()
	utils.WriteJSON(w, cacheStatisticsResponse{CacheStatistics: stats, HitRate: stats.HitRate()}, http.StatusOK)
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	h.sync.ClearCache()
	logger.FromRequest(r).Info().Msg("record cache cleared")
	w.WriteHeader(http.StatusNoContent)
}
