package http

import (
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
)

func (h *Handler) syncInventory(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithTrigger(r.Context(), utils.TriggerAPI)

	result, err := h.sync.SyncInventory(ctx)
	if err != nil {
		writeError(w, r, "*Handler.syncInventory", err)
		return
	}

	utils.WriteJSON(w, newSyncResultResponse(result), http.StatusOK)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := syncStatusResponse{Status: h.sync.Status()}
	if err := h.sync.LastError(); err != nil {
		resp.LastError = err.Error()
	}

	last, ok, err := h.sync.LastSyncDate(ctx)
	if err != nil {
		writeError(w, r, "*Handler.syncStatus", err)
		return
	}
	if ok {
		resp.LastSyncDate = &last
	}

	pending, err := h.sync.PendingOperations(ctx)
	if err != nil {
		writeError(w, r, "*Handler.syncStatus", err)
		return
	}
	resp.Pending = len(pending)

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) syncStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sync.Statistics(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.syncStatistics", err)
		return
	}

	utils.WriteJSON(w, syncStatisticsResponse{
		SyncStatistics: stats,
		SuccessRate:    stats.SuccessRate(),
	}, http.StatusOK)
}

func (h *Handler) resetSyncState(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.ResetSyncState(r.Context()); err != nil {
		writeError(w, r, "*Handler.resetSyncState", err)
		return
	}

	logger.FromRequest(r).Info().Msg("sync state reset")
	w.WriteHeader(http.StatusNoContent)
}
