package http

import (
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/utils"
)

type healthResponse struct {
	Status     string `json:"status"`
	SyncStatus string `json:"sync_status"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "ok", SyncStatus: string(h.sync.Status())}, http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.build, http.StatusOK)
}
