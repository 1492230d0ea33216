package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
)

func (h *Handler) recordLocalChange(w http.ResponseWriter, r *http.Request) {
	change, err := readChange(r)
	if err != nil {
		writeError(w, r, "*Handler.recordLocalChange", err)
		return
	}

	if err = h.sync.RecordLocalChange(r.Context(), change); err != nil {
		writeError(w, r, "*Handler.recordLocalChange", err)
		return
	}

	utils.WriteJSON(w, queuedResponse{Queued: true}, http.StatusAccepted)
}

func (h *Handler) records(w http.ResponseWriter, r *http.Request) {
	records, err := h.sync.Records(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, "*Handler.records", err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	utils.WriteJSON(w, recordsResponse{Records: records, Length: len(records)}, http.StatusOK)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	record, err := h.sync.Record(r.Context(), chi.URLParam(r, "type"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.record", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}
