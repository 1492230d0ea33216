package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
)

func (h *Handler) pendingOperations(w http.ResponseWriter, r *http.Request) {
	ops, err := h.sync.PendingOperations(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.pendingOperations", err)
		return
	}
	if ops == nil {
		ops = []models.PendingOperation{}
	}

	utils.WriteJSON(w, pendingOperationsResponse{Operations: ops, Length: len(ops)}, http.StatusOK)
}

func (h *Handler) queueForSync(w http.ResponseWriter, r *http.Request) {
	change, err := readChange(r)
	if err != nil {
		writeError(w, r, "*Handler.queueForSync", err)
		return
	}

	queued, err := h.sync.QueueForSync(r.Context(), change)
	if err != nil {
		writeError(w, r, "*Handler.queueForSync", err)
		return
	}

	utils.WriteJSON(w, queuedResponse{Queued: queued}, http.StatusAccepted)
}

func (h *Handler) processPendingQueue(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithTrigger(r.Context(), utils.TriggerAPI)

	pushed, err := h.sync.ProcessPendingQueue(ctx)
	if err != nil {
		writeError(w, r, "*Handler.processPendingQueue", err)
		return
	}

	utils.WriteJSON(w, pushedResponse{Pushed: pushed}, http.StatusOK)
}

// readChange decodes a change from the body. Validation is left to the
// service.
func readChange(r *http.Request) (models.SyncChange, error) {
	var change models.SyncChange
	if err := utils.ReadJSON(r, &change); err != nil {
		if errors.Is(err, utils.ErrEmptyBody) {
			return change, err
		}
		return change, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return change, nil
}
