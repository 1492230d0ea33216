package http

import (
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

type failureResponse struct {
	RecordID string `json:"record_id"`
	Error    string `json:"error"`
}

type syncResultResponse struct {
	PushedCount       int               `json:"pushed_count"`
	PulledCount       int               `json:"pulled_count"`
	ConflictsResolved int               `json:"conflicts_resolved"`
	StartedAt         time.Time         `json:"started_at"`
	FinishedAt        time.Time         `json:"finished_at"`
	DurationMS        int64             `json:"duration_ms"`
	Failures          []failureResponse `json:"failures,omitempty"`
}

func newSyncResultResponse(res models.SyncResult) syncResultResponse {
	resp := syncResultResponse{
		PushedCount:       res.PushedCount,
		PulledCount:       res.PulledCount,
		ConflictsResolved: res.ConflictsResolved,
		StartedAt:         res.StartedAt,
		FinishedAt:        res.FinishedAt,
		DurationMS:        res.Duration().Milliseconds(),
	}
	for _, f := range res.Failures {
		fr := failureResponse{RecordID: f.RecordID}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		resp.Failures = append(resp.Failures, fr)
	}
	return resp
}

type syncStatusResponse struct {
	Status       models.SyncStatus `json:"status"`
	LastError    string            `json:"last_error,omitempty"`
	LastSyncDate *time.Time        `json:"last_sync_date,omitempty"`
	Pending      int               `json:"pending_operations"`
}

type syncStatisticsResponse struct {
	models.SyncStatistics
	SuccessRate float64 `json:"success_rate"`
}

type pendingOperationsResponse struct {
	Operations []models.PendingOperation `json:"operations"`
	Length     int                       `json:"length"`
}

type queuedResponse struct {
	Queued bool `json:"queued"`
}

type pushedResponse struct {
	Pushed int `json:"pushed"`
}

type recordsResponse struct {
	Records []models.Record `json:"records"`
	Length  int             `json:"length"`
}

type cacheStatisticsResponse struct {
	models.CacheStatistics
	HitRate float64 `json:"hit_rate"`
}
