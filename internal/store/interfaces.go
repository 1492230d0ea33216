package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PendingQueueRepository persists the pending-operation queue in enqueue order.
type PendingQueueRepository interface {
	Enqueue(ctx context.Context, op models.PendingOperation) error
	List(ctx context.Context) ([]models.PendingOperation, error)
	Remove(ctx context.Context, ids ...string) error
	MarkAttempt(ctx context.Context, id string, lastErr string) error
	Count(ctx context.Context) (int, error)
}

// SyncStateRepository persists the sync watermark.
type SyncStateRepository interface {
	Watermark(ctx context.Context) (time.Time, bool, error)
	SetWatermark(ctx context.Context, at time.Time) error
	ResetWatermark(ctx context.Context) error
}

// SyncHistoryRepository records finished sync cycles.
type SyncHistoryRepository interface {
	Record(ctx context.Context, entry models.SyncHistoryEntry) error
	Statistics(ctx context.Context) (models.SyncStatistics, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// RecordStore is the local persistent store synchronized records live in.
// Every call is its own transaction.
type RecordStore interface {
	FetchRecords(ctx context.Context, recordType string) ([]models.Record, error)
	// Record returns ErrRecordNotFound for unknown records.
	Record(ctx context.Context, recordType, recordID string) (models.Record, error)
	ApplyChange(ctx context.Context, change models.SyncChange) error
	DeleteRecord(ctx context.Context, recordType, recordID string) error
}
