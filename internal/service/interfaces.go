package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the sync orchestrator. It exclusively owns the pending
// queue and the watermark; at most one cycle runs at a time.
type SyncService interface {
	// SyncInventory runs one full cycle: drain the queue, pull remote deltas,
	// resolve conflicts, apply the rest and advance the watermark. A call made
	// while another cycle runs returns ErrSyncInProgress and does nothing.
	SyncInventory(ctx context.Context) (models.SyncResult, error)

	// QueueForSync durably appends change to the pending queue. It never
	// starts a cycle. The boolean is false only when the change could not be
	// persisted.
	QueueForSync(ctx context.Context, change models.SyncChange) (bool, error)

	// RecordLocalChange applies change to the local store and queues it.
	RecordLocalChange(ctx context.Context, change models.SyncChange) error

	// ProcessPendingQueue runs the drain step alone and returns the number of
	// changes pushed.
	ProcessPendingQueue(ctx context.Context) (int, error)

	CacheStatistics() models.CacheStatistics
	ClearCache()

	// Records and Record read the local store through the cache.
	Records(ctx context.Context, recordType string) ([]models.Record, error)
	Record(ctx context.Context, recordType, recordID string) (models.Record, error)

	Status() models.SyncStatus
	// LastError is the error of the last failed cycle, nil once a cycle
	// succeeds again.
	LastError() error
	LastSyncDate(ctx context.Context) (time.Time, bool, error)
	PendingOperations(ctx context.Context) ([]models.PendingOperation, error)
	Statistics(ctx context.Context) (models.SyncStatistics, error)

	// ResetSyncState forgets the watermark so that the next cycle pulls
	// everything.
	ResetSyncState(ctx context.Context) error
}

// MaintenanceService runs the periodic cleanup job.
type MaintenanceService interface {
	Cleanup(ctx context.Context) error
}

// Analytics receives cycle outcomes and queue depth.
type Analytics interface {
	ObserveCycle(result models.SyncResult, err error)
	SetPendingOperations(n int)
}

// RecordCache memoizes local store reads. Listings are keyed "type:<type>"
// and single records "record:" followed by their [models.RecordKey].
type RecordCache interface {
	Get(key string) ([]models.Record, bool)
	Set(key string, records []models.Record)
	Remove(key string)
	Clear()
	Stats() models.CacheStatistics
}

// IDGenerator produces pending operation identifiers.
type IDGenerator interface {
	Generate() string
}

// DatabaseOptimizer compacts the sync database.
type DatabaseOptimizer interface {
	Optimize(ctx context.Context) error
}
