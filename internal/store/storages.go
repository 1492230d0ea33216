package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

// Storages groups every persistence component of the sync engine.
type Storages struct {
	DB           *DB
	PendingQueue PendingQueueRepository
	SyncState    SyncStateRepository
	SyncHistory  SyncHistoryRepository
	Records      *BoltRecordStore
}

// NewStorages opens the SQLite database, applies migrations and opens the
// bbolt record store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	records, err := NewBoltRecordStore(cfg.Records.Path, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		DB:           db,
		PendingQueue: NewPendingQueueRepository(db, log),
		SyncState:    NewSyncStateRepository(db, log),
		SyncHistory:  NewSyncHistoryRepository(db, log),
		Records:      records,
	}, nil
}

func (s *Storages) Close() error {
	return errors.Join(s.Records.Close(), s.DB.Close())
}
