package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSyncStateRepository returns the SQLite-backed watermark store.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{DB: db, logger: logger, now: time.Now}
}

// Watermark returns the stored watermark; ok is false when none was saved yet.
func (r *syncStateRepository) Watermark(ctx context.Context) (time.Time, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, getSyncState, watermarkKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: watermark: %w", ErrExecutingQuery, err)
	}

	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: watermark %q: %w", ErrCorruptedEntry, value, err)
	}
	return at, true, nil
}

func (r *syncStateRepository) SetWatermark(ctx context.Context, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, upsertSyncState,
		watermarkKey,
		at.UTC().Format(time.RFC3339Nano),
		r.now().UTC().UnixNano(),
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateRepository.SetWatermark").
			Time("watermark", at).
			Msg("failed to store watermark")
		return fmt.Errorf("%w: set watermark: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ResetWatermark forgets the watermark so the next pull is a full one.
func (r *syncStateRepository) ResetWatermark(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, deleteSyncState, watermarkKey); err != nil {
		return fmt.Errorf("%w: reset watermark: %w", ErrExecutingStatement, err)
	}
	return nil
}
