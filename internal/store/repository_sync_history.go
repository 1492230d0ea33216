package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type syncHistoryRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncHistoryRepository returns the SQLite-backed sync history.
func NewSyncHistoryRepository(db *DB, logger *logger.Logger) SyncHistoryRepository {
	return &syncHistoryRepository{DB: db, logger: logger}
}

func (r *syncHistoryRepository) Record(ctx context.Context, e models.SyncHistoryEntry) error {
	_, err := r.DB.ExecContext(ctx, insertSyncHistory,
		e.StartedAt.UTC().UnixNano(),
		e.FinishedAt.UTC().UnixNano(),
		e.FinishedAt.Sub(e.StartedAt).Milliseconds(),
		e.Success,
		e.PushedCount,
		e.PulledCount,
		e.ConflictsResolved,
		e.Error,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncHistoryRepository.Record").
			Msg("failed to record sync history")
		return fmt.Errorf("%w: record history: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *syncHistoryRepository) Statistics(ctx context.Context) (models.SyncStatistics, error) {
	var (
		s                  models.SyncStatistics
		avgMillis          float64
		lastOK, lastFailed int64
	)
	err := r.DB.QueryRowContext(ctx, aggregateSyncHistory).Scan(
		&s.TotalSyncs,
		&s.SuccessfulSyncs,
		&avgMillis,
		&lastOK,
		&lastFailed,
		&s.ConflictsResolved,
		&s.RecordsPushed,
		&s.RecordsPulled,
	)
	if err != nil {
		return models.SyncStatistics{}, fmt.Errorf("%w: statistics: %w", ErrExecutingQuery, err)
	}

	s.FailedSyncs = s.TotalSyncs - s.SuccessfulSyncs
	s.AverageDuration = time.Duration(avgMillis * float64(time.Millisecond))
	s.LastSuccessfulSync = unixNanoPtr(lastOK)
	s.LastFailedSync = unixNanoPtr(lastFailed)
	return s, nil
}

// Prune deletes history rows finished before olderThan.
func (r *syncHistoryRepository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := sq.Delete("sync_history").
		Where(sq.Lt{"finished_at": olderThan.UTC().UnixNano()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: prune history: %w", ErrExecutingStatement, err)
	}
	return res.RowsAffected()
}

func unixNanoPtr(ns int64) *time.Time {
	if ns == 0 {
		return nil
	}
	t := time.Unix(0, ns).UTC()
	return &t
}
