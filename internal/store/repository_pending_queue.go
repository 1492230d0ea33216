package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type pendingQueueRepository struct {
	*DB
	logger *logger.Logger
}

// NewPendingQueueRepository returns the SQLite-backed pending-operation queue.
func NewPendingQueueRepository(db *DB, logger *logger.Logger) PendingQueueRepository {
	return &pendingQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *pendingQueueRepository) Enqueue(ctx context.Context, op models.PendingOperation) error {
	log := logger.FromContext(ctx)

	change, err := json.Marshal(op.Change)
	if err != nil {
		return fmt.Errorf("failed to encode change of %s: %w", op.Change.Key(), err)
	}

	_, err = r.execRetrying(ctx, insertPendingOperation,
		op.ID,
		op.Change.RecordType,
		op.Change.RecordID,
		string(change),
		op.AttemptCount,
		op.LastError,
		op.EnqueuedAt.UTC().UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateQueueEntry, op.ID)
		}
		log.Err(err).
			Str("func", "pendingQueueRepository.Enqueue").
			Str("id", op.ID).
			Str("record", op.Change.Key()).
			Msg("failed to insert pending operation")
		return fmt.Errorf("%w: enqueue %s: %w", ErrExecutingStatement, op.ID, err)
	}

	return nil
}

func (r *pendingQueueRepository) List(ctx context.Context) ([]models.PendingOperation, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPendingOperations)
	if err != nil {
		log.Err(err).Str("func", "pendingQueueRepository.List").Msg("failed to query pending operations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ops []models.PendingOperation
	for rows.Next() {
		var (
			op         models.PendingOperation
			change     string
			enqueuedAt int64
		)
		if err := rows.Scan(&op.ID, &change, &op.AttemptCount, &op.LastError, &enqueuedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := json.Unmarshal([]byte(change), &op.Change); err != nil {
			log.Err(err).
				Str("func", "pendingQueueRepository.List").
				Str("id", op.ID).
				Msg("failed to decode queued change")
			return nil, fmt.Errorf("%w: pending operation %s: %w", ErrCorruptedEntry, op.ID, err)
		}
		op.EnqueuedAt = time.Unix(0, enqueuedAt).UTC()
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ops, nil
}

// Remove deletes the given operations. Unknown ids are ignored.
func (r *pendingQueueRepository) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Delete("pending_operations").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.execRetrying(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "pendingQueueRepository.Remove").
			Strs("ids", ids).
			Msg("failed to delete pending operations")
		return fmt.Errorf("%w: remove: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *pendingQueueRepository) MarkAttempt(ctx context.Context, id string, lastErr string) error {
	res, err := r.execRetrying(ctx, markPendingOperationAttempt, lastErr, id)
	if err != nil {
		return fmt.Errorf("%w: mark attempt %s: %w", ErrExecutingStatement, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrQueueEntryNotFound, id)
	}
	return nil
}

func (r *pendingQueueRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, countPendingOperations).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}
