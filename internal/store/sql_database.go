package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/migrations"
	"github.com/sethvargo/go-retry"
)

const (
	busyRetries = 3
	busyBackoff = 50 * time.Millisecond
)

// DB is the SQLite handle shared by the queue, state and history repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Optimize compacts the database file and refreshes query planner statistics.
func (db *DB) Optimize(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("%w: vacuum: %w", ErrExecutingStatement, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("%w: optimize: %w", ErrExecutingStatement, err)
	}
	db.logger.Debug().Str("func", "DB.Optimize").Msg("database optimized")
	return nil
}

// Retryable reports whether a failed statement may succeed if run again.
func (db *DB) Retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// execRetrying runs a statement, retrying a few times while SQLite reports the
// database busy or locked.
func (db *DB) execRetrying(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	b := retry.WithMaxRetries(busyRetries, retry.NewConstant(busyBackoff))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		res, err = db.ExecContext(ctx, query, args...)
		if err != nil && db.Retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	return res, err
}
