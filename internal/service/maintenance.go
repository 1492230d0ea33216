package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"k8s.io/utils/clock"
)

type maintenanceService struct {
	cache     RecordCache
	history   store.SyncHistoryRepository
	optimizer DatabaseOptimizer
	retention time.Duration
	clock     clock.PassiveClock
	logger    *logger.Logger
}

// NewMaintenanceService builds the cleanup job. History entries older than
// retention are pruned; a zero retention keeps the whole history.
func NewMaintenanceService(
	cache RecordCache,
	history store.SyncHistoryRepository,
	optimizer DatabaseOptimizer,
	retention time.Duration,
	clk clock.PassiveClock,
	log *logger.Logger,
) MaintenanceService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &maintenanceService{
		cache:     cache,
		history:   history,
		optimizer: optimizer,
		retention: retention,
		clock:     clk,
		logger:    log.WithComponent("maintenance"),
	}
}

// Cleanup empties the record cache, prunes old history and compacts the
// database. Every step runs even when an earlier one failed.
func (m *maintenanceService) Cleanup(ctx context.Context) error {
	m.cache.Clear()

	var errs []error
	if m.retention > 0 {
		cutoff := m.clock.Now().Add(-m.retention)
		n, err := m.history.Prune(ctx, cutoff)
		if err != nil {
			errs = append(errs, fmt.Errorf("prune history: %w", err))
		} else {
			m.logger.Debug().Str("func", "maintenanceService.Cleanup").
				Int64("pruned", n).Time("cutoff", cutoff).Msg("sync history pruned")
		}
	}

	if ctx.Err() != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrSyncCancelled, context.Cause(ctx)))
		return errors.Join(errs...)
	}
	if m.optimizer != nil {
		if err := m.optimizer.Optimize(ctx); err != nil {
			errs = append(errs, fmt.Errorf("optimize database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		m.logger.Err(err).Str("func", "maintenanceService.Cleanup").Msg("cleanup finished with errors")
		return err
	}
	m.logger.Info().Str("func", "maintenanceService.Cleanup").Msg("cleanup finished")
	return nil
}
