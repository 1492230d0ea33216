// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/notify"
	"github.com/MKhiriev/go-inventory-sync/internal/resolver"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
	"k8s.io/utils/clock"
)

// SyncDependencies are the collaborators of the orchestrator. Clock and IDs
// default to the real clock and UUIDv7 identifiers; the rest are required.
type SyncDependencies struct {
	Queue   store.PendingQueueRepository
	State   store.SyncStateRepository
	History store.SyncHistoryRepository
	Local   store.RecordStore

	Remote   adapter.RemoteStore
	Resolver resolver.Resolver
	Cache    RecordCache

	Notifier  notify.Notifier
	Analytics Analytics

	Clock clock.PassiveClock
	IDs   IDGenerator
}

type syncService struct {
	deps SyncDependencies
	cfg  config.Sync

	// cycle is held for the whole of a cycle or a queue flush
	cycle sync.Mutex

	// writes orders local writes against the apply phase of a cycle
	writes sync.Mutex
	// late holds changes queued after the running cycle read the queue,
	// folded per record; nil when no cycle is watching.
	late map[string]opGroup

	mu      sync.RWMutex
	status  models.SyncStatus
	lastErr error

	logger *logger.Logger
}

// NewSyncService builds the orchestrator.
func NewSyncService(deps SyncDependencies, cfg config.Sync, log *logger.Logger) SyncService {
	if deps.Clock == nil {
		deps.Clock = clock.RealClock{}
	}
	if deps.IDs == nil {
		deps.IDs = utils.NewUUIDGenerator()
	}
	return &syncService{
		deps:   deps,
		cfg:    cfg,
		status: models.SyncStatusIdle,
		logger: log.WithComponent("sync"),
	}
}

func (s *syncService) QueueForSync(ctx context.Context, change models.SyncChange) (bool, error) {
	if err := change.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}

	s.writes.Lock()
	op, err := s.enqueue(ctx, change)
	if err == nil {
		s.noteLate(op)
	}
	s.writes.Unlock()
	if err != nil {
		return false, err
	}

	s.publishQueueDepth(ctx)
	return true, nil
}

func (s *syncService) RecordLocalChange(ctx context.Context, change models.SyncChange) error {
	if err := change.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}

	s.writes.Lock()
	err := s.recordLocked(ctx, change)
	s.writes.Unlock()
	if err != nil {
		return err
	}

	s.publishQueueDepth(ctx)
	return nil
}

// recordLocked writes the change locally and queues it. The caller holds
// s.writes.
func (s *syncService) recordLocked(ctx context.Context, change models.SyncChange) error {
	if err := s.deps.Local.ApplyChange(ctx, change); err != nil {
		return fmt.Errorf("%w: apply %s: %w", ErrLocalStore, change.Key(), err)
	}
	s.invalidate(change)

	op, err := s.enqueue(ctx, change)
	if err != nil {
		return err
	}
	s.noteLate(op)
	return nil
}

func (s *syncService) enqueue(ctx context.Context, change models.SyncChange) (models.PendingOperation, error) {
	op := models.PendingOperation{
		ID:         s.deps.IDs.Generate(),
		Change:     change,
		EnqueuedAt: s.deps.Clock.Now().UTC(),
	}
	if err := s.deps.Queue.Enqueue(ctx, op); err != nil {
		s.logger.Err(err).Str("func", "syncService.enqueue").
			Str("record", change.Key()).Msg("failed to persist pending operation")
		return op, fmt.Errorf("%w: %w", ErrQueueUnavailable, err)
	}

	s.logger.Debug().Str("func", "syncService.enqueue").
		Str("id", op.ID).Str("record", change.Key()).Msg("change queued")
	return op, nil
}

// noteLate hands an operation queued mid-cycle to the running cycle. The
// caller holds s.writes.
func (s *syncService) noteLate(op models.PendingOperation) {
	if s.late == nil {
		return
	}
	k := op.Change.Key()
	g := s.late[k]
	g.key = k
	g.ids = append(g.ids, op.ID)
	g.change = op.Change
	if len(g.ids) > 1 {
		if folded, err := models.Coalesce(s.late[k].change, op.Change); err == nil {
			g.change = folded
		}
	}
	s.late[k] = g
}

// watchLate starts collecting late operations for the running cycle. The
// caller holds s.writes.
func (s *syncService) watchLate() {
	s.late = make(map[string]opGroup)
}

func (s *syncService) stopWatchingLate() {
	s.writes.Lock()
	s.late = nil
	s.writes.Unlock()
}

func (s *syncService) CacheStatistics() models.CacheStatistics {
	return s.deps.Cache.Stats()
}

func (s *syncService) ClearCache() {
	s.deps.Cache.Clear()
	s.logger.Info().Str("func", "syncService.ClearCache").Msg("cache cleared")
}

func (s *syncService) Records(ctx context.Context, recordType string) ([]models.Record, error) {
	key := listingKey(recordType)
	if recs, ok := s.deps.Cache.Get(key); ok {
		return recs, nil
	}

	recs, err := s.deps.Local.FetchRecords(ctx, recordType)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrLocalStore, recordType, err)
	}
	s.deps.Cache.Set(key, recs)
	return recs, nil
}

func (s *syncService) Record(ctx context.Context, recordType, recordID string) (models.Record, error) {
	key := recordCacheKey(recordType, recordID)
	if recs, ok := s.deps.Cache.Get(key); ok && len(recs) == 1 {
		return recs[0], nil
	}

	rec, err := s.deps.Local.Record(ctx, recordType, recordID)
	if err != nil {
		return models.Record{}, err
	}
	s.deps.Cache.Set(key, []models.Record{rec})
	return rec, nil
}

func (s *syncService) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *syncService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *syncService) LastSyncDate(ctx context.Context) (time.Time, bool, error) {
	stats, err := s.deps.History.Statistics(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if stats.LastSuccessfulSync == nil {
		return time.Time{}, false, nil
	}
	return *stats.LastSuccessfulSync, true, nil
}

func (s *syncService) PendingOperations(ctx context.Context) ([]models.PendingOperation, error) {
	ops, err := s.deps.Queue.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueueUnavailable, err)
	}
	return ops, nil
}

func (s *syncService) Statistics(ctx context.Context) (models.SyncStatistics, error) {
	return s.deps.History.Statistics(ctx)
}

func (s *syncService) ResetSyncState(ctx context.Context) error {
	if !s.cycle.TryLock() {
		return ErrSyncInProgress
	}
	defer s.cycle.Unlock()

	if err := s.deps.State.ResetWatermark(ctx); err != nil {
		return fmt.Errorf("reset watermark: %w", err)
	}
	s.deps.Cache.Clear()

	s.mu.Lock()
	s.status, s.lastErr = models.SyncStatusIdle, nil
	s.mu.Unlock()

	s.logger.Info().Str("func", "syncService.ResetSyncState").Msg("sync state reset, next cycle pulls everything")
	return nil
}

// invalidate drops the cached listing of the change's type and the cached
// copy of the record itself.
func (s *syncService) invalidate(change models.SyncChange) {
	s.deps.Cache.Remove(listingKey(change.RecordType))
	s.deps.Cache.Remove(recordCacheKey(change.RecordType, change.RecordID))
}

// Listings and single records share the cache under distinct prefixes.
func listingKey(recordType string) string {
	return "type:" + recordType
}

func recordCacheKey(recordType, recordID string) string {
	return "record:" + models.RecordKey(recordType, recordID)
}

func (s *syncService) publishQueueDepth(ctx context.Context) {
	n, err := s.deps.Queue.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "syncService.publishQueueDepth").Msg("failed to count pending operations")
		return
	}
	s.deps.Analytics.SetPendingOperations(n)
}

func (s *syncService) setStatus(status models.SyncStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.lastErr = status, err
}
