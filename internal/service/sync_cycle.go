package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
	"github.com/sethvargo/go-retry"
)

// opGroup is every queued operation of one record, folded into one change.
type opGroup struct {
	key    string
	change models.SyncChange
	ids    []string
}

// drainOutcome is what the drain step leaves for the rest of the cycle.
type drainOutcome struct {
	pushed   int
	failures []models.RecordFailure
	// pushedKeys are the records pushed by the drain
	pushedKeys map[string]bool

	// local holds every local change known at the start of the cycle, pushed
	// or not; remaining holds the groups still queued after the drain.
	local     map[string]models.SyncChange
	remaining map[string]opGroup
}

func (s *syncService) SyncInventory(ctx context.Context) (models.SyncResult, error) {
	if !s.cycle.TryLock() {
		return models.SyncResult{}, ErrSyncInProgress
	}
	defer s.cycle.Unlock()
	defer s.stopWatchingLate()

	log := s.logger.With().
		Str("cycle", s.deps.IDs.Generate()).
		Str("trigger", utils.TriggerFromContext(ctx)).
		Logger()
	ctx = log.WithContext(ctx)

	s.setStatus(models.SyncStatusSyncing, nil)
	log.Info().Str("func", "syncService.SyncInventory").Msg("sync cycle started")

	result := models.SyncResult{StartedAt: s.deps.Clock.Now().UTC()}
	err := s.runCycle(ctx, &result)
	result.FinishedAt = s.deps.Clock.Now().UTC()

	s.finishCycle(ctx, result, err)
	return result, err
}

func (s *syncService) runCycle(ctx context.Context, result *models.SyncResult) error {
	// auth
	if err := s.checkAuth(ctx); err != nil {
		return err
	}

	// 1. drain queue
	if err := checkpoint(ctx, StepDrain); err != nil {
		return err
	}
	drained, err := s.drain(ctx)
	result.PushedCount += drained.pushed
	result.Failures = append(result.Failures, drained.failures...)
	if err != nil {
		return err
	}

	// 2. pull deltas
	if err = checkpoint(ctx, StepPull); err != nil {
		return err
	}
	pulled, newest, err := s.pull(ctx)
	if err != nil {
		return err
	}

	// 3-5. classify, resolve and apply
	resolved, err := s.applyRemote(ctx, pulled, drained, result)
	if err != nil {
		return err
	}
	if err = s.pushResolved(ctx, resolved, drained, result); err != nil {
		return err
	}

	// 6. advance the watermark
	if err = checkpoint(ctx, StepWatermark); err != nil {
		return err
	}
	if !newest.IsZero() {
		if err = s.deps.State.SetWatermark(ctx, newest); err != nil {
			return &SyncError{Step: StepWatermark, Err: err}
		}
	}
	return nil
}

func (s *syncService) checkAuth(ctx context.Context) error {
	var status models.AuthStatus
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		var err error
		status, err = s.deps.Remote.AuthStatus(ctx)
		if adapter.IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return &SyncError{Step: StepAuth, Err: mapAdapterError(err)}
	}
	if status != models.AuthAvailable {
		return &SyncError{Step: StepAuth, Err: fmt.Errorf("%w: account is %s", ErrAuthenticationRequired, status)}
	}
	return nil
}

func (s *syncService) ProcessPendingQueue(ctx context.Context) (int, error) {
	if !s.cycle.TryLock() {
		return 0, ErrSyncInProgress
	}
	defer s.cycle.Unlock()
	defer s.stopWatchingLate()

	s.setStatus(models.SyncStatusSyncing, nil)
	out, err := s.drain(ctx)
	s.publishQueueDepth(context.WithoutCancel(ctx))

	if err != nil {
		s.setStatus(models.SyncStatusError, err)
		return out.pushed, err
	}
	s.setStatus(models.SyncStatusIdle, nil)

	s.logger.Info().Str("func", "syncService.ProcessPendingQueue").
		Int("pushed", out.pushed).Int("failed", len(out.failures)).Int("still_queued", len(out.remaining)).
		Msg("pending queue processed")
	return out.pushed, nil
}

// drain pushes the queued operations. Transient failures are retried with
// backoff within the cycle's attempt budget and stay queued once it is spent;
// terminal per-record failures are dropped and reported; a terminal-global
// failure stops the drain and is returned.
func (s *syncService) drain(ctx context.Context) (drainOutcome, error) {
	log := logger.FromContext(ctx)
	out := drainOutcome{
		pushedKeys: make(map[string]bool),
		local:      make(map[string]models.SyncChange),
		remaining:  make(map[string]opGroup),
	}

	// from here on local writes are reported to the cycle through s.late
	s.writes.Lock()
	ops, err := s.deps.Queue.List(ctx)
	if err == nil {
		s.watchLate()
	}
	s.writes.Unlock()
	if err != nil {
		return out, &SyncError{Step: StepDrain, Err: fmt.Errorf("%w: %w", ErrQueueUnavailable, err)}
	}

	pending := groupPending(ops)
	for _, g := range pending {
		out.local[g.key] = g.change
	}

	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		changes := make([]models.SyncChange, len(pending))
		for i, g := range pending {
			changes[i] = g.change
		}
		errs, aborted := s.pushAll(ctx, changes)

		var (
			retryLater []opGroup
			done       []string
		)
		for i, g := range pending {
			switch err := errs[i]; {
			case err == nil:
				done = append(done, g.ids...)
				out.pushed++
				out.pushedKeys[g.key] = true
			case adapter.IsTerminalRecord(err):
				done = append(done, g.ids...)
				out.failures = append(out.failures, models.RecordFailure{RecordID: g.change.RecordID, Err: err})
				log.Warn().Err(err).Str("func", "syncService.drain").Str("record", g.key).
					Msg("remote rejected queued change, dropping it")
			case adapter.IsTransient(err):
				s.markAttempt(ctx, g, err)
				retryLater = append(retryLater, g)
			default:
				// not attempted: the batch was aborted or the cycle cancelled
				out.remaining[g.key] = g
			}
		}

		if err := s.deps.Queue.Remove(ctx, done...); err != nil {
			return fmt.Errorf("%w: %w", ErrQueueUnavailable, err)
		}

		pending = retryLater
		if aborted != nil {
			return mapAdapterError(aborted)
		}
		if len(pending) > 0 {
			return retry.RetryableError(fmt.Errorf("%w: %d changes still queued", ErrRemoteUnavailable, len(pending)))
		}
		return nil
	})

	for _, g := range pending {
		out.remaining[g.key] = g
	}

	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, ErrRemoteUnavailable):
		// attempt budget spent; the next cycle picks these up again
		log.Warn().Err(err).Str("func", "syncService.drain").Msg("leaving changes queued for the next cycle")
		return out, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return out, &SyncError{Step: StepDrain, Err: fmt.Errorf("%w: %w", ErrSyncCancelled, err)}
	default:
		return out, &SyncError{Step: StepDrain, Err: err}
	}
}

func (s *syncService) markAttempt(ctx context.Context, g opGroup, cause error) {
	for _, id := range g.ids {
		if err := s.deps.Queue.MarkAttempt(ctx, id, cause.Error()); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "syncService.markAttempt").
				Str("id", id).Msg("failed to record push attempt")
		}
	}
}

// pull fetches the remote changes since the watermark, folds them per record
// and returns them oldest first together with the newest timestamp seen.
func (s *syncService) pull(ctx context.Context) ([]models.SyncChange, time.Time, error) {
	since, ok, err := s.deps.State.Watermark(ctx)
	if err != nil {
		return nil, time.Time{}, &SyncError{Step: StepPull, Err: fmt.Errorf("load watermark: %w", err)}
	}
	if !ok {
		since = time.Time{}
	}

	var pulled []models.SyncChange
	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		var err error
		pulled, err = s.deps.Remote.Pull(ctx, since)
		if adapter.IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, time.Time{}, &SyncError{Step: StepPull, Err: mapAdapterError(err)}
	}

	var newest time.Time
	for _, c := range pulled {
		if c.Timestamp.After(newest) {
			newest = c.Timestamp
		}
	}
	return foldByRecord(pulled), newest, nil
}

// resolvedBatch is what the apply phase leaves for the push-back.
type resolvedBatch struct {
	repush []models.SyncChange
	// superseded are queued operations replaced by a resolution
	superseded []string
}

// applyRemote classifies the pulled changes against every local change of the
// cycle, resolves the conflicts and writes the results locally. It holds
// s.writes throughout, so local changes recorded meanwhile either reach the
// classification through s.late or land after the remote values.
func (s *syncService) applyRemote(ctx context.Context, pulled []models.SyncChange, drained drainOutcome, result *models.SyncResult) (resolvedBatch, error) {
	log := logger.FromContext(ctx)

	s.writes.Lock()
	defer s.writes.Unlock()

	local, queued := s.takeLate(drained)

	var (
		conflicts []models.SyncConflict
		plain     []models.SyncChange
		echoes    int
	)
	for _, rc := range pulled {
		lc, ok := local[rc.Key()]
		switch {
		case !ok:
			plain = append(plain, rc)
		case lc.IsEcho(rc):
			echoes++
		default:
			c, err := models.NewSyncConflict(lc, rc)
			if err != nil {
				return resolvedBatch{}, &SyncError{Step: StepResolve, Err: err}
			}
			conflicts = append(conflicts, c)
		}
	}
	log.Debug().Str("func", "syncService.applyRemote").
		Int("pulled", len(pulled)).Int("conflicts", len(conflicts)).Int("echoes", echoes).
		Msg("remote changes classified")

	resolved, err := s.resolveConflicts(ctx, conflicts, queued, result)
	if err != nil {
		return resolved, err
	}

	// remaining remote changes, one committed write at a time
	for _, rc := range plain {
		if err = checkpoint(ctx, StepApply); err != nil {
			return resolved, err
		}
		if err = s.applyLocal(ctx, rc); err != nil {
			return resolved, &SyncError{Step: StepApply, Err: err}
		}
		result.PulledCount++
	}
	return resolved, nil
}

// takeLate folds the late operations into the drained view of the queue and
// empties s.late. The caller holds s.writes.
func (s *syncService) takeLate(drained drainOutcome) (map[string]models.SyncChange, map[string]opGroup) {
	if len(s.late) == 0 {
		return drained.local, drained.remaining
	}

	local := maps.Clone(drained.local)
	queued := maps.Clone(drained.remaining)
	for k, g := range s.late {
		change := g.change
		if lc, ok := local[k]; ok {
			if folded, err := models.Coalesce(lc, g.change); err == nil {
				change = folded
			}
		}
		local[k] = change

		q := queued[k]
		q.key = k
		q.change = change
		q.ids = append(slices.Clone(q.ids), g.ids...)
		queued[k] = q
	}
	s.late = make(map[string]opGroup)
	return local, queued
}

// resolveConflicts resolves the whole batch at once and writes every winner
// locally. Winners are pushed back unless the remote side won; queued
// operations of resolved records are superseded by the resolution.
func (s *syncService) resolveConflicts(ctx context.Context, conflicts []models.SyncConflict, queued map[string]opGroup, result *models.SyncResult) (resolvedBatch, error) {
	var out resolvedBatch
	if len(conflicts) == 0 {
		return out, nil
	}
	if err := checkpoint(ctx, StepResolve); err != nil {
		return out, err
	}
	log := logger.FromContext(ctx)

	resolutions := s.deps.Resolver.Resolve(ctx, conflicts)
	if len(resolutions) != len(conflicts) {
		log.Error().Str("func", "syncService.resolveConflicts").
			Int("conflicts", len(conflicts)).Int("resolutions", len(resolutions)).
			Msg("resolver returned a mismatched batch, keeping local changes")
		resolutions = nil
	}

	for i, c := range conflicts {
		res := models.UseLocal(c)
		if resolutions != nil {
			if err := resolutions[i].Validate(); err == nil && resolutions[i].RecordID == c.RecordID {
				res = resolutions[i]
			} else {
				log.Warn().Err(err).Str("func", "syncService.resolveConflicts").
					Str("record", c.LocalChange.Key()).Msg("invalid resolution, keeping local change")
			}
		}

		if err := checkpoint(ctx, StepResolve); err != nil {
			return out, err
		}
		winner := res.Winner()
		if err := s.applyLocal(ctx, winner); err != nil {
			return out, &SyncError{Step: StepResolve, Err: err}
		}
		if res.Strategy != models.StrategyUseRemote {
			out.repush = append(out.repush, winner)
		}
		if g, ok := queued[c.LocalChange.Key()]; ok {
			out.superseded = append(out.superseded, g.ids...)
		}
		result.ConflictsResolved++
		if res.Strategy != models.StrategyUseLocal {
			result.PulledCount++
		}
	}
	return out, nil
}

// pushResolved pushes the resolution winners back. Winners that could not be
// pushed for a transient reason are queued again; the superseded operations
// are removed afterwards.
func (s *syncService) pushResolved(ctx context.Context, resolved resolvedBatch, drained drainOutcome, result *models.SyncResult) error {
	if len(resolved.repush) == 0 && len(resolved.superseded) == 0 {
		return nil
	}

	errs, aborted := s.pushAll(ctx, resolved.repush)
	for i, err := range errs {
		change := resolved.repush[i]
		switch {
		case err == nil:
			// a record is counted once per cycle
			if !drained.pushedKeys[change.Key()] {
				result.PushedCount++
			}
		case adapter.IsTerminalRecord(err):
			result.Failures = append(result.Failures, models.RecordFailure{RecordID: change.RecordID, Err: err})
		default:
			// keep the resolved change for the next cycle
			if _, qerr := s.enqueue(context.WithoutCancel(ctx), change); qerr != nil {
				return &SyncError{Step: StepResolve, Err: qerr}
			}
		}
	}

	if err := s.deps.Queue.Remove(ctx, resolved.superseded...); err != nil {
		return &SyncError{Step: StepResolve, Err: fmt.Errorf("%w: %w", ErrQueueUnavailable, err)}
	}
	if aborted != nil {
		return &SyncError{Step: StepResolve, Err: mapAdapterError(aborted)}
	}
	return nil
}

// pushAll pushes changes one batch per record type and returns one error slot
// per change. Once a batch is aborted the remaining types are not attempted
// and their slots carry the aborting error.
func (s *syncService) pushAll(ctx context.Context, changes []models.SyncChange) ([]error, error) {
	errs := make([]error, len(changes))
	if len(changes) == 0 {
		return errs, nil
	}

	var types []string
	byType := make(map[string][]int)
	for i, c := range changes {
		if _, ok := byType[c.RecordType]; !ok {
			types = append(types, c.RecordType)
		}
		byType[c.RecordType] = append(byType[c.RecordType], i)
	}

	var aborted error
	for _, t := range types {
		idxs := byType[t]
		if aborted != nil {
			for _, i := range idxs {
				errs[i] = aborted
			}
			continue
		}

		batch := make([]models.SyncChange, len(idxs))
		for j, i := range idxs {
			batch[j] = changes[i]
		}
		res := s.deps.Remote.PushBatch(ctx, batch)

		succeeded := make(map[string]bool, len(res.Succeeded))
		for _, id := range res.Succeeded {
			succeeded[id] = true
		}
		failed := make(map[string]error, len(res.Failed))
		for _, f := range res.Failed {
			failed[f.RecordID] = f.Err
		}
		for _, i := range idxs {
			id := changes[i].RecordID
			switch {
			case failed[id] != nil:
				errs[i] = failed[id]
			case !succeeded[id]:
				errs[i] = fmt.Errorf("%w: no push result for %s", adapter.ErrRemoteUnavailable, changes[i].Key())
			}
		}
		aborted = res.Aborted
	}
	return errs, aborted
}

func (s *syncService) applyLocal(ctx context.Context, change models.SyncChange) error {
	if err := s.deps.Local.ApplyChange(ctx, change); err != nil {
		return fmt.Errorf("%w: apply %s: %w", ErrLocalStore, change.Key(), err)
	}
	s.invalidate(change)
	return nil
}

func (s *syncService) finishCycle(ctx context.Context, result models.SyncResult, err error) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	entry := models.SyncHistoryEntry{
		StartedAt:         result.StartedAt,
		FinishedAt:        result.FinishedAt,
		Success:           err == nil,
		PushedCount:       result.PushedCount,
		PulledCount:       result.PulledCount,
		ConflictsResolved: result.ConflictsResolved,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if herr := s.deps.History.Record(ctx, entry); herr != nil {
		log.Warn().Err(herr).Str("func", "syncService.finishCycle").Msg("failed to record sync history")
	}

	s.deps.Analytics.ObserveCycle(result, err)
	s.publishQueueDepth(ctx)

	if err != nil {
		s.setStatus(models.SyncStatusError, err)
		log.Err(err).Str("func", "syncService.SyncInventory").
			Int("pushed", result.PushedCount).Int("pulled", result.PulledCount).
			Msg("sync cycle failed")
		return
	}

	s.setStatus(models.SyncStatusIdle, nil)
	for _, f := range result.Failures {
		log.Warn().Err(f.Err).Str("func", "syncService.SyncInventory").Str("record_id", f.RecordID).
			Msg("record failed during sync")
	}
	if nerr := s.deps.Notifier.NotifySyncResult(ctx, result); nerr != nil {
		log.Warn().Err(nerr).Str("func", "syncService.finishCycle").Msg("failed to deliver sync notification")
	}
	log.Info().Str("func", "syncService.SyncInventory").
		Int("pushed", result.PushedCount).
		Int("pulled", result.PulledCount).
		Int("conflicts_resolved", result.ConflictsResolved).
		Dur("duration", result.Duration()).
		Msg("sync cycle completed")
}

// backoff is the per-cycle retry policy: MaxAttempts tries in total, waits
// doubling from BaseBackoff and capped at MaxBackoff.
func (s *syncService) backoff() retry.Backoff {
	base := s.cfg.BaseBackoff
	if base <= 0 {
		base = time.Millisecond
	}
	attempts := max(s.cfg.MaxAttempts, 1)

	b := retry.NewExponential(base)
	if s.cfg.MaxBackoff > 0 {
		b = retry.WithCappedDuration(s.cfg.MaxBackoff, b)
	}
	return retry.WithMaxRetries(uint64(attempts-1), b)
}

// checkpoint is called between steps and before every local write. A
// cancelled cycle stops there; the cause (e.g. an expired background task)
// stays in the error chain.
func checkpoint(ctx context.Context, step string) error {
	if ctx.Err() == nil {
		return nil
	}
	return &SyncError{Step: step, Err: fmt.Errorf("%w: %w", ErrSyncCancelled, context.Cause(ctx))}
}

// groupPending folds queued operations per record, keeping the order in which
// records first appear in the queue.
func groupPending(ops []models.PendingOperation) []opGroup {
	idx := make(map[string]int)
	var (
		groups  []opGroup
		changes [][]models.SyncChange
	)
	for _, op := range ops {
		k := op.Change.Key()
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, opGroup{key: k})
			changes = append(changes, nil)
		}
		groups[i].ids = append(groups[i].ids, op.ID)
		changes[i] = append(changes[i], op.Change)
	}

	for i := range groups {
		folded, err := models.Coalesce(changes[i]...)
		if err != nil {
			// unreachable: every change in a group shares the key
			folded = changes[i][len(changes[i])-1]
		}
		groups[i].change = folded
	}
	return groups
}

// foldByRecord folds changes per record and orders the result by timestamp.
func foldByRecord(changes []models.SyncChange) []models.SyncChange {
	ops := make([]models.PendingOperation, len(changes))
	for i, c := range changes {
		ops[i] = models.PendingOperation{Change: c}
	}

	groups := groupPending(ops)
	out := make([]models.SyncChange, len(groups))
	for i, g := range groups {
		out[i] = g.change
	}
	slices.SortStableFunc(out, func(a, b models.SyncChange) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
