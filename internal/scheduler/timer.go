// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"k8s.io/utils/clock"
)

const (
	probeTimeout   = 5 * time.Second
	defaultRecheck = time.Minute
)

// TimerScheduler is an in-process [TaskScheduler]. Due requests are started
// by Run; each run gets a context that expires after the task deadline.
type TimerScheduler struct {
	clock      clock.WithDelayedExecution
	probe      ConnectivityProbe
	onPower    func() bool
	deadline   time.Duration
	recheck    time.Duration
	maxPending int

	mu       sync.Mutex
	handlers map[string]Handler
	pending  map[string]Request
	wake     chan struct{}

	stopMu sync.Mutex
	stop   context.CancelFunc
	done   chan struct{}

	logger *logger.Logger
}

type TimerOption func(*TimerScheduler)

// WithTimerClock replaces the real clock.
func WithTimerClock(c clock.WithDelayedExecution) TimerOption {
	return func(s *TimerScheduler) { s.clock = c }
}

// WithConnectivityProbe sets the probe consulted for network-constrained
// requests. Without one the network is assumed reachable.
func WithConnectivityProbe(p ConnectivityProbe) TimerOption {
	return func(s *TimerScheduler) { s.probe = p }
}

// WithPowerSource sets the check for requests that require external power.
func WithPowerSource(onPower func() bool) TimerOption {
	return func(s *TimerScheduler) { s.onPower = onPower }
}

func NewTimerScheduler(cfg config.Scheduler, log *logger.Logger, opts ...TimerOption) *TimerScheduler {
	s := &TimerScheduler{
		clock:      clock.RealClock{},
		onPower:    func() bool { return true },
		deadline:   cfg.TaskDeadline,
		recheck:    cfg.RecheckInterval,
		maxPending: cfg.MaxPending,
		handlers:   make(map[string]Handler),
		pending:    make(map[string]Request),
		wake:       make(chan struct{}, 1),
		logger:     log.WithComponent("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recheck <= 0 {
		s.recheck = defaultRecheck
	}
	return s
}

func (s *TimerScheduler) Register(jobID string, h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handlers[jobID]; ok {
		return fmt.Errorf("%w: %s", ErrJobAlreadyRegistered, jobID)
	}
	s.handlers[jobID] = h
	return nil
}

func (s *TimerScheduler) Submit(req Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handlers[req.JobID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, req.JobID)
	}
	if _, replacing := s.pending[req.JobID]; !replacing && s.maxPending > 0 && len(s.pending) >= s.maxPending {
		return ErrTooManyPendingRequests
	}
	s.pending[req.JobID] = req
	s.notify()
	return nil
}

func (s *TimerScheduler) Pending(jobID string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.pending[jobID]
	return req, ok
}

// Run starts due requests until ctx ends or Stop is called, then waits for
// the runs in flight.
func (s *TimerScheduler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.stopMu.Lock()
	s.stop, s.done = cancel, done
	s.stopMu.Unlock()

	var runs sync.WaitGroup
	defer func() {
		cancel()
		runs.Wait()
		close(done)
	}()

	s.logger.Info().Str("func", "TimerScheduler.Run").Msg("scheduler started")
	for ctx.Err() == nil {
		var timer clock.Timer
		next, ok := s.nextDue()
		if ok {
			wait := next.Sub(s.clock.Now())
			if wait <= 0 {
				s.dispatch(ctx, &runs)
				continue
			}
			timer = s.clock.NewTimer(wait)
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			s.logger.Info().Str("func", "TimerScheduler.Run").Msg("scheduler stopped")
		case <-s.wake:
			stopTimer(timer)
		case <-timerC(timer):
		}
	}
	return nil
}

func timerC(t clock.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C()
}

func stopTimer(t clock.Timer) {
	if t != nil {
		t.Stop()
	}
}

// Stop ends Run and waits for it to return. Calling Stop when Run is not
// active does nothing.
func (s *TimerScheduler) Stop() {
	s.stopMu.Lock()
	stop, done := s.stop, s.done
	s.stopMu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

func (s *TimerScheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *TimerScheduler) nextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next time.Time
		ok   bool
	)
	for _, req := range s.pending {
		if !ok || req.EarliestBegin.Before(next) {
			next, ok = req.EarliestBegin, true
		}
	}
	return next, ok
}

// dispatch starts every due request whose constraints hold and defers the
// others by the recheck interval.
func (s *TimerScheduler) dispatch(ctx context.Context, runs *sync.WaitGroup) {
	now := s.clock.Now()

	s.mu.Lock()
	var due []Request
	for id, req := range s.pending {
		if !req.EarliestBegin.After(now) {
			due = append(due, req)
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(due, func(a, b Request) int { return a.EarliestBegin.Compare(b.EarliestBegin) })

	for _, req := range due {
		if reason := s.unmet(ctx, req.Constraints); reason != "" {
			req.EarliestBegin = now.Add(s.recheck)
			s.logger.Info().Str("func", "TimerScheduler.dispatch").
				Str("job", req.JobID).Str("reason", reason).Time("retry_at", req.EarliestBegin).
				Msg("constraints not met, deferring job")
			s.requeue(req)
			continue
		}

		s.mu.Lock()
		h := s.handlers[req.JobID]
		s.mu.Unlock()

		runs.Add(1)
		go func() {
			defer runs.Done()
			s.run(ctx, req.JobID, h)
		}()
	}
}

// requeue puts a deferred request back unless a newer one was submitted
// meanwhile.
func (s *TimerScheduler) requeue(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[req.JobID]; !ok {
		s.pending[req.JobID] = req
	}
}

func (s *TimerScheduler) unmet(ctx context.Context, c Constraints) string {
	if c.RequiresExternalPower && !s.onPower() {
		return "no external power"
	}
	if c.RequiresNetwork && s.probe != nil {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := s.probe.Ping(pctx); err != nil {
			return "network unreachable: " + err.Error()
		}
	}
	return ""
}

func (s *TimerScheduler) run(ctx context.Context, jobID string, h Handler) {
	log := s.logger.With().Str("job", jobID).Logger()

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if s.deadline > 0 {
		expire := s.clock.AfterFunc(s.deadline, func() { cancel(ErrTaskExpired) })
		defer expire.Stop()
	}

	log.Debug().Str("func", "TimerScheduler.run").Msg("job started")
	start := s.clock.Now()
	if err := h(log.WithContext(runCtx)); err != nil {
		log.Warn().Err(err).Str("func", "TimerScheduler.run").Msg("job failed")
		return
	}
	log.Debug().Str("func", "TimerScheduler.run").Dur("took", s.clock.Since(start)).Msg("job finished")
}
