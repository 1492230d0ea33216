// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type countingWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *countingWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorkers(w1, w2, w3).Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWorkers_Run_FailureStopsOthers(t *testing.T) {
	boom := errors.New("boom")
	steady := &countingWorker{}

	err := NewWorkers(steady, &countingWorker{err: boom}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, steady.runCount.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}

// ── ForEach ──

func TestForEach_PerItemErrors(t *testing.T) {
	bad := errors.New("rejected")

	errs := ForEach(context.Background(), 3, 10, func(_ context.Context, i int) error {
		if i == 2 || i == 7 {
			return bad
		}
		return nil
	}, nil)

	require.Len(t, errs, 10)
	for i, err := range errs {
		if i == 2 || i == 7 {
			assert.ErrorIs(t, err, bad)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestForEach_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	ForEach(context.Background(), 2, 12, func(context.Context, int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}, nil)

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestForEach_StopSkipsRemaining(t *testing.T) {
	quota := errors.New("quota exceeded")
	var started atomic.Int32

	errs := ForEach(context.Background(), 1, 6, func(_ context.Context, i int) error {
		started.Add(1)
		if i == 2 {
			return quota
		}
		return nil
	}, func(err error) bool { return errors.Is(err, quota) })

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.ErrorIs(t, errs[2], quota)
	for _, err := range errs[3:] {
		assert.ErrorIs(t, err, ErrSkipped)
		assert.ErrorIs(t, err, quota)
	}
	assert.EqualValues(t, 3, started.Load())
}

func TestForEach_StopDoesNotCancelRunningItems(t *testing.T) {
	quota := errors.New("quota exceeded")
	stopped := make(chan struct{})

	errs := ForEach(context.Background(), 2, 2, func(ctx context.Context, i int) error {
		if i == 1 {
			defer close(stopped)
			return quota
		}
		<-stopped
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, func(err error) bool { return errors.Is(err, quota) })

	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], quota)
}

func TestForEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := ForEach(ctx, 4, 3, func(context.Context, int) error {
		t.Fatal("must not run")
		return nil
	}, nil)

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrSkipped)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
