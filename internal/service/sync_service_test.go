package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	testclock "k8s.io/utils/clock/testing"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/mock"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// stubResolver возвращает заранее заданные решения, без mockgen.
type stubResolver struct {
	out []models.ConflictResolution
}

func (r stubResolver) Resolve(context.Context, []models.SyncConflict) []models.ConflictResolution {
	return r.out
}

type mocks struct {
	queue     *mock.MockPendingQueueRepository
	state     *mock.MockSyncStateRepository
	history   *mock.MockSyncHistoryRepository
	local     *mock.MockRecordStore
	remote    *mock.MockRemoteStore
	cache     *mock.MockRecordCache
	notifier  *mock.MockNotifier
	analytics *mock.MockAnalytics
	ids       *mock.MockIDGenerator
}

func newMockedService(t *testing.T, res stubResolver) (*syncService, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		queue:     mock.NewMockPendingQueueRepository(ctrl),
		state:     mock.NewMockSyncStateRepository(ctrl),
		history:   mock.NewMockSyncHistoryRepository(ctrl),
		local:     mock.NewMockRecordStore(ctrl),
		remote:    mock.NewMockRemoteStore(ctrl),
		cache:     mock.NewMockRecordCache(ctrl),
		notifier:  mock.NewMockNotifier(ctrl),
		analytics: mock.NewMockAnalytics(ctrl),
		ids:       mock.NewMockIDGenerator(ctrl),
	}
	svc := NewSyncService(SyncDependencies{
		Queue:     m.queue,
		State:     m.state,
		History:   m.history,
		Local:     m.local,
		Remote:    m.remote,
		Resolver:  res,
		Cache:     m.cache,
		Notifier:  m.notifier,
		Analytics: m.analytics,
		Clock:     testclock.NewFakePassiveClock(t0),
		IDs:       m.ids,
	}, testSyncConfig(), logger.Nop()).(*syncService)
	return svc, m
}

// expectFinish covers the bookkeeping every cycle does on its way out.
func (m mocks) expectFinish(success bool) {
	m.history.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.SyncHistoryEntry) error {
			if e.Success != success {
				return errors.New("unexpected history outcome")
			}
			return nil
		})
	m.analytics.EXPECT().ObserveCycle(gomock.Any(), gomock.Any())
	m.queue.EXPECT().Count(gomock.Any()).Return(0, nil)
	m.analytics.EXPECT().SetPendingOperations(0)
	if success {
		m.notifier.EXPECT().NotifySyncResult(gomock.Any(), gomock.Any()).Return(nil)
	}
}

// ── QueueForSync ──────────────────────────────────────────────────────────────

func TestQueueForSync(t *testing.T) {
	ctx := context.Background()
	change := item("1", t0, 3)

	t.Run("persisted", func(t *testing.T) {
		svc, m := newMockedService(t, stubResolver{})
		m.ids.EXPECT().Generate().Return("op-1")
		m.queue.EXPECT().Enqueue(ctx, models.PendingOperation{ID: "op-1", Change: change, EnqueuedAt: t0})
		m.queue.EXPECT().Count(ctx).Return(1, nil)
		m.analytics.EXPECT().SetPendingOperations(1)

		ok, err := svc.QueueForSync(ctx, change)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("invalid change", func(t *testing.T) {
		svc, _ := newMockedService(t, stubResolver{})
		ok, err := svc.QueueForSync(ctx, models.SyncChange{RecordType: "item"})
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInvalidChange)
		assert.ErrorIs(t, err, models.ErrInvalidChange)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, m := newMockedService(t, stubResolver{})
		m.ids.EXPECT().Generate().Return("op-1")
		m.queue.EXPECT().Enqueue(ctx, gomock.Any()).Return(store.ErrExecutingStatement)

		ok, err := svc.QueueForSync(ctx, change)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrQueueUnavailable)
		assert.ErrorIs(t, err, store.ErrExecutingStatement)
	})
}

func TestRecordLocalChange_LocalFailureQueuesNothing(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	m.local.EXPECT().ApplyChange(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	err := svc.RecordLocalChange(context.Background(), item("1", t0, 1))
	assert.ErrorIs(t, err, ErrLocalStore)
}

// ── reads ─────────────────────────────────────────────────────────────────────

func TestRecords_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	recs := []models.Record{{ID: "1", Type: "item"}}

	t.Run("miss", func(t *testing.T) {
		svc, m := newMockedService(t, stubResolver{})
		m.cache.EXPECT().Get("type:item").Return(nil, false)
		m.local.EXPECT().FetchRecords(ctx, "item").Return(recs, nil)
		m.cache.EXPECT().Set("type:item", recs)

		got, err := svc.Records(ctx, "item")
		require.NoError(t, err)
		assert.Equal(t, recs, got)
	})

	t.Run("hit", func(t *testing.T) {
		svc, m := newMockedService(t, stubResolver{})
		m.cache.EXPECT().Get("type:item").Return(recs, true)

		got, err := svc.Records(ctx, "item")
		require.NoError(t, err)
		assert.Equal(t, recs, got)
	})

	t.Run("unknown record is not cached", func(t *testing.T) {
		svc, m := newMockedService(t, stubResolver{})
		m.cache.EXPECT().Get("record:item/9").Return(nil, false)
		m.local.EXPECT().Record(ctx, "item", "9").Return(models.Record{}, store.ErrRecordNotFound)

		_, err := svc.Record(ctx, "item", "9")
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
	})
}

func TestCacheStatisticsAndClear(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	stats := models.CacheStatistics{Name: "records", Entries: 3, Hits: 1}
	m.cache.EXPECT().Stats().Return(stats)
	m.cache.EXPECT().Clear()

	assert.Equal(t, stats, svc.CacheStatistics())
	svc.ClearCache()
}

func TestLastSyncDate_NeverSynced(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	m.history.EXPECT().Statistics(gomock.Any()).Return(models.SyncStatistics{}, nil)

	_, ok, err := svc.LastSyncDate(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

// ── cycle ─────────────────────────────────────────────────────────────────────

func TestSyncInventory_AlreadyCancelled(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.ids.EXPECT().Generate().Return("cycle-1")
	m.remote.EXPECT().AuthStatus(gomock.Any()).Return(models.AuthAvailable, nil).AnyTimes()
	m.expectFinish(false)

	_, err := svc.SyncInventory(ctx)
	assert.ErrorIs(t, err, ErrSyncCancelled)
	assert.Equal(t, models.SyncStatusError, svc.Status())
}

func TestSyncInventory_QueueUnavailable(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	ctx := context.Background()

	m.ids.EXPECT().Generate().Return("cycle-1")
	m.remote.EXPECT().AuthStatus(gomock.Any()).Return(models.AuthAvailable, nil)
	m.queue.EXPECT().List(gomock.Any()).Return(nil, store.ErrExecutingQuery)
	m.expectFinish(false)

	_, err := svc.SyncInventory(ctx)
	assert.ErrorIs(t, err, ErrQueueUnavailable)

	var serr *SyncError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, StepDrain, serr.Step)
	assert.Equal(t, "sync drain: "+serr.Err.Error(), err.Error())
}

// TestSyncInventory_BadResolverKeepsLocal verifies that a resolver returning
// the wrong number of resolutions cannot make the cycle drop a local change.
func TestSyncInventory_BadResolverKeepsLocal(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{out: nil})
	ctx := context.Background()

	local := item("1", t0, 3)
	remote := item("1", t0.Add(-time.Minute), 9)

	m.ids.EXPECT().Generate().Return("cycle-1")
	m.remote.EXPECT().AuthStatus(gomock.Any()).Return(models.AuthAvailable, nil)
	m.queue.EXPECT().List(gomock.Any()).Return([]models.PendingOperation{{ID: "op-1", Change: local}}, nil)
	gomock.InOrder(
		m.remote.EXPECT().PushBatch(gomock.Any(), []models.SyncChange{local}).
			Return(models.PartialBatchResult{Succeeded: []string{"1"}}),
		m.queue.EXPECT().Remove(gomock.Any(), "op-1"),
	)
	m.state.EXPECT().Watermark(gomock.Any()).Return(time.Time{}, false, nil)
	m.remote.EXPECT().Pull(gomock.Any(), time.Time{}).Return([]models.SyncChange{remote}, nil)

	m.local.EXPECT().ApplyChange(gomock.Any(), local)
	m.cache.EXPECT().Remove(gomock.Any()).Times(2)
	m.remote.EXPECT().PushBatch(gomock.Any(), []models.SyncChange{local}).
		Return(models.PartialBatchResult{Succeeded: []string{"1"}})
	m.queue.EXPECT().Remove(gomock.Any())
	m.state.EXPECT().SetWatermark(gomock.Any(), remote.Timestamp)
	m.expectFinish(true)

	res, err := svc.SyncInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ConflictsResolved)
	assert.Equal(t, 1, res.PushedCount, "a record pushed twice counts once")
	assert.Zero(t, res.PulledCount, "the local side won")
	assert.Nil(t, svc.LastError())
}

func TestProcessPendingQueue_Empty(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	m.queue.EXPECT().List(gomock.Any()).Return(nil, nil)
	m.queue.EXPECT().Remove(gomock.Any())
	m.queue.EXPECT().Count(gomock.Any()).Return(0, nil)
	m.analytics.EXPECT().SetPendingOperations(0)

	n, err := svc.ProcessPendingQueue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResetSyncState(t *testing.T) {
	svc, m := newMockedService(t, stubResolver{})
	svc.setStatus(models.SyncStatusError, ErrRemoteUnavailable)

	m.state.EXPECT().ResetWatermark(gomock.Any())
	m.cache.EXPECT().Clear()

	require.NoError(t, svc.ResetSyncState(context.Background()))
	assert.Equal(t, models.SyncStatusIdle, svc.Status())
	assert.Nil(t, svc.LastError())
}

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{context.Canceled, ErrSyncCancelled},
		{context.DeadlineExceeded, ErrSyncCancelled},
		{adapter.ErrAuthRejected, ErrAuthenticationRequired},
		{adapter.ErrQuotaExceeded, ErrQuotaExceeded},
		{adapter.ErrRemoteUnavailable, ErrRemoteUnavailable},
		{adapter.ErrRecordRejected, adapter.ErrRecordRejected},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, mapAdapterError(tt.in), tt.want)
	}
}
