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

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/mock"
)

func TestMaintenance_Cleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockRecordCache(ctrl)
	history := mock.NewMockSyncHistoryRepository(ctrl)
	optimizer := mock.NewMockDatabaseOptimizer(ctrl)
	clk := testclock.NewFakePassiveClock(t0)

	svc := NewMaintenanceService(cache, history, optimizer, 7*24*time.Hour, clk, logger.Nop())

	cache.EXPECT().Clear()
	history.EXPECT().Prune(gomock.Any(), t0.Add(-7*24*time.Hour)).Return(int64(4), nil)
	optimizer.EXPECT().Optimize(gomock.Any())

	require.NoError(t, svc.Cleanup(context.Background()))
}

// TestMaintenance_CleanupRunsEveryStep verifies that a failed prune does not
// skip the optimizer and both errors are reported.
func TestMaintenance_CleanupRunsEveryStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockRecordCache(ctrl)
	history := mock.NewMockSyncHistoryRepository(ctrl)
	optimizer := mock.NewMockDatabaseOptimizer(ctrl)

	pruneErr := errors.New("locked")
	optimizeErr := errors.New("vacuum failed")

	cache.EXPECT().Clear()
	history.EXPECT().Prune(gomock.Any(), gomock.Any()).Return(int64(0), pruneErr)
	optimizer.EXPECT().Optimize(gomock.Any()).Return(optimizeErr)

	svc := NewMaintenanceService(cache, history, optimizer, time.Hour, testclock.NewFakePassiveClock(t0), logger.Nop())
	err := svc.Cleanup(context.Background())
	assert.ErrorIs(t, err, pruneErr)
	assert.ErrorIs(t, err, optimizeErr)
}

func TestMaintenance_NoRetentionKeepsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockRecordCache(ctrl)
	history := mock.NewMockSyncHistoryRepository(ctrl)

	cache.EXPECT().Clear()

	// без оптимизатора и без срока хранения остаётся только очистка кэша
	svc := NewMaintenanceService(cache, history, nil, 0, nil, logger.Nop())
	require.NoError(t, svc.Cleanup(context.Background()))
}

func TestMaintenance_CancelledSkipsOptimize(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockRecordCache(ctrl)
	history := mock.NewMockSyncHistoryRepository(ctrl)
	optimizer := mock.NewMockDatabaseOptimizer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cache.EXPECT().Clear()
	history.EXPECT().Prune(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	svc := NewMaintenanceService(cache, history, optimizer, time.Hour, nil, logger.Nop())
	assert.ErrorIs(t, svc.Cleanup(ctx), ErrSyncCancelled)
}
