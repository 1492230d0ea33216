package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

func newTestRecordStore(t *testing.T) *BoltRecordStore {
	t.Helper()
	s, err := NewBoltRecordStore(filepath.Join(t.TempDir(), "records.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltRecordStore_ApplyChangeMergesFields(t *testing.T) {
	ctx := context.Background()
	s := newTestRecordStore(t)

	create := models.NewSyncChange("item", "1", models.ActionCreate, t0,
		models.F("name", models.String("Lamp")),
		models.F("quantity", models.Int(1)),
	)
	update := models.NewSyncChange("item", "1", models.ActionUpdate, t0.Add(time.Minute),
		models.F("quantity", models.Int(2)),
	)
	require.NoError(t, s.ApplyChange(ctx, create))
	require.NoError(t, s.ApplyChange(ctx, update))

	rec, err := s.Record(ctx, "item", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "quantity"}, rec.Fields.Keys())
	q, _ := rec.Fields.Get("quantity")
	assert.True(t, q.Equal(models.Int(2)))
	assert.True(t, rec.UpdatedAt.Equal(update.Timestamp))
}

// TestBoltRecordStore_Idempotent verifies that replaying a change leaves the
// same state as applying it once.
func TestBoltRecordStore_Idempotent(t *testing.T) {
	ctx := context.Background()
	once, twice := newTestRecordStore(t), newTestRecordStore(t)

	changes := []models.SyncChange{
		models.NewSyncChange("item", "1", models.ActionCreate, t0, models.F("quantity", models.Int(1))),
		models.NewSyncChange("item", "2", models.ActionCreate, t0, models.F("quantity", models.Int(5))),
		models.NewSyncChange("item", "2", models.ActionDelete, t0.Add(time.Second)),
		models.NewSyncChange("category", "c", models.ActionUpdate, t0, models.F("name", models.String("Kitchen"))),
	}
	for _, c := range changes {
		require.NoError(t, once.ApplyChange(ctx, c))
		require.NoError(t, twice.ApplyChange(ctx, c))
		require.NoError(t, twice.ApplyChange(ctx, c))
	}

	for _, typ := range []string{"item", "category"} {
		a, err := once.FetchRecords(ctx, typ)
		require.NoError(t, err)
		b, err := twice.FetchRecords(ctx, typ)
		require.NoError(t, err)
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].ID, b[i].ID)
			assert.True(t, a[i].Fields.Equal(b[i].Fields))
		}
	}

	items, _ := once.FetchRecords(ctx, "item")
	assert.Len(t, items, 1)
}

func TestBoltRecordStore_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestRecordStore(t)

	require.NoError(t, s.DeleteRecord(ctx, "item", "nope"))
	_, err := s.Record(ctx, "item", "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	recs, err := s.FetchRecords(ctx, "unknown-type")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestNewStorages(t *testing.T) {
	dir := t.TempDir()
	cfg := configStorage(filepath.Join(dir, "sync.db"), filepath.Join(dir, "records.db"))

	s, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s.PendingQueue)
	require.NoError(t, s.Close())
}
