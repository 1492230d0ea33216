package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorder(t *testing.T) (*Recorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)
	return r, reg
}

func TestObserveCycle(t *testing.T) {
	r, _ := newRecorder(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r.ObserveCycle(models.SyncResult{
		PushedCount:       3,
		PulledCount:       5,
		ConflictsResolved: 1,
		StartedAt:         start,
		FinishedAt:        start.Add(2 * time.Second),
		Failures:          []models.RecordFailure{{RecordID: "a"}},
	}, nil)
	r.ObserveCycle(models.SyncResult{PulledCount: 2}, errors.New("remote down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.cycles.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cycles.WithLabelValues(ResultFailure)))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.pushed))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.pulled))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.recordErrors))
	assert.Equal(t, 2, testutil.CollectAndCount(r.cycleDuration))
}

func TestSetPendingOperations(t *testing.T) {
	r, _ := newRecorder(t)

	r.SetPendingOperations(5)
	assert.Equal(t, 5.0, testutil.ToFloat64(r.pending))

	r.SetPendingOperations(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.pending))
}

func TestNewRecorder_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestRegisterCache(t *testing.T) {
	r, reg := newRecorder(t)
	stats := models.CacheStatistics{Name: "records", Entries: 4, MaxEntries: 10, Hits: 7, Misses: 2}

	require.NoError(t, r.RegisterCache(func() models.CacheStatistics { return stats }))

	expected := `
# HELP inventory_cache_entries Current number of live cache entries
# TYPE inventory_cache_entries gauge
inventory_cache_entries{cache="records"} 4
# HELP inventory_cache_hits_total Total number of cache hits
# TYPE inventory_cache_hits_total counter
inventory_cache_hits_total{cache="records"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"inventory_cache_entries", "inventory_cache_hits_total"))

	// sampled at scrape time
	stats.Entries = 1
	v, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range v {
		if mf.GetName() == "inventory_cache_entries" {
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}

	assert.Error(t, r.RegisterCache(func() models.CacheStatistics { return stats }))
}

func TestHandler(t *testing.T) {
	r, reg := newRecorder(t)
	r.SetPendingOperations(2)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventory_sync_pending_operations 2")
}
