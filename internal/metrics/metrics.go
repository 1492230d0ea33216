// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics records sync engine analytics as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/MKhiriev/go-inventory-sync/models"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "inventory"
	subsystem = "sync"

	labelResult = "result"
	labelCache  = "cache"
)

// Cycle outcomes used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var cycleBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// Recorder owns the sync engine collectors. All methods are safe for
// concurrent use.
type Recorder struct {
	registerer prometheus.Registerer

	cycles        *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	pushed        prometheus.Counter
	pulled        prometheus.Counter
	conflicts     prometheus.Counter
	recordErrors  prometheus.Counter
	pending       prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		registerer: reg,
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_total",
			Help:      "Total number of sync cycles by result",
		}, []string{labelResult}),
		cycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Time taken by one sync cycle",
			Buckets:   cycleBuckets,
		}, []string{labelResult}),
		pushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_pushed_total",
			Help:      "Total number of changes pushed to the remote store",
		}),
		pulled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_pulled_total",
			Help:      "Total number of remote changes pulled",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "conflicts_resolved_total",
			Help:      "Total number of conflicts resolved",
		}),
		recordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "record_errors_total",
			Help:      "Total number of per-record failures surfaced by sync cycles",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pending_operations",
			Help:      "Current number of queued operations awaiting push",
		}),
	}

	for _, c := range []prometheus.Collector{
		r.cycles, r.cycleDuration, r.pushed, r.pulled, r.conflicts, r.recordErrors, r.pending,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveCycle records one finished cycle. err is the cycle error, nil for
// a successful cycle; counts are taken from result either way.
func (r *Recorder) ObserveCycle(result models.SyncResult, err error) {
	label := ResultSuccess
	if err != nil {
		label = ResultFailure
	}

	r.cycles.WithLabelValues(label).Inc()
	r.cycleDuration.WithLabelValues(label).Observe(result.Duration().Seconds())
	r.pushed.Add(float64(result.PushedCount))
	r.pulled.Add(float64(result.PulledCount))
	r.conflicts.Add(float64(result.ConflictsResolved))
	r.recordErrors.Add(float64(len(result.Failures)))
}

// SetPendingOperations publishes the current queue length.
func (r *Recorder) SetPendingOperations(n int) {
	r.pending.Set(float64(n))
}

// RegisterCache exposes the statistics of a cache as gauges sampled at
// scrape time.
func (r *Recorder) RegisterCache(stats func() models.CacheStatistics) error {
	name := stats().Name
	labels := prometheus.Labels{labelCache: name}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "entries",
			Help:        "Current number of live cache entries",
			ConstLabels: labels,
		}, func() float64 { return float64(stats().Entries) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "hits_total",
			Help:        "Total number of cache hits",
			ConstLabels: labels,
		}, func() float64 { return float64(stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "misses_total",
			Help:        "Total number of cache misses",
			ConstLabels: labels,
		}, func() float64 { return float64(stats().Misses) }),
	}

	var errs []error
	for _, c := range collectors {
		errs = append(errs, r.registerer.Register(c))
	}
	return errors.Join(errs...)
}
