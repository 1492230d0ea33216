// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// PendingOperation is a locally-originated change waiting to be pushed. It is
// persisted so it survives process restarts.
type PendingOperation struct {
	// ID is a UUIDv7 assigned on enqueue; it sorts by enqueue time.
	ID           string     `json:"id"`
	Change       SyncChange `json:"change"`
	AttemptCount int        `json:"attempt_count"`
	EnqueuedAt   time.Time  `json:"enqueued_at"`
	// LastError holds the message of the most recent failed push, if any.
	LastError string `json:"last_error,omitempty"`
}

// RecordFailure is one failed record of a multi-record operation.
type RecordFailure struct {
	RecordID string `json:"record_id"`
	Err      error  `json:"-"`
}

func (f RecordFailure) Error() string {
	if f.Err == nil {
		return f.RecordID
	}
	return f.RecordID + ": " + f.Err.Error()
}

// PartialBatchResult is the outcome of a batch push. Per-record failures never
// fail the whole batch; Aborted is set when a global error stopped the batch
// before every record was attempted.
type PartialBatchResult struct {
	Succeeded []string
	Failed    []RecordFailure
	Aborted   error
}

// SyncResult summarizes one completed sync cycle.
type SyncResult struct {
	// PushedCount is the number of distinct records the remote accepted.
	PushedCount int `json:"pushed_count"`
	// PulledCount is the number of records whose local value now comes from
	// the remote, fully or through a merge.
	PulledCount       int             `json:"pulled_count"`
	ConflictsResolved int             `json:"conflicts_resolved"`
	StartedAt         time.Time       `json:"started_at"`
	FinishedAt        time.Time       `json:"finished_at"`
	Failures          []RecordFailure `json:"-"`
}

func (r SyncResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SyncStatus is the coarse state of the orchestrator.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusError   SyncStatus = "error"
)

// SyncStatistics aggregates the recorded sync history.
type SyncStatistics struct {
	TotalSyncs         int           `json:"total_syncs"`
	SuccessfulSyncs    int           `json:"successful_syncs"`
	FailedSyncs        int           `json:"failed_syncs"`
	AverageDuration    time.Duration `json:"average_duration"`
	LastSuccessfulSync *time.Time    `json:"last_successful_sync,omitempty"`
	LastFailedSync     *time.Time    `json:"last_failed_sync,omitempty"`
	ConflictsResolved  int           `json:"conflicts_resolved"`
	RecordsPushed      int           `json:"records_pushed"`
	RecordsPulled      int           `json:"records_pulled"`
}

// SuccessRate is the share of successful cycles, 0 when nothing ran.
func (s SyncStatistics) SuccessRate() float64 {
	if s.TotalSyncs == 0 {
		return 0
	}
	return float64(s.SuccessfulSyncs) / float64(s.TotalSyncs)
}

// SyncHistoryEntry is one row of the sync history.
type SyncHistoryEntry struct {
	StartedAt         time.Time
	FinishedAt        time.Time
	Success           bool
	PushedCount       int
	PulledCount       int
	ConflictsResolved int
	Error             string
}

// AuthStatus is the remote account state reported before a cycle.
type AuthStatus string

const (
	AuthAvailable        AuthStatus = "available"
	AuthRestricted       AuthStatus = "restricted"
	AuthNotAuthenticated AuthStatus = "notAuthenticated"
)

// CacheStatistics is a point-in-time view of a cache.
type CacheStatistics struct {
	Name       string `json:"name"`
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"max_entries"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
}

func (s CacheStatistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Record is the current state of one entity in the local store.
type Record struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Fields    Fields    `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}
