package models

import (
	"fmt"
)

// SyncConflict pairs the local and remote change to the same record made since
// the last common sync point.
type SyncConflict struct {
	RecordID     string     `json:"record_id"`
	LocalChange  SyncChange `json:"local_change"`
	RemoteChange SyncChange `json:"remote_change"`
}

// NewSyncConflict rejects pairs that do not reference the same record.
func NewSyncConflict(local, remote SyncChange) (SyncConflict, error) {
	if local.Key() != remote.Key() {
		return SyncConflict{}, fmt.Errorf("%w: %s vs %s", ErrConflictMismatch, local.Key(), remote.Key())
	}
	return SyncConflict{RecordID: local.RecordID, LocalChange: local, RemoteChange: remote}, nil
}

// ResolutionStrategy is the outcome class of a conflict resolution.
type ResolutionStrategy string

const (
	StrategyUseLocal  ResolutionStrategy = "useLocal"
	StrategyUseRemote ResolutionStrategy = "useRemote"
	StrategyMerge     ResolutionStrategy = "merge"
)

func (s ResolutionStrategy) Valid() bool {
	switch s {
	case StrategyUseLocal, StrategyUseRemote, StrategyMerge:
		return true
	}
	return false
}

// ConflictResolution is the decision for one [SyncConflict]. MergedChange is
// set if and only if Strategy is [StrategyMerge].
type ConflictResolution struct {
	RecordID     string             `json:"record_id"`
	Strategy     ResolutionStrategy `json:"strategy"`
	LocalChange  SyncChange         `json:"local_change"`
	RemoteChange SyncChange         `json:"remote_change"`
	MergedChange *SyncChange        `json:"merged_change,omitempty"`
}

func UseLocal(c SyncConflict) ConflictResolution {
	return resolution(c, StrategyUseLocal, nil)
}

func UseRemote(c SyncConflict) ConflictResolution {
	return resolution(c, StrategyUseRemote, nil)
}

// Merge returns a merge resolution. A merge without a merged change is not a
// valid decision and degrades to [UseLocal].
func Merge(c SyncConflict, merged *SyncChange) ConflictResolution {
	if merged == nil {
		return UseLocal(c)
	}
	m := *merged
	return resolution(c, StrategyMerge, &m)
}

func resolution(c SyncConflict, s ResolutionStrategy, merged *SyncChange) ConflictResolution {
	return ConflictResolution{
		RecordID:     c.RecordID,
		Strategy:     s,
		LocalChange:  c.LocalChange,
		RemoteChange: c.RemoteChange,
		MergedChange: merged,
	}
}

// Winner returns the change whose state should end up in both stores.
func (r ConflictResolution) Winner() SyncChange {
	switch r.Strategy {
	case StrategyUseRemote:
		return r.RemoteChange
	case StrategyMerge:
		if r.MergedChange != nil {
			return *r.MergedChange
		}
	}
	return r.LocalChange
}

// Validate checks the strategy and the merged-change invariant.
func (r ConflictResolution) Validate() error {
	if !r.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidResolution, r.Strategy)
	}
	if (r.Strategy == StrategyMerge) != (r.MergedChange != nil) {
		return fmt.Errorf("%w: merged change must be present only for merge", ErrInvalidResolution)
	}
	return nil
}
