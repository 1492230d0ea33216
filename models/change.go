package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// SyncAction is the kind of mutation a [SyncChange] describes.
type SyncAction string

const (
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
	ActionDelete SyncAction = "delete"
)

func (a SyncAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// SyncChange is the unit of synchronization: one mutation to one record.
//
// A SyncChange is treated as an immutable value. Fields is itself immutable,
// and every operation that combines changes (merge, coalesce) builds a new one.
// Absent fields mean "unchanged".
type SyncChange struct {
	RecordID   string     `json:"record_id"`
	RecordType string     `json:"record_type"`
	Action     SyncAction `json:"action"`
	Fields     Fields     `json:"fields"`
	Timestamp  time.Time  `json:"timestamp"`
}

// NewSyncChange builds a change stamped with at, normalized to UTC.
func NewSyncChange(recordType, recordID string, action SyncAction, at time.Time, fields ...Field) SyncChange {
	return SyncChange{
		RecordID:   recordID,
		RecordType: recordType,
		Action:     action,
		Fields:     NewFields(fields...),
		Timestamp:  at.UTC(),
	}
}

// Key identifies the record the change belongs to across record types.
func (c SyncChange) Key() string {
	return RecordKey(c.RecordType, c.RecordID)
}

// RecordKey is the cache and grouping key for a record.
func RecordKey(recordType, recordID string) string {
	return recordType + "/" + recordID
}

// Validate checks the structural invariants of a change.
func (c SyncChange) Validate() error {
	if c.RecordID == "" {
		return fmt.Errorf("%w: empty record id", ErrInvalidChange)
	}
	if c.RecordType == "" {
		return fmt.Errorf("%w: empty record type", ErrInvalidChange)
	}
	if strings.Contains(c.RecordType, "/") {
		return fmt.Errorf("%w: record type %q contains '/'", ErrInvalidChange, c.RecordType)
	}
	if !c.Action.Valid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidChange, c.Action)
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrInvalidChange)
	}
	return nil
}

// WithFields returns a copy of c carrying fields and stamped at.
func (c SyncChange) WithFields(fields Fields, at time.Time) SyncChange {
	c.Fields = fields
	c.Timestamp = at.UTC()
	return c
}

// IsEcho reports whether other is the same mutation as c, as happens when the
// remote hands back a change this client pushed itself.
func (c SyncChange) IsEcho(other SyncChange) bool {
	return c.Key() == other.Key() &&
		c.Action == other.Action &&
		c.Timestamp.Equal(other.Timestamp) &&
		c.Fields.Equal(other.Fields)
}

// Coalesce folds several changes to the same record into one new change.
// Changes are applied in timestamp order; later field values win. The result
// takes the action and timestamp of the latest change, except that a create
// followed by updates stays a create.
func Coalesce(changes ...SyncChange) (SyncChange, error) {
	if len(changes) == 0 {
		return SyncChange{}, fmt.Errorf("%w: nothing to coalesce", ErrInvalidChange)
	}

	sorted := slices.Clone(changes)
	slices.SortStableFunc(sorted, func(a, b SyncChange) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	out := sorted[0]
	for _, next := range sorted[1:] {
		if next.Key() != out.Key() {
			return SyncChange{}, fmt.Errorf("%w: cannot coalesce %s with %s", ErrInvalidChange, out.Key(), next.Key())
		}
		switch {
		case next.Action == ActionDelete:
			out.Action = ActionDelete
			out.Fields = next.Fields
		case out.Action == ActionDelete:
			// re-created after a delete
			out.Action = next.Action
			out.Fields = next.Fields
		default:
			if out.Action != ActionCreate {
				out.Action = next.Action
			}
			out.Fields = out.Fields.Union(next.Fields)
		}
		out.Timestamp = next.Timestamp
	}
	return out, nil
}
