package resolver

import (
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// Automatic resolves conflicts by timestamp: the strictly newer change wins
// outright. Changes stamped at the same instant are merged field by field:
// magnitude fields take the larger number, timestamp fields the later time and
// every other field keeps the local value.
type Automatic struct {
	magnitude  []string
	timestamps []string
	now        func() time.Time
}

type AutomaticOption func(*Automatic)

// WithMagnitudeFields replaces the numeric fields merged by maximum.
func WithMagnitudeFields(names ...string) AutomaticOption {
	return func(a *Automatic) { a.magnitude = names }
}

// WithTimestampFields replaces the time fields merged by maximum.
func WithTimestampFields(names ...string) AutomaticOption {
	return func(a *Automatic) { a.timestamps = names }
}

// WithClock sets the source of the merged change's timestamp.
func WithClock(now func() time.Time) AutomaticOption {
	return func(a *Automatic) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAutomatic(opts ...AutomaticOption) *Automatic {
	a := &Automatic{
		magnitude:  []string{FieldQuantity},
		timestamps: []string{FieldUpdatedAt},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Automatic) Resolve(_ context.Context, conflicts []models.SyncConflict) []models.ConflictResolution {
	out := make([]models.ConflictResolution, len(conflicts))
	for i, c := range conflicts {
		out[i] = a.resolveOne(c)
	}
	return out
}

func (a *Automatic) resolveOne(c models.SyncConflict) models.ConflictResolution {
	local, remote := c.LocalChange, c.RemoteChange

	switch local.Timestamp.Compare(remote.Timestamp) {
	case 1:
		return models.UseLocal(c)
	case -1:
		return models.UseRemote(c)
	}

	// A delete on either side leaves nothing to merge.
	if local.Action == models.ActionDelete || remote.Action == models.ActionDelete {
		return models.UseLocal(c)
	}

	merged := a.mergeFields(local.Fields, remote.Fields)
	if merged.Len() == 0 {
		return models.UseLocal(c)
	}

	change := local.WithFields(merged, a.now())
	return models.Merge(c, &change)
}

// mergeFields walks local keys first, then keys only the remote has.
func (a *Automatic) mergeFields(local, remote models.Fields) models.Fields {
	pairs := make([]models.Field, 0, local.Len()+remote.Len())

	local.Range(func(name string, lv models.Value) bool {
		rv, ok := remote.Get(name)
		if !ok {
			pairs = append(pairs, models.F(name, lv))
			return true
		}
		pairs = append(pairs, models.F(name, a.mergeValue(name, lv, rv)))
		return true
	})
	remote.Range(func(name string, rv models.Value) bool {
		if !local.Has(name) {
			pairs = append(pairs, models.F(name, rv))
		}
		return true
	})

	return models.NewFields(pairs...)
}

func (a *Automatic) mergeValue(name string, lv, rv models.Value) models.Value {
	switch {
	case slices.Contains(a.magnitude, name) && lv.Kind() == models.KindNumber:
		return maxValue(lv, rv)
	case slices.Contains(a.timestamps, name) && lv.Kind() == models.KindTime:
		return maxValue(lv, rv)
	default:
		return lv
	}
}

// maxValue returns the larger of two comparable values, or lv when they are
// not comparable.
func maxValue(lv, rv models.Value) models.Value {
	cmp, ok := lv.Compare(rv)
	if ok && cmp < 0 {
		return rv
	}
	return lv
}
