package resolver

import (
	"context"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// Decision is what an external decision-maker chose for one conflict.
type Decision struct {
	Strategy models.ResolutionStrategy
	// Merged is required when Strategy is merge.
	Merged *models.SyncChange
}

// DecisionFunc asks an external party (usually a person) to resolve a
// conflict. It may block until an answer arrives or ctx is done.
type DecisionFunc func(ctx context.Context, c models.SyncConflict) (Decision, error)

// Manual delegates every conflict to a DecisionFunc. Errors, a cancelled
// context, unknown strategies and merges without a merged change keep the
// local change.
type Manual struct {
	decide DecisionFunc
}

func NewManual(decide DecisionFunc) *Manual {
	return &Manual{decide: decide}
}

func (m *Manual) Resolve(ctx context.Context, conflicts []models.SyncConflict) []models.ConflictResolution {
	out := make([]models.ConflictResolution, len(conflicts))
	for i, c := range conflicts {
		out[i] = m.resolveOne(ctx, c)
	}
	return out
}

func (m *Manual) resolveOne(ctx context.Context, c models.SyncConflict) models.ConflictResolution {
	if m.decide == nil || ctx.Err() != nil {
		return models.UseLocal(c)
	}

	d, err := m.decide(ctx, c)
	if err != nil {
		return models.UseLocal(c)
	}

	switch d.Strategy {
	case models.StrategyUseRemote:
		return models.UseRemote(c)
	case models.StrategyMerge:
		if d.Merged == nil || d.Merged.Key() != c.LocalChange.Key() {
			return models.UseLocal(c)
		}
		return models.Merge(c, d.Merged)
	default:
		return models.UseLocal(c)
	}
}
