package resolver

import (
	"context"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// Preference tells a [Rule] which side to pick for its field.
type Preference uint8

const (
	// PreferHigher picks the side with the larger value; ties go remote.
	PreferHigher Preference = iota
	// PreferLower picks the side with the smaller value; ties go remote.
	PreferLower
	// PreferLocal always picks local when the field is present.
	PreferLocal
	// PreferRemote always picks remote when the field is present.
	PreferRemote
	// PreferPresent picks whichever side carries the field, local if both do.
	PreferPresent
)

func (p Preference) String() string {
	switch p {
	case PreferHigher:
		return "higher"
	case PreferLower:
		return "lower"
	case PreferLocal:
		return "local"
	case PreferRemote:
		return "remote"
	case PreferPresent:
		return "present"
	}
	return "unknown"
}

// Rule is one entry of a rule-based resolver: a field and how to compare it.
// A rule applies to a conflict when its field is present on either side.
type Rule struct {
	Field  string
	Prefer Preference
}

var (
	PreferNewest         = Rule{Field: FieldUpdatedAt, Prefer: PreferHigher}
	PreferHigherQuantity = Rule{Field: FieldQuantity, Prefer: PreferHigher}
	PreferHigherPrice    = Rule{Field: FieldPurchasePrice, Prefer: PreferHigher}
)

func (r Rule) applies(c models.SyncConflict) bool {
	return c.LocalChange.Fields.Has(r.Field) || c.RemoteChange.Fields.Has(r.Field)
}

// decide picks a strategy. Values that cannot be compared keep local.
func (r Rule) decide(c models.SyncConflict) models.ResolutionStrategy {
	lv, lok := c.LocalChange.Fields.Get(r.Field)
	rv, rok := c.RemoteChange.Fields.Get(r.Field)

	switch r.Prefer {
	case PreferLocal:
		return models.StrategyUseLocal
	case PreferRemote:
		return models.StrategyUseRemote
	case PreferPresent:
		if lok {
			return models.StrategyUseLocal
		}
		return models.StrategyUseRemote
	}

	if !lok || !rok {
		return models.StrategyUseLocal
	}
	cmp, ok := lv.Compare(rv)
	if !ok {
		return models.StrategyUseLocal
	}
	if r.Prefer == PreferLower {
		cmp = -cmp
	}
	if cmp > 0 {
		return models.StrategyUseLocal
	}
	return models.StrategyUseRemote
}

// RuleBased resolves each conflict with the first applicable rule. Conflicts
// no rule applies to are handed to the fallback resolver in one batch.
type RuleBased struct {
	rules    []Rule
	fallback Resolver
}

type RuleBasedOption func(*RuleBased)

// WithFallback replaces the default [Automatic] fallback.
func WithFallback(r Resolver) RuleBasedOption {
	return func(rb *RuleBased) {
		if r != nil {
			rb.fallback = r
		}
	}
}

func NewRuleBased(rules []Rule, opts ...RuleBasedOption) *RuleBased {
	rb := &RuleBased{
		rules:    append([]Rule(nil), rules...),
		fallback: NewAutomatic(),
	}
	for _, opt := range opts {
		opt(rb)
	}
	return rb
}

func (rb *RuleBased) Resolve(ctx context.Context, conflicts []models.SyncConflict) []models.ConflictResolution {
	out := make([]models.ConflictResolution, len(conflicts))

	var (
		rest    []models.SyncConflict
		restIdx []int
	)
	for i, c := range conflicts {
		rule, ok := rb.match(c)
		if !ok {
			rest = append(rest, c)
			restIdx = append(restIdx, i)
			continue
		}
		if rule.decide(c) == models.StrategyUseRemote {
			out[i] = models.UseRemote(c)
		} else {
			out[i] = models.UseLocal(c)
		}
	}

	if len(rest) == 0 {
		return out
	}

	resolved := rb.fallback.Resolve(ctx, rest)
	for j, idx := range restIdx {
		if j < len(resolved) && resolved[j].RecordID == rest[j].RecordID {
			out[idx] = resolved[j]
			continue
		}
		// the fallback broke its contract for this entry
		out[idx] = models.UseLocal(rest[j])
	}
	return out
}

func (rb *RuleBased) match(c models.SyncConflict) (Rule, bool) {
	for _, r := range rb.rules {
		if r.applies(c) {
			return r, true
		}
	}
	return Rule{}, false
}
