package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TriggerCtxKey is the key under which the origin of a sync cycle is stored.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithTrigger(ctx, utils.TriggerScheduler)
var TriggerCtxKey = contextKey("syncTrigger")

// Known sync triggers.
const (
	TriggerManual    = "manual"
	TriggerScheduler = "scheduler"
	TriggerAPI       = "api"
)

// WithTrigger returns a copy of ctx labelled with the given trigger.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, TriggerCtxKey, trigger)
}

// TriggerFromContext returns the trigger stored in ctx, or TriggerManual when
// none is present.
func TriggerFromContext(ctx context.Context) string {
	trigger, ok := ctx.Value(TriggerCtxKey).(string)
	if !ok || trigger == "" {
		return TriggerManual
	}
	return trigger
}
