// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver decides the outcome of sync conflicts.
//
// Every [Resolver] returns exactly one resolution per conflict, in input
// order, and performs no I/O. Resolvers never fail: whenever an outcome cannot
// be computed with confidence the local change is kept.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// Resolver resolves a batch of conflicts.
type Resolver interface {
	Resolve(ctx context.Context, conflicts []models.SyncConflict) []models.ConflictResolution
}

// Built-in field names of inventory records.
const (
	FieldQuantity      = "quantity"
	FieldUpdatedAt     = "updatedAt"
	FieldPurchasePrice = "purchasePrice"
)

// FromName builds a resolver from its configuration name.
func FromName(name string, now func() time.Time) (Resolver, error) {
	auto := NewAutomatic(WithClock(now))
	switch name {
	case "", "automatic":
		return auto, nil
	case "newest":
		return NewRuleBased([]Rule{PreferNewest}, WithFallback(auto)), nil
	case "quantity":
		return NewRuleBased([]Rule{PreferHigherQuantity, PreferNewest}, WithFallback(auto)), nil
	case "price":
		return NewRuleBased([]Rule{PreferHigherPrice, PreferNewest}, WithFallback(auto)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResolver, name)
	}
}
