// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer to the remote record store.
//
// The primary abstraction is [RemoteStore], which decouples the sync
// orchestrator from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteStore]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling, and are grouped by [IsTransient], [IsTerminalRecord] and
// [IsTerminalGlobal] into the three failure classes the orchestrator acts on.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore is the remote side of a sync cycle.
type RemoteStore interface {
	// Pull returns the remote changes newer than since, oldest first. A zero
	// since requests every change the remote holds.
	Pull(ctx context.Context, since time.Time) ([]models.SyncChange, error)

	// PushBatch pushes changes with bounded parallelism. Per-record failures
	// are reported in the result and never abort siblings; a terminal-global
	// failure stops starting new pushes and sets Aborted. Records that were
	// never attempted are reported as failed with an error that matches the
	// aborting cause.
	PushBatch(ctx context.Context, changes []models.SyncChange) models.PartialBatchResult

	// AuthStatus reports whether the account may currently sync.
	AuthStatus(ctx context.Context) (models.AuthStatus, error)

	// Ping checks that the remote is reachable.
	Ping(ctx context.Context) error
}
