package config

import "errors"

// Validation errors returned by [Config.validate].
var (
	// ErrInvalidAdapterConfigs indicates missing remote address or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidStorageConfigs indicates an empty or in-memory DSN, or a
	// missing record store path.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidSyncConfigs indicates non-positive attempts, backoff or
	// worker counts, or an unknown resolver.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")

	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")

	// ErrInvalidSchedulerConfigs indicates non-positive intervals, deadline
	// or pending limit.
	ErrInvalidSchedulerConfigs = errors.New("invalid scheduler configuration")
)
