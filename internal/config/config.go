// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Config is the top-level configuration of the sync daemon.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type Config struct {
	// Storage holds the local SQLite database and the record store paths.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote record store endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds orchestrator retry and parallelism settings.
	Sync Sync `envPrefix:"SYNC_"`

	Cache Cache `envPrefix:"CACHE_"`

	// Scheduler holds background job intervals and limits.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// Server holds the control API listen address.
	Server Server `envPrefix:"SERVER_"`

	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the SQLite database holding the pending queue, the watermark and
	// the sync history.
	DB DB `envPrefix:"DB_"`

	// Records is the bbolt file holding the local copy of synchronized records.
	Records Records `envPrefix:"RECORDS_"`
}

// DB holds SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path or URI (e.g. "file:sync.db?_journal_mode=WAL").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Records holds local record store settings.
type Records struct {
	// Path is the bbolt database file.
	// Env: STORAGE_RECORDS_PATH
	Path string `env:"PATH"`
}

// Adapter holds configuration of the remote record store client.
type Adapter struct {
	// HTTPAddress is the base address of the remote store, "host:port" or a
	// full URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent with every request. Its expiry is checked
	// locally before the remote is asked for the account status.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Sync holds orchestrator settings.
type Sync struct {
	// MaxAttempts is the number of push or pull attempts made within one cycle
	// before transient failures are left for the next cycle.
	// Env: SYNC_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BaseBackoff is the wait before the second attempt; it doubles after each
	// further attempt.
	// Env: SYNC_BASE_BACKOFF
	BaseBackoff time.Duration `env:"BASE_BACKOFF"`

	// MaxBackoff caps a single wait.
	// Env: SYNC_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`

	// Workers is the number of concurrent per-record pushes.
	// Env: SYNC_WORKERS
	Workers int `env:"WORKERS"`

	// Resolver names the conflict resolver: "automatic", "newest",
	// "quantity" or "price".
	// Env: SYNC_RESOLVER
	Resolver string `env:"RESOLVER"`
}

// Cache holds settings of the record read cache.
type Cache struct {
	MaxEntries int           `env:"MAX_ENTRIES"`
	TTL        time.Duration `env:"TTL"`
}

// Scheduler holds background job settings.
type Scheduler struct {
	// SyncInterval is the delay before the next background sync run.
	// Env: SCHEDULER_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// CleanupInterval is the delay before the next cleanup run.
	// Env: SCHEDULER_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`

	// TaskDeadline is how long a single background run may take before it is
	// expired.
	// Env: SCHEDULER_TASK_DEADLINE
	TaskDeadline time.Duration `env:"TASK_DEADLINE"`

	// MaxPending limits outstanding scheduling requests.
	// Env: SCHEDULER_MAX_PENDING
	MaxPending int `env:"MAX_PENDING"`

	// RecheckInterval is how long a network-constrained job is deferred while
	// the remote is unreachable.
	// Env: SCHEDULER_RECHECK_INTERVAL
	RecheckInterval time.Duration `env:"RECHECK_INTERVAL"`

	// HistoryRetention is how long sync history rows are kept by cleanup.
	// Env: SCHEDULER_HISTORY_RETENTION
	HistoryRetention time.Duration `env:"HISTORY_RETENTION"`
}

// Server holds the control API settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// APIToken, when set, must be presented as a bearer token on every
	// control API call except health and version.
	// Env: SERVER_API_TOKEN
	APIToken string `env:"API_TOKEN"`
}

// Log holds logging settings.
type Log struct {
	Level string `env:"LEVEL"`
	// File switches logging to a rotating file.
	File string `env:"FILE"`
}

// Defaults returns the built-in configuration. Backoff defaults give three
// attempts per cycle waiting 1s and 2s between them, capped at 4s.
func Defaults() *Config {
	return &Config{
		Storage: Storage{
			DB:      DB{DSN: "sync.db"},
			Records: Records{Path: "records.db"},
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
		},
		Sync: Sync{
			MaxAttempts: 3,
			BaseBackoff: time.Second,
			MaxBackoff:  4 * time.Second,
			Workers:     4,
			Resolver:    "automatic",
		},
		Cache: Cache{
			MaxEntries: 1000,
			TTL:        5 * time.Minute,
		},
		Scheduler: Scheduler{
			SyncInterval:     time.Hour,
			CleanupInterval:  24 * time.Hour,
			TaskDeadline:     30 * time.Second,
			MaxPending:       10,
			RecheckInterval:  15 * time.Minute,
			HistoryRetention: 7 * 24 * time.Hour,
		},
		Server: Server{
			HTTPAddress: "localhost:8090",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetConfig loads, merges, defaults and validates the configuration.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flagArgs()).
		withJSON().
		withDefaults().
		build()
}
