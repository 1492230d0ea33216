// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"
)

// ResolverNames lists the accepted values of [Sync.Resolver].
var ResolverNames = []string{"automatic", "newest", "quantity", "price"}

// validate checks the merged [Config] before it is used at startup.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return fmt.Errorf("%w: queue database must be a file", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Records.Path == "" {
		return fmt.Errorf("%w: empty record store path", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	s := cfg.Sync
	if s.MaxAttempts < 1 || s.BaseBackoff <= 0 || s.MaxBackoff < s.BaseBackoff || s.Workers < 1 {
		return ErrInvalidSyncConfigs
	}
	if !slices.Contains(ResolverNames, s.Resolver) {
		return fmt.Errorf("%w: unknown resolver %q", ErrInvalidSyncConfigs, s.Resolver)
	}

	if cfg.Cache.MaxEntries < 1 || cfg.Cache.TTL < 0 {
		return ErrInvalidCacheConfigs
	}

	sc := cfg.Scheduler
	if sc.SyncInterval <= 0 || sc.CleanupInterval <= 0 || sc.TaskDeadline <= 0 ||
		sc.MaxPending < 1 || sc.RecheckInterval <= 0 || sc.HistoryRetention <= 0 {
		return ErrInvalidSchedulerConfigs
	}

	return nil
}
