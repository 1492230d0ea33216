// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	insertPendingOperation = `
		INSERT INTO pending_operations (
			id,
			record_type,
			record_id,
			change,
			attempt_count,
			last_error,
			enqueued_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	listPendingOperations = `
		SELECT
			id,
			change,
			attempt_count,
			last_error,
			enqueued_at
		FROM pending_operations
		ORDER BY seq;`

	markPendingOperationAttempt = `
		UPDATE pending_operations
		SET attempt_count = attempt_count + 1,
			last_error = ?
		WHERE id = ?;`

	countPendingOperations = `SELECT COUNT(*) FROM pending_operations;`

	getSyncState = `SELECT value FROM sync_state WHERE key = ?;`

	upsertSyncState = `
		INSERT INTO sync_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	deleteSyncState = `DELETE FROM sync_state WHERE key = ?;`

	insertSyncHistory = `
		INSERT INTO sync_history (
			started_at,
			finished_at,
			duration_ms,
			success,
			pushed_count,
			pulled_count,
			conflicts_resolved,
			error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	aggregateSyncHistory = `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			COALESCE(MAX(CASE WHEN success THEN finished_at END), 0),
			COALESCE(MAX(CASE WHEN NOT success THEN finished_at END), 0),
			COALESCE(SUM(conflicts_resolved), 0),
			COALESCE(SUM(pushed_count), 0),
			COALESCE(SUM(pulled_count), 0)
		FROM sync_history;`
)

const watermarkKey = "watermark"
