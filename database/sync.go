package database

import (
	"context"
	"fmt"
	"time"

	"hatchling/models"
)

// ==================== SYNC OPERATIONS ====================

// MarkSynced is the only path by which a row transitions to synced. The
// external sync coordinator calls it after the remote side acknowledged
// the change, passing back the server's concurrency token. Tombstoned
// rows are marked like any other; is_deleted is orthogonal.
func (s *Store) MarkSynced(ctx context.Context, entityType, id string, serverVersion int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	table, ok := tableNameFor(entityType)
	if !ok {
		return fmt.Errorf("unknown entity type %q", entityType)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE `+table+` SET
			synced_at = ?,
			local_sync_status = ?,
			server_version = ?
		WHERE id = ?
	`, time.Now().UTC(), string(models.SyncStatusSynced), serverVersion, id)
	if err != nil {
		return fmt.Errorf("failed to mark %s synced: %w", entityType, err)
	}
	return nil
}

// MarkConflict records that the remote server_version advanced beyond
// what this client last saw. The resolution policy lives in the sync
// coordinator; this core only stores the state.
func (s *Store) MarkConflict(ctx context.Context, entityType, id string) error {
	return s.setSyncStatus(ctx, entityType, id, models.SyncStatusConflict)
}

// MarkSyncError records a failed sync attempt against the row itself,
// alongside whatever the queue entry's RecordFailure tracked.
func (s *Store) MarkSyncError(ctx context.Context, entityType, id string) error {
	return s.setSyncStatus(ctx, entityType, id, models.SyncStatusError)
}

func (s *Store) setSyncStatus(ctx context.Context, entityType, id string, status models.SyncStatus) error {
	if err := s.ready(); err != nil {
		return err
	}

	table, ok := tableNameFor(entityType)
	if !ok {
		return fmt.Errorf("unknown entity type %q", entityType)
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE "+table+" SET local_sync_status = ? WHERE id = ?",
		string(status), id)
	if err != nil {
		return fmt.Errorf("failed to set %s sync status: %w", entityType, err)
	}
	return nil
}
