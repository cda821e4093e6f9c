package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hatchling/models"

	"github.com/google/uuid"
)

// Repository is the CRUD surface for one entity kind. All thirteen kinds
// share this implementation; only the table descriptor differs.
type Repository[T models.Entity] struct {
	store *Store
	table Table[T]
}

func NewRepository[T models.Entity](store *Store, table Table[T]) *Repository[T] {
	return &Repository[T]{store: store, table: table}
}

// New returns an empty entity of this repository's kind, for request
// decoding.
func (r *Repository[T]) New() T {
	return r.table.New()
}

func (r *Repository[T]) EntityType() string {
	return r.table.EntityType
}

// Create assigns the id, lifecycle timestamps and default sync metadata,
// then commits the row insert and its create queue entry as one
// transaction. The caller supplies domain fields plus parent/actor ids;
// everything else is overwritten here.
func (r *Repository[T]) Create(ctx context.Context, e T) (T, error) {
	var zero T

	m := e.Meta()
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	if m.Timestamp.IsZero() {
		m.Timestamp = now
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	m.SyncedAt = nil
	m.IsDeleted = false
	m.LocalSyncStatus = models.SyncStatusPending
	m.ServerVersion = nil

	entry, err := r.newQueueEntry(models.OperationCreate, e)
	if err != nil {
		return zero, err
	}

	err = r.store.commitMutation(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.table.insertSQL(), r.table.insertValues(e)...)
		return err
	}, entry)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", r.table.EntityType, err)
	}

	return e, nil
}

// Get returns the entity, or the zero value if it is absent or
// tombstoned.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := r.store.ready(); err != nil {
		return zero, err
	}

	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+r.table.selectColumns()+" FROM "+r.table.Name+" WHERE id = ? AND is_deleted = 0", id)

	e, err := r.table.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", r.table.EntityType, err)
	}
	return e, nil
}

// List returns up to limit non-deleted entities for a parent, most
// recent domain timestamp first. Every consumer assumes that ordering.
func (r *Repository[T]) List(ctx context.Context, parentID string, limit int) ([]T, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 50
	}

	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+r.table.selectColumns()+" FROM "+r.table.Name+
			" WHERE parent_id = ? AND is_deleted = 0 ORDER BY timestamp DESC LIMIT ?",
		parentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.table.EntityType, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Update merges a typed patch into the stored row, refreshes updated_at,
// forces the row back to pending and commits the full merged snapshot
// together with its update queue entry. Returns the zero value if the
// target is absent or tombstoned.
func (r *Repository[T]) Update(ctx context.Context, id string, patch models.Patch[T]) (T, error) {
	var zero T

	e, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if any(e) == any(zero) {
		return zero, nil
	}

	patch.Apply(e)
	m := e.Meta()
	m.UpdatedAt = time.Now().UTC()
	// An unsynced local edit invalidates any prior confirmed state
	m.LocalSyncStatus = models.SyncStatusPending

	entry, err := r.newQueueEntry(models.OperationUpdate, e)
	if err != nil {
		return zero, err
	}

	err = r.store.commitMutation(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.table.updateSQL(), r.table.updateValues(e)...)
		return err
	}, entry)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", r.table.EntityType, err)
	}

	return e, nil
}

// Delete tombstones the entity and enqueues a minimal {id} delete marker.
// Returns false if the entity is absent or already tombstoned. The
// physical row stays until WipeAll.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	var zero T

	e, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if any(e) == any(zero) {
		return false, nil
	}

	m := e.Meta()
	now := time.Now().UTC()
	m.IsDeleted = true
	m.UpdatedAt = now
	m.LocalSyncStatus = models.SyncStatusPending

	entry, err := r.newQueueEntry(models.OperationDelete, e)
	if err != nil {
		return false, err
	}

	err = r.store.commitMutation(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE "+r.table.Name+" SET is_deleted = 1, updated_at = ?, local_sync_status = ? WHERE id = ?",
			now, string(models.SyncStatusPending), id); err != nil {
			return err
		}
		// Tombstone child rows along with the parent. Local-only: the
		// remote side cascades from the parent's delete entry, so no
		// per-child queue entries are appended.
		for _, child := range r.table.Children {
			if _, err := tx.ExecContext(ctx,
				"UPDATE "+child+" SET is_deleted = 1, updated_at = ?, local_sync_status = ? WHERE parent_id = ? AND is_deleted = 0",
				now, string(models.SyncStatusPending), id); err != nil {
				return err
			}
		}
		return nil
	}, entry)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", r.table.EntityType, err)
	}

	return true, nil
}

// ListPending returns all non-deleted rows still marked pending,
// independent of the queue. This is the materialized fallback view for
// startup catch-up if the queue and per-row status ever diverge.
func (r *Repository[T]) ListPending(ctx context.Context) ([]T, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}

	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+r.table.selectColumns()+" FROM "+r.table.Name+
			" WHERE local_sync_status = ? AND is_deleted = 0 ORDER BY updated_at ASC",
		string(models.SyncStatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending %ss: %w", r.table.EntityType, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *Repository[T]) collect(rows *sql.Rows) ([]T, error) {
	// Initialize with empty slice to avoid returning nil
	items := make([]T, 0)
	for rows.Next() {
		e, err := r.table.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *Repository[T]) newQueueEntry(op models.Operation, e T) (*models.QueueEntry, error) {
	m := e.Meta()

	var (
		data []byte
		err  error
	)
	if op == models.OperationDelete {
		// Deletes carry a minimal tombstone marker, not a full snapshot
		data, err = json.Marshal(map[string]string{"id": m.ID})
	} else {
		data, err = json.Marshal(e)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s snapshot: %w", r.table.EntityType, err)
	}

	return &models.QueueEntry{
		ID:         uuid.NewString(),
		EntityType: r.table.EntityType,
		EntityID:   m.ID,
		Operation:  op,
		Data:       data,
		Timestamp:  time.Now().UTC(),
		ActorID:    m.ActorID,
	}, nil
}
