package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hatchling/models"

	"github.com/google/uuid"
)

// Queue is the append-only log of pending mutations. Repositories append
// to it transactionally through commitMutation; the external sync
// coordinator drains it through DequeueAll/Acknowledge/RecordFailure.
type Queue struct {
	store *Store
}

func NewQueue(store *Store) *Queue {
	return &Queue{store: store}
}

const insertQueueSQL = `INSERT INTO sync_queue
		(id, entity_type, entity_id, operation, data, timestamp, actor_id, retry_count, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, NULL)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertQueueEntry(ctx context.Context, db execer, entry *models.QueueEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, insertQueueSQL,
		entry.ID, entry.EntityType, entry.EntityID, string(entry.Operation),
		string(entry.Data), entry.Timestamp, entry.ActorID)
	return err
}

// Enqueue appends a standalone entry outside a repository mutation.
func (q *Queue) Enqueue(ctx context.Context, entry *models.QueueEntry) error {
	if err := q.store.ready(); err != nil {
		return err
	}
	if err := insertQueueEntry(ctx, q.store.db, entry); err != nil {
		return fmt.Errorf("failed to enqueue change: %w", err)
	}
	return nil
}

// DequeueAll returns every entry oldest-first. This is the order the
// sync coordinator must replay them in: later entries for the same
// entity id supersede earlier ones.
func (q *Queue) DequeueAll(ctx context.Context) ([]models.QueueEntry, error) {
	if err := q.store.ready(); err != nil {
		return nil, err
	}

	rows, err := q.store.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, operation, data, timestamp, actor_id, retry_count, last_error
		FROM sync_queue
		ORDER BY timestamp ASC, seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	defer rows.Close()

	entries := make([]models.QueueEntry, 0)
	for rows.Next() {
		var entry models.QueueEntry
		var operation string
		var data []byte
		var lastError sql.NullString

		if err := rows.Scan(
			&entry.ID, &entry.EntityType, &entry.EntityID, &operation,
			&data, &entry.Timestamp, &entry.ActorID, &entry.RetryCount, &lastError,
		); err != nil {
			return nil, err
		}

		entry.Operation = models.Operation(operation)
		entry.Data = data
		if lastError.Valid {
			entry.LastError = lastError.String
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Acknowledge removes an entry after the remote side confirmed it. There
// is no partial acknowledgment.
func (q *Queue) Acknowledge(ctx context.Context, entryID string) error {
	if err := q.store.ready(); err != nil {
		return err
	}
	if _, err := q.store.db.ExecContext(ctx, "DELETE FROM sync_queue WHERE id = ?", entryID); err != nil {
		return fmt.Errorf("failed to acknowledge queue entry: %w", err)
	}
	return nil
}

// RecordFailure increments the entry's retry count and stores the error,
// leaving the entry in place. Backoff and abandonment are the sync
// coordinator's problem.
func (q *Queue) RecordFailure(ctx context.Context, entryID, message string) error {
	if err := q.store.ready(); err != nil {
		return err
	}
	if _, err := q.store.db.ExecContext(ctx, `
		UPDATE sync_queue SET
			retry_count = retry_count + 1,
			last_error = ?
		WHERE id = ?
	`, message, entryID); err != nil {
		return fmt.Errorf("failed to record sync failure: %w", err)
	}
	return nil
}

// PendingCount backs the user-visible "N unsynced changes" indicator.
func (q *Queue) PendingCount(ctx context.Context) (int, error) {
	if err := q.store.ready(); err != nil {
		return 0, err
	}
	var count int
	if err := q.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sync_queue").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return count, nil
}
