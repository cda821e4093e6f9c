package database

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hatchling/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)

	entry := &models.QueueEntry{
		EntityType: "feeding",
		EntityID:   "feed-1",
		Operation:  models.OperationCreate,
		Data:       json.RawMessage(`{"id":"feed-1"}`),
		ActorID:    "caregiver-1",
	}
	require.NoError(t, queue.Enqueue(ctx, entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())

	entries, err := queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].RetryCount)
	assert.Empty(t, entries[0].LastError)
}

func TestDequeueAllOldestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Two updates to the same entity: replay order decides the final
	// remote state, so oldest must come first
	for i, notes := range []string{"first", "second", "third"} {
		data, _ := json.Marshal(map[string]string{"id": "sleep-1", "notes": notes})
		err := queue.Enqueue(ctx, &models.QueueEntry{
			EntityType: "sleep",
			EntityID:   "sleep-1",
			Operation:  models.OperationUpdate,
			Data:       data,
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.Before(entries[i-1].Timestamp))
	}

	var last map[string]string
	require.NoError(t, json.Unmarshal(entries[2].Data, &last))
	assert.Equal(t, "third", last["notes"])
}

func TestDequeueAllInsertionOrderTieBreak(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c"} {
		err := queue.Enqueue(ctx, &models.QueueEntry{
			ID:         id,
			EntityType: "diaper",
			EntityID:   "diaper-1",
			Operation:  models.OperationUpdate,
			Data:       json.RawMessage(`{}`),
			Timestamp:  ts,
		})
		require.NoError(t, err)
	}

	entries, err := queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
}

func TestAcknowledgeRemovesEntry(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)

	entry := &models.QueueEntry{
		EntityType: "feeding",
		EntityID:   "feed-1",
		Operation:  models.OperationCreate,
		Data:       json.RawMessage(`{}`),
	}
	require.NoError(t, queue.Enqueue(ctx, entry))

	require.NoError(t, queue.Acknowledge(ctx, entry.ID))

	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Acknowledging an already-removed entry is harmless
	require.NoError(t, queue.Acknowledge(ctx, entry.ID))
}

func TestRecordFailureIncrementsRetryCount(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)

	entry := &models.QueueEntry{
		EntityType: "feeding",
		EntityID:   "feed-1",
		Operation:  models.OperationUpdate,
		Data:       json.RawMessage(`{}`),
	}
	require.NoError(t, queue.Enqueue(ctx, entry))

	require.NoError(t, queue.RecordFailure(ctx, entry.ID, "network error"))

	entries, err := queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].RetryCount)
	assert.Equal(t, "network error", entries[0].LastError)

	// The entry stays in place for as many retries as the coordinator
	// wants
	require.NoError(t, queue.RecordFailure(ctx, entry.ID, "timeout"))

	entries, err = queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].RetryCount)
	assert.Equal(t, "timeout", entries[0].LastError)
}

func TestPendingCount(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	queue := NewQueue(store)

	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		err := queue.Enqueue(ctx, &models.QueueEntry{
			EntityType: "feeding",
			EntityID:   "feed-1",
			Operation:  models.OperationUpdate,
			Data:       json.RawMessage(`{}`),
		})
		require.NoError(t, err)
	}

	count, err = queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
