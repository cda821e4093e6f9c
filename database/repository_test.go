package database

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hatchling/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "hatchling-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := New(dbPath)
	require.NoError(t, err)

	err = store.Migrate()
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// createTestBaby inserts the parent row child records hang off.
func createTestBaby(t *testing.T, store *Store) *models.Baby {
	t.Helper()

	babies := NewRepository(store, Babies)
	baby, err := babies.Create(context.Background(), &models.Baby{
		SyncMeta:  models.SyncMeta{ParentID: "account-1", ActorID: "caregiver-1"},
		Name:      "Aria",
		BirthDate: "2024-01-01",
		Gender:    "female",
	})
	require.NoError(t, err)
	return baby
}

func queueEntries(t *testing.T, store *Store) []models.QueueEntry {
	t.Helper()
	entries, err := NewQueue(store).DequeueAll(context.Background())
	require.NoError(t, err)
	return entries
}

func TestCreateAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	feedings := NewRepository(store, Feedings)

	eventTime := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	created, err := feedings.Create(ctx, &models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: baby.ID, ActorID: "caregiver-1", Timestamp: eventTime},
		Type:     "bottle",
		AmountML: 120,
		Notes:    "morning feed",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	assert.Equal(t, models.SyncStatusPending, created.LocalSyncStatus)
	assert.Nil(t, created.SyncedAt)
	assert.Nil(t, created.ServerVersion)
	assert.False(t, created.IsDeleted)

	got, err := feedings.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, baby.ID, got.ParentID)
	assert.Equal(t, "caregiver-1", got.ActorID)
	assert.Equal(t, "bottle", got.Type)
	assert.Equal(t, 120.0, got.AmountML)
	assert.Equal(t, "morning feed", got.Notes)
	assert.True(t, got.Timestamp.Equal(eventTime))
	assert.Equal(t, models.SyncStatusPending, got.LocalSyncStatus)

	// Exactly one queue entry for the feeding, with a full snapshot
	var feedingEntries []models.QueueEntry
	for _, e := range queueEntries(t, store) {
		if e.EntityType == "feeding" {
			feedingEntries = append(feedingEntries, e)
		}
	}
	require.Len(t, feedingEntries, 1)
	entry := feedingEntries[0]
	assert.Equal(t, created.ID, entry.EntityID)
	assert.Equal(t, models.OperationCreate, entry.Operation)
	assert.Equal(t, "caregiver-1", entry.ActorID)
	assert.Equal(t, 0, entry.RetryCount)
	assert.Empty(t, entry.LastError)

	var snapshot models.Feeding
	require.NoError(t, json.Unmarshal(entry.Data, &snapshot))
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "bottle", snapshot.Type)
	assert.Equal(t, 120.0, snapshot.AmountML)
}

func TestGetMissingReturnsNil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	feedings := NewRepository(store, Feedings)
	got, err := feedings.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMergesAndForcesPending(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	feedings := NewRepository(store, Feedings)

	created, err := feedings.Create(ctx, &models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "breast",
		Side:     "left",
		Notes:    "short",
	})
	require.NoError(t, err)

	// Confirm the row first, so the update has a synced state to invalidate
	require.NoError(t, store.MarkSynced(ctx, "feeding", created.ID, 7))

	synced, err := feedings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, synced.LocalSyncStatus)

	newSide := "right"
	updated, err := feedings.Update(ctx, created.ID, models.FeedingPatch{Side: &newSide})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "right", updated.Side)
	assert.Equal(t, "breast", updated.Type)
	assert.Equal(t, "short", updated.Notes)
	assert.Equal(t, models.SyncStatusPending, updated.LocalSyncStatus)

	got, err := feedings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "right", got.Side)
	assert.Equal(t, models.SyncStatusPending, got.LocalSyncStatus)

	// The update entry carries the full merged snapshot
	entries := queueEntries(t, store)
	last := entries[len(entries)-1]
	assert.Equal(t, models.OperationUpdate, last.Operation)
	assert.Equal(t, created.ID, last.EntityID)

	var snapshot models.Feeding
	require.NoError(t, json.Unmarshal(last.Data, &snapshot))
	assert.Equal(t, "right", snapshot.Side)
	assert.Equal(t, "breast", snapshot.Type)
}

func TestUpdateMissingReturnsNil(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	feedings := NewRepository(store, Feedings)
	notes := "whatever"
	updated, err := feedings.Update(context.Background(), "nope", models.FeedingPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateNeverSyncedSucceeds(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	diapers := NewRepository(store, Diapers)

	created, err := diapers.Create(ctx, &models.Diaper{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "wet",
	})
	require.NoError(t, err)
	require.Nil(t, created.ServerVersion)

	newType := "mixed"
	updated, err := diapers.Update(ctx, created.ID, models.DiaperPatch{Type: &newType})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "mixed", updated.Type)

	ok, err := diapers.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteTombstones(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	diapers := NewRepository(store, Diapers)

	created, err := diapers.Create(ctx, &models.Diaper{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "wet",
	})
	require.NoError(t, err)

	ok, err := diapers.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Reads exclude the tombstone
	got, err := diapers.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	listed, err := diapers.List(ctx, baby.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// The physical row persists until an explicit wipe
	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM diapers WHERE id = ?", created.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Delete entries carry only the id marker
	entries := queueEntries(t, store)
	last := entries[len(entries)-1]
	assert.Equal(t, models.OperationDelete, last.Operation)
	assert.JSONEq(t, `{"id":"`+created.ID+`"}`, string(last.Data))

	// Second delete is a no-op
	ok, err = diapers.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListOrdersByTimestampDesc(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	sleeps := NewRepository(store, Sleeps)

	base := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := sleeps.Create(ctx, &models.Sleep{
			SyncMeta: models.SyncMeta{ParentID: baby.ID, Timestamp: base.Add(time.Duration(i) * time.Hour)},
			Location: "crib",
		})
		require.NoError(t, err)
	}

	listed, err := sleeps.List(ctx, baby.ID, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Most recent first
	assert.True(t, listed[0].Timestamp.After(listed[1].Timestamp))
	assert.True(t, listed[1].Timestamp.After(listed[2].Timestamp))

	limited, err := sleeps.List(ctx, baby.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.True(t, limited[0].Timestamp.Equal(base.Add(2*time.Hour)))
}

func TestMarkSynced(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	growth := NewRepository(store, GrowthEntries)

	created, err := growth.Create(ctx, &models.Growth{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		WeightKG: 5.4,
	})
	require.NoError(t, err)

	require.NoError(t, store.MarkSynced(ctx, "growth", created.ID, 42))

	got, err := growth.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, models.SyncStatusSynced, got.LocalSyncStatus)
	require.NotNil(t, got.SyncedAt)
	require.NotNil(t, got.ServerVersion)
	assert.Equal(t, int64(42), *got.ServerVersion)

	// Any later local edit flips the row back to pending
	weight := 5.6
	updated, err := growth.Update(ctx, created.ID, models.GrowthPatch{WeightKG: &weight})
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, updated.LocalSyncStatus)
}

func TestMarkSyncedUnknownEntityType(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.MarkSynced(context.Background(), "unicorn", "some-id", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestConflictAndErrorStates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	reminders := NewRepository(store, Reminders)

	created, err := reminders.Create(ctx, &models.Reminder{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Title:    "Vitamin D drops",
	})
	require.NoError(t, err)

	require.NoError(t, store.MarkConflict(ctx, "reminder", created.ID))
	got, err := reminders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusConflict, got.LocalSyncStatus)

	require.NoError(t, store.MarkSyncError(ctx, "reminder", created.ID))
	got, err = reminders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusError, got.LocalSyncStatus)

	// No terminal state: the row can still be confirmed
	require.NoError(t, store.MarkSynced(ctx, "reminder", created.ID, 3))
	got, err = reminders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, got.LocalSyncStatus)
}

func TestListPending(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	feedings := NewRepository(store, Feedings)

	first, err := feedings.Create(ctx, &models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "bottle",
	})
	require.NoError(t, err)

	second, err := feedings.Create(ctx, &models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "breast",
	})
	require.NoError(t, err)

	require.NoError(t, store.MarkSynced(ctx, "feeding", first.ID, 1))

	pending, err := feedings.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestBabyDeleteTombstonesChildren(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	babies := NewRepository(store, Babies)
	feedings := NewRepository(store, Feedings)

	feeding, err := feedings.Create(ctx, &models.Feeding{
		SyncMeta: models.SyncMeta{ParentID: baby.ID},
		Type:     "bottle",
	})
	require.NoError(t, err)

	ok, err := babies.Delete(ctx, baby.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Child rows are tombstoned along with the parent, not removed
	got, err := feedings.Get(ctx, feeding.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM feedings WHERE id = ?", feeding.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The fan-out is local-only: one delete entry for the baby, none for
	// the feeding
	deletes := 0
	for _, e := range queueEntries(t, store) {
		if e.Operation == models.OperationDelete {
			deletes++
			assert.Equal(t, "baby", e.EntityType)
		}
	}
	assert.Equal(t, 1, deletes)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	baby := createTestBaby(t, store)
	milestones := NewRepository(store, Milestones)

	created, err := milestones.Create(ctx, &models.Milestone{
		SyncMeta: models.SyncMeta{ParentID: baby.ID, ActorID: "caregiver-2"},
		Title:    "First smile",
		Category: "social",
	})
	require.NoError(t, err)

	entries := queueEntries(t, store)
	last := entries[len(entries)-1]

	var snapshot models.Milestone
	require.NoError(t, json.Unmarshal(last.Data, &snapshot))

	// Snapshots are self-contained: replaying one reproduces the row
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, created.ParentID, snapshot.ParentID)
	assert.Equal(t, created.ActorID, snapshot.ActorID)
	assert.Equal(t, created.Title, snapshot.Title)
	assert.Equal(t, created.Category, snapshot.Category)
	assert.Equal(t, created.LocalSyncStatus, snapshot.LocalSyncStatus)

	again, err := json.Marshal(&snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, string(last.Data), string(again))
}

func TestScenarioEndToEnd(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	babies := NewRepository(store, Babies)
	diapers := NewRepository(store, Diapers)
	queue := NewQueue(store)

	baby, err := babies.Create(ctx, &models.Baby{
		SyncMeta:  models.SyncMeta{ParentID: "account-1"},
		Name:      "Aria",
		BirthDate: "2024-01-01",
		Gender:    "female",
	})
	require.NoError(t, err)

	entries, err := queue.DequeueAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "baby", entries[0].EntityType)
	assert.Equal(t, models.OperationCreate, entries[0].Operation)

	wet, err := diapers.Create(ctx, &models.Diaper{
		SyncMeta: models.SyncMeta{ParentID: baby.ID, Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		Type:     "wet",
	})
	require.NoError(t, err)

	_, err = diapers.Create(ctx, &models.Diaper{
		SyncMeta: models.SyncMeta{ParentID: baby.ID, Timestamp: time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)},
		Type:     "dirty",
	})
	require.NoError(t, err)

	// Most-recent-first: limit 1 returns the dirty change
	latest, err := diapers.List(ctx, baby.ID, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "dirty", latest[0].Type)

	ok, err := diapers.Delete(ctx, wet.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := diapers.List(ctx, baby.ID, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "dirty", remaining[0].Type)

	require.NoError(t, store.WipeAll(ctx))

	gone, err := babies.Get(ctx, baby.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
