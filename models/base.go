package models

import (
	"encoding/json"
	"time"
)

// SyncStatus tracks a row's position in the local sync lifecycle.
// Only the external sync coordinator moves rows to synced, conflict or
// error; any local edit moves them back to pending.
type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusConflict SyncStatus = "conflict"
	SyncStatusError    SyncStatus = "error"
)

// Operation is the kind of mutation recorded in the change queue.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// SyncMeta holds the base fields every tracked entity carries. Entities
// embed it, so entity JSON is flat and queue snapshots include the full
// sync state of the row at mutation time.
type SyncMeta struct {
	ID              string     `json:"id"`
	ParentID        string     `json:"parent_id" validate:"required"`
	ActorID         string     `json:"actor_id"`
	Timestamp       time.Time  `json:"timestamp"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	SyncedAt        *time.Time `json:"synced_at,omitempty"`
	IsDeleted       bool       `json:"is_deleted"`
	LocalSyncStatus SyncStatus `json:"local_sync_status"`
	ServerVersion   *int64     `json:"server_version,omitempty"`
}

// Meta returns the embedded base fields. It is the single method of the
// Entity interface, so any struct embedding SyncMeta satisfies it.
func (m *SyncMeta) Meta() *SyncMeta { return m }

// Entity is implemented by every tracked record via the embedded SyncMeta.
type Entity interface {
	Meta() *SyncMeta
}

// Patch is a typed partial update for one entity kind. Only fields set on
// the patch are copied onto the entity; everything else is left alone.
type Patch[T any] interface {
	Apply(T)
}

// QueueEntry is one pending mutation awaiting remote acknowledgment.
// Data is the full serialized snapshot of the entity at mutation time for
// create/update, and a bare {"id": ...} marker for delete.
type QueueEntry struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Operation  Operation       `json:"operation"`
	Data       json.RawMessage `json:"data"`
	Timestamp  time.Time       `json:"timestamp"`
	ActorID    string          `json:"actor_id"`
	RetryCount int             `json:"retry_count"`
	LastError  string          `json:"last_error,omitempty"`
}
