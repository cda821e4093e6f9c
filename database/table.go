package database

import (
	"database/sql"
	"strings"

	"hatchling/models"
)

// Table describes how one entity kind maps onto its SQLite table: the
// table name, the wire entity type, the domain columns in declaration
// order, and how to bind/scan those columns against the entity struct.
// The base columns are shared and handled here, so a descriptor only
// deals with its own domain fields.
type Table[T models.Entity] struct {
	Name       string
	EntityType string
	Columns    []string
	// Children lists child table names whose rows are tombstoned along
	// with a row of this table. Only set on the babies table.
	Children []string
	New      func() T
	Values   func(T) []any
	Dest     func(T) []any
}

var metaColumns = []string{
	"id", "parent_id", "actor_id", "timestamp",
	"created_at", "updated_at", "synced_at",
	"is_deleted", "local_sync_status", "server_version",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (t Table[T]) selectColumns() string {
	cols := append(append([]string{}, metaColumns...), t.Columns...)
	return strings.Join(cols, ", ")
}

func (t Table[T]) insertSQL() string {
	cols := append(append([]string{}, metaColumns...), t.Columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + t.Name + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"
}

// updateSQL writes the full row back (snapshot overwrite), every column
// except the immutable id.
func (t Table[T]) updateSQL() string {
	cols := append(append([]string{}, metaColumns[1:]...), t.Columns...)
	var b strings.Builder
	b.WriteString("UPDATE " + t.Name + " SET ")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col + " = ?")
	}
	b.WriteString(" WHERE id = ?")
	return b.String()
}

func (t Table[T]) insertValues(e T) []any {
	return append(metaValues(e.Meta()), t.Values(e)...)
}

func (t Table[T]) updateValues(e T) []any {
	m := e.Meta()
	values := append(metaValues(m)[1:], t.Values(e)...)
	return append(values, m.ID)
}

func metaValues(m *models.SyncMeta) []any {
	deleted := 0
	if m.IsDeleted {
		deleted = 1
	}
	return []any{
		m.ID, m.ParentID, m.ActorID, m.Timestamp,
		m.CreatedAt, m.UpdatedAt, m.SyncedAt,
		deleted, string(m.LocalSyncStatus), m.ServerVersion,
	}
}

func (t Table[T]) scanRow(row rowScanner) (T, error) {
	e := t.New()
	m := e.Meta()

	var (
		syncedAt      sql.NullTime
		deleted       int
		status        string
		serverVersion sql.NullInt64
	)

	dest := []any{
		&m.ID, &m.ParentID, &m.ActorID, &m.Timestamp,
		&m.CreatedAt, &m.UpdatedAt, &syncedAt,
		&deleted, &status, &serverVersion,
	}
	dest = append(dest, t.Dest(e)...)

	if err := row.Scan(dest...); err != nil {
		var zero T
		return zero, err
	}

	if syncedAt.Valid {
		ts := syncedAt.Time
		m.SyncedAt = &ts
	}
	m.IsDeleted = deleted == 1
	m.LocalSyncStatus = models.SyncStatus(status)
	if serverVersion.Valid {
		v := serverVersion.Int64
		m.ServerVersion = &v
	}

	return e, nil
}
