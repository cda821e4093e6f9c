package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hatchling/models"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the single durable SQLite connection shared by every
// repository and the change queue. It is constructed explicitly and
// injected; there is no package-level instance.
type Store struct {
	db       *sql.DB
	initOnce sync.Once
	initErr  error
}

func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One shared connection serializes all statements; repositories and
	// the queue assume no parallel writers.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Migrate creates all tables and indexes if absent. It is idempotent, and
// every operation path goes through ready(), so callers that skip the
// explicit call still get an initialized schema.
func (s *Store) Migrate() error {
	return s.ready()
}

func (s *Store) ready() error {
	s.initOnce.Do(func() {
		s.initErr = s.migrate()
	})
	return s.initErr
}

func (s *Store) migrate() error {
	for _, query := range schemaStatements() {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// commitMutation applies a row change and appends its queue entry as one
// transaction. Every repository write goes through here, so a crash can
// never leave a changed row without a queue entry or vice versa.
func (s *Store) commitMutation(ctx context.Context, apply func(*sql.Tx) error, entry *models.QueueEntry) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := apply(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := insertQueueEntry(ctx, tx, entry); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to append queue entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mutation: %w", err)
	}
	return nil
}

// WipeAll removes every row from every entity table and the queue,
// children before parents. Used only for explicit logout/reset; it must
// not run concurrently with ordinary writes.
func (s *Store) WipeAll(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, name := range wipeOrder() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to wipe %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wipe: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
