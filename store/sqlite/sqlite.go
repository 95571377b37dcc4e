/*
Package sqlite provides the SQLite-backed ScheduleStore.

PURPOSE:
  Persists the current schedule document in a single-row table. The V2
  JSON document is the storage format — the same interchange shape the
  API serves — so the database stays readable and the schema never has to
  chase the rule model.

KEY TABLE:
  schedule_documents: one row per document ID; the server uses a single
  "default" document today, the ID column leaves room for multi-tenant
  use later.

WAL MODE:
  Opened with WAL (Write-Ahead Logging) so reads don't block the writer.

CONCURRENCY:
  Uses sync.RWMutex around the handle. The write path is a single upsert;
  SQLite's own locking covers crash consistency.

USAGE:
  st, err := sqlite.New("./data/schedule.db")
  if err != nil { ... }
  defer st.Close()

SEE ALSO:
  - store: interface definition
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store"
)

const documentID = "default"

// Store implements store.ScheduleStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedule_documents (
		id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored schedule, or store.ErrNotFound.
func (s *Store) Load(ctx context.Context) (schedule.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var document string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM schedule_documents WHERE id = ?`, documentID,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Schedule{}, store.ErrNotFound
	}
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("load schedule: %w", err)
	}

	var out schedule.Schedule
	if err := json.Unmarshal([]byte(document), &out); err != nil {
		return schedule.Schedule{}, fmt.Errorf("decode stored schedule: %w", err)
	}
	return out, nil
}

// Save upserts the schedule document.
func (s *Store) Save(ctx context.Context, sched schedule.Schedule) error {
	data, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedule_documents (id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`,
		documentID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}
