package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lumen-lang/lumen/runtime"
)

// ErrNotFound indicates the requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Store persists encoded value snapshots in SQLite, keyed by UUID.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens the snapshot store at path, creating the database and schema
// if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening store: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: creating table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save encodes v and stores it under a fresh id, which it returns.
func (s *Store) Save(v runtime.Value) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO snapshots (id, data) VALUES (?, ?)", id, data,
	); err != nil {
		return "", fmt.Errorf("snapshot: saving %s: %w", id, err)
	}
	return id, nil
}

// Load decodes the snapshot stored under id. The caller owns (and
// releases) the returned value tree.
func (s *Store) Load(id string) (runtime.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow(
		"SELECT data FROM snapshots WHERE id = ?", id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return runtime.Value{}, ErrNotFound
	}
	if err != nil {
		return runtime.Value{}, fmt.Errorf("snapshot: loading %s: %w", id, err)
	}
	return Unmarshal(data)
}

// Delete removes the snapshot stored under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("snapshot: deleting %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("snapshot: deleting %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all stored snapshot ids, sorted.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id FROM snapshots ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("snapshot: listing: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("snapshot: listing: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: listing: %w", err)
	}
	return ids, nil
}
