package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite" // registers the sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store is a key-value blob store backed by a local sqlite file. Each key
// holds one JSON document. Read and write failures are deliberately
// non-fatal: Load falls back to the caller's default, Save drops the write.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the blob for key into the value pointed at by into. It returns
// false when the key is absent or unreadable; the caller keeps its default.
func (s *Store) Load(key string, into interface{}) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		log.Printf("[storage] load %q failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		log.Printf("[storage] load %q: corrupt blob: %v", key, err)
		return false
	}
	return true
}

// Save writes value as the blob for key. Failures are logged and the write
// is dropped.
func (s *Store) Save(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[storage] save %q: marshal failed: %v", key, err)
		return
	}
	_, err = s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), time.Now())
	if err != nil {
		log.Printf("[storage] save %q failed: %v", key, err)
	}
}

// Reset irreversibly removes every stored blob.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM blobs`); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}
