package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrUnavailable marks a connectivity-level failure, as opposed to a
// row-level write problem. The importer aborts a run on this sentinel and
// counts everything else as a skip.
var ErrUnavailable = errors.New("store unavailable")

// Store is the SQLite-backed price ledger.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and applies the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite behaves best on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the raw connection for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// classifyErr upgrades an exec error to ErrUnavailable when the connection
// itself is gone, so the caller can tell row problems from outages.
func (s *Store) classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if pingErr := s.db.Ping(); pingErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
