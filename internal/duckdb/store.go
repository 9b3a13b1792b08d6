// Package duckdb materializes assembled tables into a DuckDB database,
// the queryable backend analog of handing rows to a dataframe constructor.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for materialized variant tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureMetadata(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure metadata table: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureMetadata creates the metadata table if it doesn't exist.
func (s *Store) ensureMetadata() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS vcframe_metadata (
		key VARCHAR PRIMARY KEY,
		value VARCHAR
	)`)
	return err
}

// SetMetadata records a key/value pair describing the materialized data
// (source path, region, field selection).
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO vcframe_metadata (key, value) VALUES (?, ?)`,
		key, value)
	return err
}

// GetMetadata returns a previously recorded metadata value, or "" when the
// key is not set.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM vcframe_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
