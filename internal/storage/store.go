// Package storage persists weather records, location history, and user
// settings in a single sqlite database.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

const schema = `
CREATE TABLE IF NOT EXISTS weather_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location_name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	timestamp DATETIME NOT NULL,
	temperature REAL,
	feels_like REAL,
	humidity INTEGER,
	wind_speed REAL,
	condition TEXT,
	date_range_start DATE,
	date_range_end DATE
);
CREATE INDEX IF NOT EXISTS idx_weather_records_location ON weather_records(location_name);
CREATE INDEX IF NOT EXISTS idx_weather_records_timestamp ON weather_records(timestamp);

CREATE TABLE IF NOT EXISTS location_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	resolved_name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_location_history_timestamp ON location_history(timestamp);

CREATE TABLE IF NOT EXISTS user_settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	last_updated DATETIME NOT NULL
);
`

// Store wraps a sqlite handle shared by every component that persists data.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Pass ":memory:" for an ephemeral database in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// modernc sqlite serializes access itself; a single connection avoids
	// table-lock errors from concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
