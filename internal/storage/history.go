package storage

import (
	"fmt"
	"time"

	"github.com/saiprannav/weatherdesk/internal/models"
)

// AddLocationHistory appends a search entry and fills in its assigned ID.
func (s *Store) AddLocationHistory(entry *models.LocationSearch) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO location_history (query, resolved_name, latitude, longitude, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Query,
		entry.ResolvedName,
		entry.Latitude,
		entry.Longitude,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("saving location history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	entry.ID = id

	return nil
}

// RecentLocations returns the most recent searches, newest first, with
// duplicates on resolved name collapsed to the latest entry.
func (s *Store) RecentLocations(limit int) ([]models.LocationSearch, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, query, resolved_name, latitude, longitude, timestamp
		FROM location_history
		WHERE id IN (
			SELECT MAX(id) FROM location_history GROUP BY resolved_name
		)
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying location history: %w", err)
	}
	defer rows.Close()

	var entries []models.LocationSearch
	for rows.Next() {
		var e models.LocationSearch
		if err := rows.Scan(&e.ID, &e.Query, &e.ResolvedName, &e.Latitude, &e.Longitude, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning location history: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// PruneLocationHistory deletes entries older than the cutoff and reports
// how many were removed.
func (s *Store) PruneLocationHistory(olderThan time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM location_history WHERE timestamp < ?", olderThan)
	if err != nil {
		return 0, fmt.Errorf("pruning location history: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking prune result: %w", err)
	}
	return n, nil
}

// ClearLocationHistory removes all search entries.
func (s *Store) ClearLocationHistory() error {
	if _, err := s.db.Exec("DELETE FROM location_history"); err != nil {
		return fmt.Errorf("clearing location history: %w", err)
	}
	return nil
}
