package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saiprannav/weatherdesk/internal/models"
)

// SetSetting stores a key/value preference, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_settings (key, value, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			last_updated = excluded.last_updated`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}

// GetSetting returns the setting for key, or ErrNotFound.
func (s *Store) GetSetting(key string) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.QueryRow(
		"SELECT key, value, last_updated FROM user_settings WHERE key = ?", key,
	).Scan(&setting.Key, &setting.Value, &setting.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying setting %q: %w", key, err)
	}
	return &setting, nil
}

// DeleteSetting removes a preference. Deleting a missing key is not an error.
func (s *Store) DeleteSetting(key string) error {
	if _, err := s.db.Exec("DELETE FROM user_settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	return nil
}
