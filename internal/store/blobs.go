package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Blob keys.
const (
	KeyActivities = "activities"
	KeyLogs       = "logs"
	KeyGoals      = "goals"
)

// GetBlob returns the raw value stored under key. ok is false when the key
// has never been written.
func (s *Store) GetBlob(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get blob %q: %w", key, err)
	}
	return value, true, nil
}

// PutBlob overwrites the value stored under key.
func (s *Store) PutBlob(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}

// DeleteBlob removes key. Missing keys are not an error.
func (s *Store) DeleteBlob(key string) error {
	if _, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}
