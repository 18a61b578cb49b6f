package store

import (
	"database/sql"
	"errors"
	"time"
)

// Get returns the value stored under key. ok is false when the key is absent.
func (db *DB) Get(key string) (value string, ok bool, err error) {
	err = db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

// Remove deletes key. Removing a missing key is not an error.
func (db *DB) Remove(key string) error {
	_, err := db.Exec(`DELETE FROM local_storage WHERE key = ?`, key)
	return err
}
