package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the value stored under key. The bool is false when the slot
// has never been written (or was deleted).
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return value, true, nil
}

// Put replaces the value stored under key
func (db *DB) Put(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (db *DB) Delete(key string) error {
	if _, err := db.conn.Exec(`DELETE FROM kv_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// SlotInfo describes a stored slot without its value
type SlotInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Slots lists every stored slot
func (db *DB) Slots() ([]SlotInfo, error) {
	rows, err := db.conn.Query(`SELECT key, LENGTH(value), updated_at FROM kv_slots ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var s SlotInfo
		if err := rows.Scan(&s.Key, &s.Size, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
