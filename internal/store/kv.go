package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// firstLaunchValue is what the first-launch marker holds once set.
const firstLaunchValue = "true"

// Load returns the blob stored under key. A missing key reports ok=false
// with a nil error.
func (s *Store) Load(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrClosed
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save upserts the blob under key.
func (s *Store) Save(key string, value []byte) error {
	if s.db == nil {
		return ErrClosed
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now,
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// FirstLaunch reports true exactly once per database: the first call sets
// the marker stored under key.
func (s *Store) FirstLaunch(key string) (bool, error) {
	if s.db == nil {
		return false, ErrClosed
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, firstLaunchValue, now,
	)
	if err != nil {
		return false, fmt.Errorf("first launch %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("first launch %q: %w", key, err)
	}
	return n == 1, nil
}

// Keys lists every stored key in order.
func (s *Store) Keys() ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
