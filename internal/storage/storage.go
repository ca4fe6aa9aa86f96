// Package storage persists named string blobs. Every call is all-or-nothing:
// a failed Set leaves the previous value in place.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
)

const (
	KeyEntries = "foodEntries"
	KeyProfile = "userProfile"
)

type Adapter interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type SQLiteAdapter struct {
	db *sql.DB
}

// NewSQLiteAdapter expects the kv_store migration to be applied.
func NewSQLiteAdapter(db *sql.DB) *SQLiteAdapter {
	return &SQLiteAdapter{db: db}
}

func (a *SQLiteAdapter) Get(key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("storage key is required")
	}
	var value string
	err := a.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (a *SQLiteAdapter) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("storage key is required")
	}
	_, err := a.db.Exec(`
INSERT INTO kv_store(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// MemoryAdapter keeps blobs in a map. It backs tests and dry runs.
type MemoryAdapter struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{values: map[string]string{}}
}

func (a *MemoryAdapter) Get(key string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.values[key]
	return v, ok, nil
}

func (a *MemoryAdapter) Set(key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[key] = value
	return nil
}
