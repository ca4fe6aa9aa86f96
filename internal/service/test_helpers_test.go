package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodlog/foodlog-cli/internal/db"
	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foodlog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

// fixedClock returns a clock that starts at start and advances one
// millisecond per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Millisecond)
		return t
	}
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestState(t *testing.T, adapter storage.Adapter) *service.State {
	t.Helper()
	if adapter == nil {
		adapter = storage.NewMemoryAdapter()
	}
	st, err := service.OpenState(adapter, service.Options{
		Now:      fixedClock(testNow),
		Location: time.UTC,
	})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	return st
}

func draft(name, meal, calories, when string) model.EntryDraft {
	return model.EntryDraft{FoodName: name, MealType: meal, Calories: calories, Time: when}
}

func ptr[T any](v T) *T {
	return &v
}
