// Package testutil provides shared helpers for tests that need a real
// database.
package testutil

import (
	"context"
	"testing"

	"github.com/bankflowhq/bankflow/internal/service"
	"github.com/bankflowhq/bankflow/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database and registers
// cleanup with the test.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
