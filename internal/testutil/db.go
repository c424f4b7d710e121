// Package testutil provides shared fixtures for tablestream tests: temporary
// SQLite databases with provisioned stream tables.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/tablestream/internal/sqlite"
)

// DefaultTable is the table name fixtures provision unless told otherwise.
const DefaultTable = "stream_log"

// TempDB creates an empty SQLite database file in a test-scoped temp
// directory and provisions a stream table in it. Returns the database path.
func TempDB(t *testing.T) string {
	t.Helper()
	return TempDBTable(t, DefaultTable)
}

// TempDBTable is TempDB with a caller-chosen table name.
func TempDBTable(t *testing.T, table string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stream.db")
	if err := sqlite.Provision(context.Background(), path, table); err != nil {
		t.Fatalf("provision %s: %v", table, err)
	}
	return path
}

// OpenStore opens a store on a fresh provisioned database and registers its
// release with t.Cleanup. Close is idempotent, so tests that close the store
// themselves are fine.
func OpenStore(t *testing.T) *sqlite.Store {
	t.Helper()

	path := TempDB(t)
	store, err := sqlite.Open(path, DefaultTable)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
