package sqlite

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/tablestream/internal/storage"
)

// validTable restricts table references to plain SQL identifiers. Table names
// are interpolated into statements (placeholders cannot name a table), so
// anything else is rejected up front.
var validTable = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store implements storage.Port on a single SQLite table.
// One Store exclusively owns one connection; callers needing concurrent
// writers open separate Stores against the same file.
type Store struct {
	db    *sql.DB
	table string

	mu     sync.Mutex
	closed bool
}

// Open opens the SQLite database at path and binds the store to table.
//
// The connection is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// The target table must already exist (see Provision); Open fails with
// *storage.TableMissingError otherwise. A broken or unopenable database
// fails with *storage.UnavailableError.
func Open(path, table string) (*Store, error) {
	if !validTable.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &storage.UnavailableError{Op: "open", Err: err}
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &storage.UnavailableError{Op: "open", Err: err}
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &storage.UnavailableError{Op: "open", Err: err}
	}

	if err := tableExists(db, table); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, table: table}, nil
}

// Close releases the database connection. Idempotent: the release error, if
// any, is reported once; later calls return nil.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Table returns the table reference this store is bound to.
func (s *Store) Table() string {
	return s.table
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// tableExists checks sqlite_master for the target table.
func tableExists(db *sql.DB, table string) error {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
		table,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return &storage.TableMissingError{Table: table}
	}
	if err != nil {
		return &storage.UnavailableError{Op: "open", Err: err}
	}
	return nil
}

// mapError translates a driver error into the storage taxonomy. SQLite has
// no dedicated error code for a dropped table, so the message is matched.
func (s *Store) mapError(op string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return &storage.TableMissingError{Table: s.table}
	}
	return &storage.UnavailableError{Op: op, Err: err}
}
