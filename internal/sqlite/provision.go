package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tablestream/internal/storage"
)

// schemaTemplate is the stream table layout. Held as a template rather than
// an embedded file because the table name is chosen per stream.
//
//   - seq: assigned by the engine on insert, defines total write order.
//     AUTOINCREMENT forbids rowid reuse after deletes, keeping sequences
//     strictly increasing for the table's whole history.
//   - payload: the stored line of text.
//   - metadata: writer session metadata as a JSON object.
//   - created_at: wall-clock insert time, for operators only; ordering
//     always uses seq, never timestamps.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %q (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	payload    TEXT NOT NULL,
	metadata   TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`

// Provision creates the stream table in the database at path if it does not
// already exist. Idempotent.
//
// This is the external-collaborator step the port refuses to perform
// implicitly: call it once before Open.
func Provision(ctx context.Context, path, table string) error {
	if !validTable.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return &storage.UnavailableError{Op: "provision", Err: err}
	}
	defer db.Close()

	if err := applyPragmas(db); err != nil {
		return &storage.UnavailableError{Op: "provision", Err: err}
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf(schemaTemplate, table)); err != nil {
		return &storage.UnavailableError{Op: "provision", Err: err}
	}

	return nil
}
