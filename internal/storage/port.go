package storage

import (
	"context"

	"github.com/roach88/tablestream/internal/record"
)

// Port is the minimal operation set the stream core requires from a backing
// engine, scoped to one table. Implementations map engine-specific failures
// into *UnavailableError and *TableMissingError.
//
// All operations may block on I/O or engine locks; any timeout is enforced
// through the supplied context and surfaced as *UnavailableError.
type Port interface {
	// Append inserts one encoded row and returns the sequence the engine
	// assigned to it. Sequence assignment is atomic with the insert: no two
	// concurrent Appends observe the same sequence.
	Append(ctx context.Context, enc record.Encoded) (uint64, error)

	// ScanFrom returns every row with sequence strictly greater than after,
	// ordered by sequence ascending. Each call is a snapshot as of call
	// time, not a live subscription: rows appended concurrently with the
	// scan may be missed and are picked up by the next call. Restartable by
	// calling again with a new bound.
	ScanFrom(ctx context.Context, after uint64) ([]record.Raw, error)

	// MaxSequence returns the highest sequence present in the table.
	// ok is false when the table is empty.
	MaxSequence(ctx context.Context) (seq uint64, ok bool, err error)

	// Close releases the underlying connection. Idempotent.
	Close() error
}
