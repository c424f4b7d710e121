package stream

import (
	"errors"
	"fmt"
)

// ErrClosed reports an operation on a closed stream. Always a programming
// error (use-after-close), never worth retrying.
var ErrClosed = errors.New("stream is closed")

// ErrNotReadable reports a read on a stream opened without the read
// capability.
var ErrNotReadable = errors.New("stream is not readable")

// ErrNotWritable reports a write on a stream opened without the write
// capability.
var ErrNotWritable = errors.New("stream is not writable")

// WriteError wraps a storage failure during Write. The caller may retry the
// whole Write call; the stream performs no automatic retries, since
// replaying an append risks duplicate rows.
type WriteError struct {
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("stream write: %v", e.Err)
}

// Unwrap returns the underlying storage error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadError wraps a storage or decode failure during ReadNew/ReadLine.
// A decode failure (record.CorruptRecordError) aborts the whole read with
// the reader's cursor unchanged: corrupt rows are never skipped silently.
type ReadError struct {
	// Reader is the identity whose read failed.
	Reader string

	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("stream read (reader=%s): %v", e.Reader, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}
