package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/tablestream/internal/cursor"
	"github.com/roach88/tablestream/internal/record"
	"github.com/roach88/tablestream/internal/storage"
)

// Config holds the recognized stream construction options.
type Config struct {
	// Mode selects the capability set. The zero value is ModeRead, the same
	// default file objects use.
	Mode Mode

	// Metadata is attached to every record this stream writes. When nil and
	// the mode is writable, record.NewSessionMetadata() is captured at
	// construction, so all records of one stream share one session.
	Metadata record.Metadata
}

// Stream binds one storage port, one session, and zero-or-more reader
// cursors. It exclusively owns the port's connection; Close releases it.
//
// State machine: Open → Closed, terminal. Every operation except Close fails
// with ErrClosed once Closed.
type Stream struct {
	port    storage.Port
	mode    Mode
	meta    record.Metadata
	cursors *cursor.Tracker

	mu     sync.Mutex
	closed bool
}

// New constructs a stream over an already-opened storage port. The port must
// be bound to an existing, provisioned table; a missing table surfaces as
// *storage.TableMissingError on the first operation if the adapter did not
// already reject it at open.
func New(port storage.Port, cfg Config) (*Stream, error) {
	if !cfg.Mode.valid() {
		return nil, fmt.Errorf("invalid mode %d: must be ModeRead, ModeWrite, or ModeReadWrite", int(cfg.Mode))
	}

	meta := cfg.Metadata
	if meta == nil && cfg.Mode.Writable() {
		meta = record.NewSessionMetadata()
	}

	return &Stream{
		port:    port,
		mode:    cfg.Mode,
		meta:    meta,
		cursors: cursor.NewTracker(),
	}, nil
}

// Mode returns the capability set the stream was opened with.
func (s *Stream) Mode() Mode {
	return s.mode
}

// Write appends one record carrying the stream's session metadata.
// Append-only: no update or delete of existing rows is ever exposed.
//
// Fails with ErrClosed after Close, ErrNotWritable in read mode,
// *record.EncodingError for non-text payloads, and *WriteError wrapping any
// storage failure.
func (s *Stream) Write(ctx context.Context, text string) error {
	if s.isClosed() {
		return ErrClosed
	}
	if !s.mode.Writable() {
		return ErrNotWritable
	}

	enc, err := record.Encode(text, s.meta)
	if err != nil {
		return err
	}

	if _, err := s.port.Append(ctx, enc); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// ReadNew returns every payload with sequence strictly greater than the
// reader's last-seen sequence, in ascending sequence order, and advances
// that reader's cursor to the highest sequence returned. Nothing new yields
// an empty (non-nil) slice and leaves the cursor unchanged, so two
// back-to-back calls with no intervening writes are both empty.
//
// The result is a snapshot: rows appended concurrently with the scan may be
// missed and are picked up by the next call.
//
// A row that fails to decode aborts the whole call with *ReadError wrapping
// *record.CorruptRecordError, and the cursor does not move: corrupt data is
// never skipped silently, and nothing from the failed call counts as
// consumed.
func (s *Stream) ReadNew(ctx context.Context, reader string) ([]string, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	if !s.mode.Readable() {
		return nil, ErrNotReadable
	}

	last := s.cursors.PositionOf(reader)
	raws, err := s.port.ScanFrom(ctx, last)
	if err != nil {
		return nil, &ReadError{Reader: reader, Err: err}
	}

	payloads := make([]string, 0, len(raws))
	maxSeq := last
	for _, raw := range raws {
		rec, err := record.Decode(raw)
		if err != nil {
			return nil, &ReadError{Reader: reader, Err: err}
		}
		payloads = append(payloads, rec.Payload)
		if rec.Seq > maxSeq {
			maxSeq = rec.Seq
		}
	}

	if maxSeq > last {
		s.cursors.Advance(reader, maxSeq)
	}
	return payloads, nil
}

// ReadLine returns the single oldest payload the reader has not yet seen and
// advances its cursor by exactly that one row. ok is false at end of stream.
//
// Error behavior matches ReadNew.
func (s *Stream) ReadLine(ctx context.Context, reader string) (line string, ok bool, err error) {
	if s.isClosed() {
		return "", false, ErrClosed
	}
	if !s.mode.Readable() {
		return "", false, ErrNotReadable
	}

	last := s.cursors.PositionOf(reader)
	raws, err := s.port.ScanFrom(ctx, last)
	if err != nil {
		return "", false, &ReadError{Reader: reader, Err: err}
	}
	if len(raws) == 0 {
		return "", false, nil
	}

	rec, err := record.Decode(raws[0])
	if err != nil {
		return "", false, &ReadError{Reader: reader, Err: err}
	}

	s.cursors.Advance(reader, rec.Seq)
	return rec.Payload, true, nil
}

// End returns the highest sequence currently present in the backing table,
// ok=false when the table is empty. The file-size analogue: a reader whose
// Position equals End has consumed everything written so far.
func (s *Stream) End(ctx context.Context) (uint64, bool, error) {
	if s.isClosed() {
		return 0, false, ErrClosed
	}
	seq, ok, err := s.port.MaxSequence(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("stream end: %w", err)
	}
	return seq, ok, nil
}

// Position returns the reader's last-seen sequence, 0 if the reader has
// consumed nothing.
func (s *Stream) Position(reader string) uint64 {
	return s.cursors.PositionOf(reader)
}

// Close releases the bound storage port and moves the stream to its terminal
// state. Idempotent: already-closed is success, and a failure releasing the
// underlying resource is reported once, on the call that did the release.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.port.Close()
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
