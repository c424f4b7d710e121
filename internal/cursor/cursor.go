// Package cursor tracks per-reader consumption positions: the mapping from a
// reader identity to the highest sequence that reader has already consumed.
//
// Positions are in-memory only and live for the lifetime of the Stream that
// owns the tracker. Two processes reading with "the same" identity therefore
// do NOT share a position; that is a documented limitation of ephemeral
// cursors, not a bug.
package cursor

import "sync"

// Tracker maps reader identities to last-seen sequence numbers.
//
// Distinct identities hold fully independent positions, so every reader sees
// the full row history on its own schedule (broadcast semantics, not
// competing-consumer semantics).
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Tracker struct {
	mu  sync.Mutex
	pos map[string]uint64
}

// NewTracker creates an empty tracker. Unknown identities read as position 0,
// meaning nothing consumed yet; a cursor springs into existence on its first
// Advance.
func NewTracker() *Tracker {
	return &Tracker{pos: make(map[string]uint64)}
}

// Advance moves a reader's position to max(current, seq). Monotonic: a read
// racing with a concurrent read for the same identity can never un-consume
// rows, because a stale smaller value is a no-op.
func (t *Tracker) Advance(reader string, seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq > t.pos[reader] {
		t.pos[reader] = seq
	}
}

// PositionOf returns the reader's last-seen sequence, 0 if unknown.
func (t *Tracker) PositionOf(reader string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos[reader]
}

// Readers returns the identities that currently hold a position.
// Order is unspecified.
func (t *Tracker) Readers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	readers := make([]string, 0, len(t.pos))
	for r := range t.pos {
		readers = append(readers, r)
	}
	return readers
}
