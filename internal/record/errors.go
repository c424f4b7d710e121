package record

import (
	"errors"
	"fmt"
)

// EncodingError reports a payload or metadata value that cannot be
// represented as text. Local and non-retryable; surfaced to the caller of
// the write that produced it.
type EncodingError struct {
	// Field names which part of the record failed ("payload", "metadata key", ...).
	Field string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode record: %s: %s", e.Field, e.Reason)
}

// CorruptRecordError reports a stored row that cannot be decoded.
// A read that encounters one must abort: skipping the row silently would be
// silent data loss.
type CorruptRecordError struct {
	// Seq is the sequence value as scanned, before validation. May itself
	// be the corrupt part (negative).
	Seq int64

	// Column names the offending column.
	Column string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record at seq %d: column %s: %s", e.Seq, e.Column, e.Reason)
}

// IsEncodingError returns true if the error is an EncodingError.
// Uses errors.As to handle wrapped errors.
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

// IsCorruptRecord returns true if the error is a CorruptRecordError.
// Uses errors.As to handle wrapped errors.
func IsCorruptRecord(err error) bool {
	var ce *CorruptRecordError
	return errors.As(err, &ce)
}
