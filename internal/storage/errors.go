package storage

import (
	"errors"
	"fmt"
)

// UnavailableError reports a transient backend failure: broken connection,
// lock timeout, interrupted query. The caller may retry the whole
// Write/ReadNew call; the port itself never retries, since replaying an
// Append without an idempotency token risks duplicate rows.
type UnavailableError struct {
	// Op is the port operation that failed ("append", "scan", ...).
	Op string

	// Err is the underlying engine error.
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// TableMissingError reports that the target table does not exist. Fatal and
// never retried: provisioning the table is the caller's responsibility and
// happens once, before the port is constructed.
type TableMissingError struct {
	// Table is the missing table's name.
	Table string
}

// Error implements the error interface.
func (e *TableMissingError) Error() string {
	return fmt.Sprintf("table missing: %s", e.Table)
}

// IsUnavailable returns true if the error is an UnavailableError.
// Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsTableMissing returns true if the error is a TableMissingError.
// Uses errors.As to handle wrapped errors.
func IsTableMissing(err error) bool {
	var te *TableMissingError
	return errors.As(err, &te)
}
