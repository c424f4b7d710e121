package stream

import "fmt"

// Mode is the capability set a Stream is opened with.
type Mode int

const (
	// ModeRead permits ReadNew/ReadLine only (stdin-like).
	ModeRead Mode = iota

	// ModeWrite permits Write only (stdout/stderr-like).
	ModeWrite

	// ModeReadWrite permits both.
	ModeReadWrite
)

// ParseMode recognizes the short spellings "r", "w", "rw" and the long
// spellings "read", "write", "read-write".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "r", "read":
		return ModeRead, nil
	case "w", "write":
		return ModeWrite, nil
	case "rw", "read-write":
		return ModeReadWrite, nil
	}
	return 0, fmt.Errorf("invalid mode %q: must be one of r, w, rw", s)
}

// String returns the long spelling.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "read-write"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Readable reports whether the mode includes the read capability.
func (m Mode) Readable() bool {
	return m == ModeRead || m == ModeReadWrite
}

// Writable reports whether the mode includes the write capability.
func (m Mode) Writable() bool {
	return m == ModeWrite || m == ModeReadWrite
}

func (m Mode) valid() bool {
	return m == ModeRead || m == ModeWrite || m == ModeReadWrite
}
