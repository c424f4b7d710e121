package record

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Well-known metadata keys populated by NewSessionMetadata. Callers may add
// their own keys alongside these; none are interpreted by the stream core.
const (
	MetaSessionID = "session_id"
	MetaSessionTS = "session_ts"
	MetaHostname  = "hostname"
	MetaPID       = "pid"
)

// NewSessionMetadata returns the default metadata for a writer session:
// a UUIDv7 session id, the session start timestamp, the hostname, and the
// process id. Captured once at stream construction; every record written by
// that stream carries the same values.
func NewSessionMetadata() Metadata {
	meta := Metadata{
		MetaSessionID: uuid.Must(uuid.NewV7()).String(),
		MetaSessionTS: time.Now().UTC().Format(time.RFC3339),
		MetaPID:       strconv.Itoa(os.Getpid()),
	}
	if hostname, err := os.Hostname(); err == nil {
		meta[MetaHostname] = hostname
	}
	return meta
}
