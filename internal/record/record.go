package record

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Metadata is the writer-supplied session context attached to a record.
// Set once at write time, immutable thereafter.
type Metadata map[string]string

// Record is one decoded row of a stream table.
type Record struct {
	// Seq is the storage-assigned sequence number. Strictly increasing in
	// insertion order across all writers sharing the table; gaps are
	// tolerated, reordering is not.
	Seq uint64

	// Payload is the stored text, opaque to the stream core.
	Payload string

	// Meta is the writer's session metadata.
	Meta Metadata
}

// Encoded is the backend row representation for an append. The sequence is
// absent on purpose: it is assigned by the storage layer at insert time,
// never by the caller.
type Encoded struct {
	Payload string
	Meta    string // JSON object, sorted keys
}

// Raw is a backend row as scanned from storage, before validation.
// Nil pointers represent columns the backend reported as NULL or missing.
type Raw struct {
	Seq     int64
	Payload *string
	Meta    *string
}

// Encode builds the backend row for one write. It is pure and deterministic:
// the same payload and metadata always produce the same Encoded value.
//
// Returns *EncodingError if the payload or any metadata key/value is not
// valid UTF-8 text.
func Encode(payload string, meta Metadata) (Encoded, error) {
	if !utf8.ValidString(payload) {
		return Encoded{}, &EncodingError{Field: "payload", Reason: "not valid UTF-8"}
	}
	for k, v := range meta {
		if !utf8.ValidString(k) {
			return Encoded{}, &EncodingError{Field: "metadata key", Reason: "not valid UTF-8"}
		}
		if !utf8.ValidString(v) {
			return Encoded{}, &EncodingError{Field: "metadata value for " + k, Reason: "not valid UTF-8"}
		}
	}

	metaJSON, err := marshalMetadata(meta)
	if err != nil {
		// Metadata is map[string]string; json.Marshal cannot fail on it
		// once UTF-8 validity is established. Surface it anyway.
		return Encoded{}, &EncodingError{Field: "metadata", Reason: err.Error()}
	}

	return Encoded{Payload: payload, Meta: metaJSON}, nil
}

// Decode validates a scanned backend row and returns the record it holds.
//
// Returns *CorruptRecordError if a required column is NULL/missing, the
// sequence is negative, or the metadata column is not a JSON object.
func Decode(raw Raw) (Record, error) {
	if raw.Seq < 0 {
		return Record{}, &CorruptRecordError{Seq: raw.Seq, Column: "seq", Reason: "negative sequence"}
	}
	if raw.Payload == nil {
		return Record{}, &CorruptRecordError{Seq: raw.Seq, Column: "payload", Reason: "column is NULL"}
	}
	if raw.Meta == nil {
		return Record{}, &CorruptRecordError{Seq: raw.Seq, Column: "metadata", Reason: "column is NULL"}
	}

	meta, err := unmarshalMetadata(*raw.Meta)
	if err != nil {
		return Record{}, &CorruptRecordError{Seq: raw.Seq, Column: "metadata", Reason: err.Error()}
	}

	return Record{
		Seq:     uint64(raw.Seq),
		Payload: *raw.Payload,
		Meta:    meta,
	}, nil
}

// marshalMetadata converts Metadata to JSON TEXT for storage.
// Go's json.Marshal sorts map keys, so the output is deterministic;
// HTML escaping is disabled so the stored text matches the input bytes.
func marshalMetadata(meta Metadata) (string, error) {
	if meta == nil {
		meta = Metadata{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalMetadata parses the stored JSON TEXT back into Metadata.
// An empty column decodes to an empty map, not nil.
func unmarshalMetadata(data string) (Metadata, error) {
	if data == "" || data == "{}" {
		return Metadata{}, nil
	}
	var meta Metadata
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, err
	}
	if meta == nil {
		meta = Metadata{}
	}
	return meta, nil
}
