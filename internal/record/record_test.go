package record

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEncode_Roundtrip(t *testing.T) {
	enc, err := Encode("hello world", Metadata{"hostname": "worker-1", "pid": "42"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", enc.Payload)

	rec, err := Decode(Raw{Seq: 7, Payload: strPtr(enc.Payload), Meta: strPtr(enc.Meta)})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rec.Seq)
	assert.Equal(t, "hello world", rec.Payload)
	assert.Equal(t, Metadata{"hostname": "worker-1", "pid": "42"}, rec.Meta)
}

func TestEncode_Deterministic(t *testing.T) {
	meta := Metadata{"b": "2", "a": "1", "c": "3"}

	first, err := Encode("line", meta)
	require.NoError(t, err)
	second, err := Encode("line", meta)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input must produce the same encoded row")
	assert.Equal(t, `{"a":"1","b":"2","c":"3"}`, first.Meta, "metadata keys must be sorted")
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	enc, err := Encode("line", Metadata{"cmd": "a < b && c > d"})
	require.NoError(t, err)
	assert.Equal(t, `{"cmd":"a < b && c > d"}`, enc.Meta)
}

func TestEncode_EmptyMetadata(t *testing.T) {
	for _, meta := range []Metadata{nil, {}} {
		enc, err := Encode("line", meta)
		require.NoError(t, err)
		assert.Equal(t, "{}", enc.Meta)
	}
}

func TestEncode_InvalidUTF8Payload(t *testing.T) {
	_, err := Encode(string([]byte{0xff, 0xfe}), nil)
	require.Error(t, err)
	assert.True(t, IsEncodingError(err), "expected EncodingError, got %v", err)
}

func TestEncode_InvalidUTF8Metadata(t *testing.T) {
	bad := string([]byte{0xc3, 0x28})

	_, err := Encode("line", Metadata{bad: "v"})
	assert.True(t, IsEncodingError(err), "bad key: expected EncodingError, got %v", err)

	_, err = Encode("line", Metadata{"k": bad})
	assert.True(t, IsEncodingError(err), "bad value: expected EncodingError, got %v", err)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"negative sequence", Raw{Seq: -1, Payload: strPtr("x"), Meta: strPtr("{}")}},
		{"missing payload", Raw{Seq: 1, Payload: nil, Meta: strPtr("{}")}},
		{"missing metadata", Raw{Seq: 1, Payload: strPtr("x"), Meta: nil}},
		{"metadata not JSON", Raw{Seq: 1, Payload: strPtr("x"), Meta: strPtr("not json")}},
		{"metadata wrong shape", Raw{Seq: 1, Payload: strPtr("x"), Meta: strPtr(`["a"]`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)
			assert.True(t, IsCorruptRecord(err), "expected CorruptRecordError, got %v", err)
		})
	}
}

func TestDecode_EmptyMetadataColumn(t *testing.T) {
	rec, err := Decode(Raw{Seq: 1, Payload: strPtr("x"), Meta: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, Metadata{}, rec.Meta, "empty column decodes to empty map, not nil")
}

func TestDecode_ZeroSequence(t *testing.T) {
	// 0 never appears from AUTOINCREMENT but is a valid non-negative value;
	// the decoder must tolerate whatever the backend assigned.
	rec, err := Decode(Raw{Seq: 0, Payload: strPtr("x"), Meta: strPtr("{}")})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rec.Seq)
}

func TestNewSessionMetadata(t *testing.T) {
	meta := NewSessionMetadata()

	_, err := uuid.Parse(meta[MetaSessionID])
	assert.NoError(t, err, "session_id should be a UUID")

	_, err = time.Parse(time.RFC3339, meta[MetaSessionTS])
	assert.NoError(t, err, "session_ts should be RFC3339")

	pid, err := strconv.Atoi(meta[MetaPID])
	require.NoError(t, err)
	assert.Positive(t, pid)
}

func TestNewSessionMetadata_DistinctSessions(t *testing.T) {
	a := NewSessionMetadata()
	b := NewSessionMetadata()
	assert.NotEqual(t, a[MetaSessionID], b[MetaSessionID], "each session gets its own id")
}
