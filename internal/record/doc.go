// Package record defines the row shape shared by every tablestream backend:
// a storage-assigned sequence number, an opaque text payload, and immutable
// writer session metadata.
//
// The package owns both directions of the row codec:
//   - Encode builds the backend row for an append (payload + metadata JSON).
//   - Decode validates a scanned backend row and fails loudly on anything
//     malformed (CorruptRecordError), rather than defaulting missing fields.
//
// Metadata is serialized as a single JSON TEXT value with sorted keys and
// HTML escaping disabled, so the stored form is deterministic and directly
// comparable across rows.
package record
