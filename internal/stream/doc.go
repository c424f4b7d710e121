// Package stream exposes a backing table as a file-like append/read stream.
//
// Writers append lines of text; each line becomes one row tagged with the
// stream's session metadata and a storage-assigned sequence. Readers consume
// with ReadNew, which returns only rows that reader has not yet seen, in
// write order, as if reading sequential lines from a growing file.
//
// # Consumption protocol
//
// Every reader identity carries its own cursor: the highest sequence it has
// consumed. ReadNew scans strictly past the cursor and then advances it to
// the highest sequence returned. Distinct identities are fully independent,
// so any number of consumers each see the full history exactly once
// (broadcast semantics). Calling ReadNew twice with no intervening writes
// returns nothing the second time.
//
// Cursors are in-memory and die with the Stream. Two processes using the
// same identity do not share a position; that is a documented limitation.
//
// # Concurrency
//
// The API is synchronous and blocking; the package starts no goroutines and
// blocks only at the storage boundary. A Stream exclusively owns its storage
// connection. Callers needing concurrent writers should open separate
// Streams (separate connections) against the same table; sequence ordering
// across them is enforced by the storage engine's serialized insert path.
package stream
