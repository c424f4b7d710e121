// Package storage defines the port the stream core requires from any backing
// engine: append-ordered insert, ordered range scan, max-sequence query, and
// connection release. The core depends only on this interface; concrete
// engines live in their own adapter packages (see internal/sqlite).
//
// The single most important property an implementation must provide is
// atomic sequence assignment: no two concurrent Appends may ever receive the
// same sequence. Everything else in the consumption protocol builds on it.
//
// Table provisioning is deliberately NOT part of the port. The target table
// is created once, externally, before a port is constructed; a port that
// finds its table absent reports *TableMissingError rather than creating it.
package storage
