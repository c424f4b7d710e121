// Package sqlite adapts the storage port onto SQLite via mattn/go-sqlite3.
//
// Responsibilities are deliberately narrow: open and hold the connection,
// translate the port's four operations into SQL, and map driver errors into
// the shared taxonomy (storage.UnavailableError, storage.TableMissingError).
// No stream-level logic lives here.
//
// Sequence assignment rides on SQLite's INTEGER PRIMARY KEY AUTOINCREMENT:
// inserts are serialized by the engine, so concurrent appends from any number
// of connections receive distinct, monotonically increasing sequences without
// coordination in this layer.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Provisioning the stream table is a separate, explicit step (Provision);
// Open refuses to create tables and reports a missing one as
// storage.TableMissingError.
package sqlite
