// Package store provides persistence for taskdeck.
//
// # Overview
//
// The Store interface covers users, tasks, and auth sessions. The
// production implementation is SQLiteStore, backed by modernc.org/sqlite
// with WAL mode and foreign keys enabled. The schema is created
// automatically on open.
//
// # Conventions
//
//   - Entity IDs are UUID strings generated by callers.
//   - Timestamps are stored as RFC3339 UTC strings.
//   - Lookups return ErrNotFound for missing rows; deletes are idempotent
//     and succeed when the row is already gone.
//   - Task tags are persisted as a JSON array string and exposed as
//     []string.
//
// # Concurrency
//
// Correctness under concurrent access relies on SQLite's row-level
// atomicity for single-row create/read/delete operations; the store holds
// no in-process mutable state beyond the connection pool.
package store
