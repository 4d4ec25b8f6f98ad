// Package store provides SQLite-backed storage for the invocation history.
//
// Every operation run through the CLI can be appended as a Record holding
// the operation name, its arguments, and either the result or the error
// code and message.
//
// # Ordering
//
//   - Records are ordered by seq, a logical counter assigned on append, never
//     by wall-clock time
//   - All queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Encoding
//
// Args and results are stored as canonical JSON (internal/canonical), so the
// same invocation always produces the same bytes and replays compare exactly.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single connection: SQLite allows one writer; also keeps ":memory:"
//     databases alive for the lifetime of the Store
package store
