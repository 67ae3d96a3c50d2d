// Package journal provides SQLite-backed durable storage for replay runs.
//
// A run is one replay of an input document. The journal keeps:
//   - Runs: the token, the canonical input document, the rules in effect
//     and, once finished, the digest of the output document
//   - Entries: one row per executed action, keyed by (run, seq)
//
// # Ordering
//
// Entries are ordered by seq, the engine's logical clock, never by wall
// time. Runs are listed by token; UUIDv7 tokens sort by creation time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Digests are computed by internal/digest over RFC 8785 canonical JSON.
package journal
