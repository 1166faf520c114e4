// Package store keeps triviarpg data in a local SQLite database.
//
// Two tables live in the database:
//   - kv: opaque values by key. The engine's saved game is one JSON
//     document under the "gameState" key, written through snapshot.Adapter.
//   - actions: an append-only journal with one row per attempted action,
//     successful or not, keyed by a UUIDv7 id and ordered by the engine's
//     logical seq.
//
// # Ordering
//
// Journal reads ORDER BY seq ASC, id ASC COLLATE BINARY. Wall-clock
// timestamps are recorded for display only and never used for ordering.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
