// Package store persists run history in SQLite.
//
// Each run gets a UUIDv7 identifier and a row in runs, with one row per scene
// in scene_results and one row per unused script in unused_scripts. History is
// append-only; a run is written in a single transaction.
//
// # Ordering
//
// Runs are ordered by seq, an INTEGER assigned on insert, never by wall time.
// Child rows keep the order the run produced them in via their position
// column.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
