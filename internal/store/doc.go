// Package store provides the SQLite-backed run ledger for batch test
// generation.
//
// The ledger is append-only:
//   - Runs: one record per batch invocation (mode, reference directory, options)
//   - Outcomes: one record per discovered test case, Success or Failed
//
// # Ordering
//
// Outcomes carry a per-run seq assigned in discovery order, and every query
// orders by it (ORDER BY seq ASC). Completion order of the worker pool never
// leaks into reads. Runs are ordered by id; run ids are UUIDv7 and therefore
// sort by creation time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
