// Package tasks orchestrates long-running catalog operations with real-time progress reporting.
//
// # Core Operations
//
// [SnapshotEngine.Snapshot] writes a full offline snapshot of the catalog:
//   - Fetches the public book list from the service
//   - Buckets books by category and writes one export file per bucket
//     plus a full-catalog file, using a bounded worker pool
//   - Optionally appends the borrow-record ledger (requires a session)
//   - Writes a JSON manifest summarising the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
