// Package store exports scan runs and their findings to SQLite.
//
// The export is write-only from the scanner's point of view: every scan
// classifies the project from scratch, and stored rows are never consulted
// to skip work. The runs command reads them back.
//
// # Ordering
//
//   - Findings are stored with seq, their position in discovery order, and
//     are always read back ORDER BY seq ASC.
//   - Runs are listed ORDER BY run_id ASC. Run ids are UUIDv7, so this is
//     creation order.
//
// # Connections
//
// Connections are opened in WAL mode with synchronous=NORMAL, a 5 second
// busy timeout and foreign keys enforced. The schema version lives in
// PRAGMA user_version.
package store
