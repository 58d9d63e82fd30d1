// Package store provides the SQLite run ledger.
//
// Every completed run can be recorded as one row of the runs table: its ID,
// process, collision energy, seed, sample and event counts, and the
// integration results. Events themselves are never stored.
//
// # Ordering
//
// Rows carry a seq INTEGER assigned on insert. Listings use
// ORDER BY seq ASC, id ASC COLLATE BINARY, so output is stable no matter
// how SQLite lays out the table.
//
// # Ledger file
//
// Open runs the ledger in WAL mode with a five second busy timeout and
// stamps SchemaVersion into PRAGMA user_version. A file stamped with a
// newer version is refused.
package store
