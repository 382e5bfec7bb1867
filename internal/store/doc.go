// Package store keeps a relational copy of the joined sales table.
//
// The table is written through database/sql, by default to an in-memory
// SQLite database provided by the pure-Go modernc.org/sqlite driver. Each
// load replaces the table and returns the row count read back from it.
package store
