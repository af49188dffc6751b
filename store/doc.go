// Package store groups the backtrack.Store implementations:
//
//   - memory: concurrent in-process map
//   - badger: embedded BadgerDB (on disk or in memory)
//   - sqlite: single-table SQLite database (pure Go driver)
//
// All implementations are safe for concurrent use and resolve concurrent
// writes to one key last-write-wins.
package store
