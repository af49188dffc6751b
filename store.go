package backtrack

import "context"

// Store is the keyed persistence boundary used to save and resume snapshot
// stacks. Values are opaque encoded bytes.
//
// Implementations live under the store/ directory:
//   - store/memory: concurrent in-process map (tests, single process)
//   - store/badger: embedded BadgerDB
//   - store/sqlite: single-table SQLite database
//
// Concurrent writers to the same key race last-write-wins. Callers needing
// stronger guarantees must coordinate around the key themselves.
type Store interface {
	// Put stores value under key, overwriting any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value under key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Erase removes key. Erasing a missing key is not an error.
	Erase(ctx context.Context, key string) error
}
