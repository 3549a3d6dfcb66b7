// Package kv provides the key-value storage collaborator consumed by the
// accumulator, with in-memory, LevelDB, and BadgerDB implementations.
package kv

// Store is the storage collaborator contract. The accumulator persists its
// per-namespace state, leaf records, and interior nodes as string values
// under string keys; everything else (durability, compaction, atomicity per
// key) is the store's responsibility.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value previously stored under key.
	// Returns types.ErrKeyNotFound if the key has never been set.
	Get(key string) (string, error)

	// Set persists value under key, overwriting any previous value.
	Set(key, value string) error

	// Has reports whether a value exists under key.
	Has(key string) (bool, error)

	// Close closes the store and releases resources.
	Close() error
}
