package types

import (
	"errors"
)

// Input validation errors.
var (
	// ErrIndexOutOfRange is returned when a leaf index is negative or not
	// less than the namespace's leaf count.
	ErrIndexOutOfRange = errors.New("leaf index out of range")

	// ErrInvalidHashLength is returned when a decoded hash is not exactly
	// HashSize bytes.
	ErrInvalidHashLength = errors.New("invalid hash length")
)

// Data integrity errors. These indicate storage corruption or a bug in
// append, never a caller mistake.
var (
	// ErrLeafMissing is returned when the leaf record for a valid index is
	// absent from storage.
	ErrLeafMissing = errors.New("leaf record missing from storage")

	// ErrNodeMissing is returned when an interior node needed for a proof is
	// absent from storage.
	ErrNodeMissing = errors.New("interior node missing from storage")

	// ErrStateCorrupted is returned when persisted accumulator state cannot
	// be decoded or violates the frontier invariant.
	ErrStateCorrupted = errors.New("accumulator state corrupted")
)

// Storage errors.
var (
	// ErrKeyNotFound is returned by a store when a key has never been set.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreClosed is returned when an operation is attempted on a closed
	// or write-rejecting store.
	ErrStoreClosed = errors.New("store is closed")
)
