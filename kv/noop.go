package kv

import (
	"github.com/blockberries/merkleberry/types"
)

// NopStore is a store that does nothing.
// It rejects all writes and reports no stored values.
// Use this for verify-only deployments that never persist anything.
type NopStore struct{}

// NewNopStore creates a new no-op store.
func NewNopStore() *NopStore {
	return &NopStore{}
}

// Get always returns types.ErrKeyNotFound.
func (s *NopStore) Get(_ string) (string, error) {
	return "", types.ErrKeyNotFound
}

// Set always returns an error as the no-op store doesn't persist values.
func (s *NopStore) Set(_, _ string) error {
	return types.ErrStoreClosed
}

// Has always returns false.
func (s *NopStore) Has(_ string) (bool, error) {
	return false, nil
}

// Close does nothing.
func (s *NopStore) Close() error {
	return nil
}

var _ Store = (*NopStore)(nil)
