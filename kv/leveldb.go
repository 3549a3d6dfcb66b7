package kv

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/blockberries/merkleberry/types"
)

// LevelDBStore implements Store using LevelDB.
type LevelDBStore struct {
	db     *leveldb.DB
	path   string
	closed bool
	mu     sync.RWMutex
}

// NewLevelDBStore opens (or creates) a LevelDB-backed store at path.
func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		NoSync: false, // Ensure durability
	})
	if err != nil {
		return nil, fmt.Errorf("opening leveldb: %w", err)
	}

	return &LevelDBStore{
		db:   db,
		path: path,
	}, nil
}

// Get returns the value stored under key.
func (s *LevelDBStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", types.ErrStoreClosed
	}

	value, err := s.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return "", types.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %q: %w", key, err)
	}
	return string(value), nil
}

// Set stores value under key, overwriting any previous value.
// Writes are synced to disk before returning.
func (s *LevelDBStore) Set(key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.ErrStoreClosed
	}

	if err := s.db.Put([]byte(key), []byte(value), &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Has reports whether a value exists under key.
func (s *LevelDBStore) Has(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, types.ErrStoreClosed
	}

	exists, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}
	return exists, nil
}

// Close closes the database.
func (s *LevelDBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

var _ Store = (*LevelDBStore)(nil)
