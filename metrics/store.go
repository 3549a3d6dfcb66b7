package metrics

import (
	"time"

	"github.com/blockberries/merkleberry/kv"
)

// InstrumentedStore wraps a kv.Store and records operation counts and
// latencies.
type InstrumentedStore struct {
	inner   kv.Store
	metrics Metrics
}

// NewInstrumentedStore wraps inner so that every read and write is recorded
// against m.
func NewInstrumentedStore(inner kv.Store, m Metrics) *InstrumentedStore {
	return &InstrumentedStore{
		inner:   inner,
		metrics: m,
	}
}

// Get returns the value stored under key.
func (s *InstrumentedStore) Get(key string) (string, error) {
	start := time.Now()
	value, err := s.inner.Get(key)
	s.metrics.IncStoreGets()
	s.metrics.ObserveStoreLatency(OpGet, time.Since(start))
	return value, err
}

// Set stores value under key.
func (s *InstrumentedStore) Set(key, value string) error {
	start := time.Now()
	err := s.inner.Set(key, value)
	s.metrics.IncStoreSets()
	s.metrics.ObserveStoreLatency(OpSet, time.Since(start))
	return err
}

// Has reports whether a value exists under key.
func (s *InstrumentedStore) Has(key string) (bool, error) {
	return s.inner.Has(key)
}

// Close closes the underlying store.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

var _ kv.Store = (*InstrumentedStore)(nil)
