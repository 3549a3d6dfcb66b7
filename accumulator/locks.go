package accumulator

import (
	"sync"
)

// NamespaceLocker serializes appends per namespace. Two concurrent appends to
// the same namespace would both read the frontier before either writes it
// back, silently losing a leaf; the accumulator acquires the namespace lock
// around every read-modify-write cycle.
//
// The default KeyedMutex only guards a single process. Deployments where
// several processes share one store must inject a locker backed by the
// store's own coordination primitive (e.g. compare-and-swap on the state
// key).
type NamespaceLocker interface {
	// Lock blocks until the namespace lock is held and returns the
	// corresponding unlock function.
	Lock(namespace string) (unlock func())
}

// KeyedMutex is an in-process NamespaceLocker backed by one mutex per
// namespace.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates a new KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given namespace, creating it on first use.
func (k *KeyedMutex) Lock(namespace string) func() {
	k.mu.Lock()
	m, ok := k.locks[namespace]
	if !ok {
		m = &sync.Mutex{}
		k.locks[namespace] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var _ NamespaceLocker = (*KeyedMutex)(nil)
