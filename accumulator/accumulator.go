// Package accumulator implements a namespaced append-only Merkle
// transparency-log accumulator.
//
// Each namespace maintains a compact "frontier" of partial subtree roots,
// one per set bit of the leaf count. Appending a leaf updates the frontier
// by binary-counter carry propagation; the log root is derived from the
// frontier on demand. Inclusion proofs are generated from interior nodes
// persisted incrementally during append and verified against a published
// root without access to the full log.
//
// All state lives in an external kv.Store; the accumulator never caches
// state across calls, so the store is the single source of truth.
package accumulator

import (
	"fmt"
	"time"

	"github.com/blockberries/merkleberry/kv"
	"github.com/blockberries/merkleberry/logging"
	"github.com/blockberries/merkleberry/metrics"
	"github.com/blockberries/merkleberry/types"
)

// Accumulator is the namespaced transparency-log core. It is safe for
// concurrent use: appends are serialized per namespace by the configured
// NamespaceLocker, proofs and root reads are read-only.
type Accumulator struct {
	store   kv.Store
	locker  NamespaceLocker
	logger  *logging.Logger
	metrics metrics.Metrics
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Accumulator) { a.logger = l.WithComponent("accumulator") }
}

// WithMetrics sets the metrics collector. Defaults to no-op metrics.
func WithMetrics(m metrics.Metrics) Option {
	return func(a *Accumulator) { a.metrics = m }
}

// WithLocker sets the namespace locker. Defaults to an in-process
// KeyedMutex; multi-process deployments must supply a locker backed by
// shared coordination.
func WithLocker(l NamespaceLocker) Option {
	return func(a *Accumulator) { a.locker = l }
}

// New creates an Accumulator backed by the given store.
func New(store kv.Store, opts ...Option) *Accumulator {
	a := &Accumulator{
		store:   store,
		locker:  NewKeyedMutex(),
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AppendResult reports the outcome of a successful append.
type AppendResult struct {
	// Index is the zero-based position of the appended leaf.
	Index int64 `json:"index"`

	// LeafHash is the base64url domain-separated hash of the payload.
	LeafHash string `json:"leafHash"`

	// Root is the accumulator root after the append.
	Root string `json:"root"`

	// LeafCount is the total number of leaves after the append.
	LeafCount int64 `json:"leafCount"`
}

// Append adds a new leaf to the namespace's log and returns the leaf index,
// its hash, and the new root. Any payload is accepted, including empty.
//
// Writes are ordered so that a failed leaf or node write never increments
// the persisted leaf count.
func (a *Accumulator) Append(namespace string, payload []byte) (*AppendResult, error) {
	start := time.Now()

	unlock := a.locker.Lock(namespace)
	defer unlock()

	st, err := a.loadState(namespace)
	if err != nil {
		return nil, err
	}

	index := st.leafCount
	leaf := types.LeafHash(payload)

	if err := a.store.Set(leafKey(namespace, index), types.EncodeHash(leaf)); err != nil {
		return nil, fmt.Errorf("persisting leaf %d: %w", index, err)
	}

	// Binary-counter carry propagation: each append "adds 1", and carries
	// ripple upward merging equal-sized subtrees. Every merged node is
	// persisted so proof generation can look siblings up directly.
	carry := leaf
	level := 0
	for !carry.IsEmpty() {
		if level == len(st.frontier) {
			st.frontier = append(st.frontier, nil)
		}
		if st.frontier[level].IsEmpty() {
			st.frontier[level] = carry
			carry = nil
			continue
		}

		merged := types.NodeHash(st.frontier[level], carry)
		st.frontier[level] = nil
		carry = merged
		level++

		if err := a.store.Set(nodeKey(namespace, level, index>>uint(level)), types.EncodeHash(merged)); err != nil {
			return nil, fmt.Errorf("persisting node at level %d: %w", level, err)
		}
	}

	st.leafCount++
	if err := a.saveState(namespace, st); err != nil {
		return nil, err
	}

	root := st.root()

	a.metrics.IncAppends(namespace)
	a.metrics.SetLeafCount(namespace, st.leafCount)
	a.metrics.ObserveAppendLatency(time.Since(start))
	a.logger.Debug("leaf appended",
		logging.Namespace(namespace),
		logging.LeafIndex(index),
		logging.LeafCount(st.leafCount),
		logging.Root(types.EncodeHash(root)),
		logging.Duration(time.Since(start)),
	)

	return &AppendResult{
		Index:     index,
		LeafHash:  types.EncodeHash(leaf),
		Root:      types.EncodeHash(root),
		LeafCount: st.leafCount,
	}, nil
}

// Root returns the namespace's current root as a base64url string.
// An empty log has an empty root.
func (a *Accumulator) Root(namespace string) (string, error) {
	st, err := a.loadState(namespace)
	if err != nil {
		return "", err
	}
	return types.EncodeHash(st.root()), nil
}

// LeafCount returns the number of leaves appended to the namespace.
func (a *Accumulator) LeafCount(namespace string) (int64, error) {
	st, err := a.loadState(namespace)
	if err != nil {
		return 0, err
	}
	return st.leafCount, nil
}
