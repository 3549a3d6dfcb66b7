package accumulator

import (
	"errors"
	"fmt"
	"time"

	"github.com/blockberries/merkleberry/logging"
	"github.com/blockberries/merkleberry/types"
)

// Proof is a self-contained inclusion proof: the leaf hash plus the ordered
// sibling path needed to recompute the root of a log with LeafCount leaves.
// All hashes are base64url strings.
type Proof struct {
	Version   int      `json:"version"`
	Namespace string   `json:"namespace"`
	Index     int64    `json:"index"`
	LeafCount int64    `json:"leafCount"`
	LeafHash  string   `json:"leafHash"`
	Siblings  []string `json:"siblings"`
}

// GenProof produces an inclusion proof for the leaf at index.
//
// Returns types.ErrIndexOutOfRange if index is negative or not less than the
// namespace's leaf count, and types.ErrLeafMissing if the leaf record for a
// valid index is absent from storage.
func (a *Accumulator) GenProof(namespace string, index int64) (*Proof, error) {
	start := time.Now()

	st, err := a.loadState(namespace)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= st.leafCount {
		return nil, fmt.Errorf("%w: index %d, leaf count %d", types.ErrIndexOutOfRange, index, st.leafCount)
	}

	leaf, err := a.loadNode(namespace, 0, index)
	if err != nil {
		return nil, err
	}

	siblings, err := a.path(namespace, index, 0, st.leafCount)
	if err != nil {
		return nil, err
	}

	encoded := make([]string, len(siblings))
	for i, s := range siblings {
		encoded[i] = types.EncodeHash(s)
	}

	a.metrics.IncProofsGenerated(namespace)
	a.metrics.ObserveProofLatency(time.Since(start))
	a.metrics.ObserveProofPathLength(len(encoded))
	a.logger.Debug("proof generated",
		logging.Namespace(namespace),
		logging.LeafIndex(index),
		logging.LeafCount(st.leafCount),
		logging.Siblings(len(encoded)),
	)

	return &Proof{
		Version:   Version,
		Namespace: namespace,
		Index:     index,
		LeafCount: st.leafCount,
		LeafHash:  types.EncodeHash(leaf),
		Siblings:  encoded,
	}, nil
}

// path computes the sibling path for leaf m within the leaf range [lo, hi),
// ordered from the leaf toward the root. At each split the leaf's half is
// descended into and the other half's subtree root becomes the sibling.
func (a *Accumulator) path(namespace string, m, lo, hi int64) ([]types.Hash, error) {
	if hi-lo <= 1 {
		return nil, nil
	}

	k := largestPowerOfTwoBelow(hi - lo)
	if m < lo+k {
		below, err := a.path(namespace, m, lo, lo+k)
		if err != nil {
			return nil, err
		}
		sibling, err := a.rangeRoot(namespace, lo+k, hi)
		if err != nil {
			return nil, err
		}
		return append(below, sibling), nil
	}

	below, err := a.path(namespace, m, lo+k, hi)
	if err != nil {
		return nil, err
	}
	sibling, err := a.rangeRoot(namespace, lo, lo+k)
	if err != nil {
		return nil, err
	}
	return append(below, sibling), nil
}

// rangeRoot computes the subtree root over the leaf range [lo, hi).
// Aligned power-of-two ranges resolve to a single node-store lookup; ragged
// right-hand ranges are recombined from their perfect subtrees.
func (a *Accumulator) rangeRoot(namespace string, lo, hi int64) (types.Hash, error) {
	size := hi - lo
	if size == 1 {
		return a.loadNode(namespace, 0, lo)
	}

	if size&(size-1) == 0 && lo%size == 0 {
		level := 0
		for s := size; s > 1; s >>= 1 {
			level++
		}
		return a.loadNode(namespace, level, lo>>uint(level))
	}

	k := largestPowerOfTwoBelow(size)
	left, err := a.rangeRoot(namespace, lo, lo+k)
	if err != nil {
		return nil, err
	}
	right, err := a.rangeRoot(namespace, lo+k, hi)
	if err != nil {
		return nil, err
	}
	return types.NodeHash(left, right), nil
}

// loadNode retrieves a persisted node hash. Level-0 nodes are leaf records.
func (a *Accumulator) loadNode(namespace string, level int, position int64) (types.Hash, error) {
	raw, err := a.store.Get(nodeKey(namespace, level, position))
	if errors.Is(err, types.ErrKeyNotFound) {
		if level == 0 {
			return nil, fmt.Errorf("%w: index %d", types.ErrLeafMissing, position)
		}
		return nil, fmt.Errorf("%w: level %d, position %d", types.ErrNodeMissing, level, position)
	}
	if err != nil {
		return nil, fmt.Errorf("loading node at level %d, position %d: %w", level, position, err)
	}

	h, err := types.DecodeHash(raw)
	if err != nil || h.IsEmpty() {
		return nil, fmt.Errorf("%w: undecodable node at level %d, position %d", types.ErrStateCorrupted, level, position)
	}
	return h, nil
}

// largestPowerOfTwoBelow returns the largest power of two strictly less
// than n. n must be at least 2.
func largestPowerOfTwoBelow(n int64) int64 {
	k := int64(1)
	for k<<1 < n {
		k <<= 1
	}
	return k
}
