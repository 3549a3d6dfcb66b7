package accumulator

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blockberries/merkleberry/types"
)

// Version is the accumulator state format version.
const Version = 1

// logState is the per-namespace accumulator state. The frontier is a sparse
// sequence of subtree roots indexed by level: slot i holds the root of a
// completed, not-yet-merged subtree of 2^i leaves. Slot i is populated iff
// bit i of LeafCount is set, exactly as in a binary counter.
type logState struct {
	leafCount int64
	frontier  []types.Hash
}

// persistedState is the JSON wire form of logState. Empty frontier slots
// serialize as empty strings.
type persistedState struct {
	Version   int      `json:"version"`
	LeafCount int64    `json:"leafCount"`
	Frontier  []string `json:"frontier"`
}

func emptyState() *logState {
	return &logState{}
}

func encodeState(st *logState) (string, error) {
	frontier := make([]string, len(st.frontier))
	for i, slot := range st.frontier {
		frontier[i] = types.EncodeHash(slot)
	}
	data, err := json.Marshal(persistedState{
		Version:   Version,
		LeafCount: st.leafCount,
		Frontier:  frontier,
	})
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	return string(data), nil
}

func decodeState(raw string) (*logState, error) {
	var ps persistedState
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStateCorrupted, err)
	}
	if ps.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", types.ErrStateCorrupted, ps.Version)
	}
	if ps.LeafCount < 0 {
		return nil, fmt.Errorf("%w: negative leaf count %d", types.ErrStateCorrupted, ps.LeafCount)
	}

	st := &logState{
		leafCount: ps.LeafCount,
		frontier:  make([]types.Hash, len(ps.Frontier)),
	}
	for i, s := range ps.Frontier {
		h, err := types.DecodeHash(s)
		if err != nil {
			return nil, fmt.Errorf("%w: frontier slot %d: %v", types.ErrStateCorrupted, i, err)
		}
		st.frontier[i] = h
	}

	if err := st.checkFrontierInvariant(); err != nil {
		return nil, err
	}
	return st, nil
}

// checkFrontierInvariant verifies that the set of populated frontier slots
// matches the binary representation of the leaf count.
func (st *logState) checkFrontierInvariant() error {
	for i, slot := range st.frontier {
		wantPopulated := st.leafCount>>uint(i)&1 == 1
		if slot.IsEmpty() == wantPopulated {
			return fmt.Errorf("%w: frontier slot %d does not match leaf count %d",
				types.ErrStateCorrupted, i, st.leafCount)
		}
	}
	if st.leafCount>>uint(len(st.frontier)) != 0 {
		return fmt.Errorf("%w: frontier too short for leaf count %d",
			types.ErrStateCorrupted, st.leafCount)
	}
	return nil
}

// root derives the current accumulator root from the frontier without
// mutating it. Populated slots are folded from the lowest level upward with
// the larger subtree always on the left, so the result equals the Merkle
// tree head over all leaves appended so far. Returns an empty hash for an
// empty log.
func (st *logState) root() types.Hash {
	var acc types.Hash
	for _, slot := range st.frontier {
		if slot.IsEmpty() {
			continue
		}
		if acc.IsEmpty() {
			acc = slot
			continue
		}
		acc = types.NodeHash(slot, acc)
	}
	return acc
}

func (a *Accumulator) loadState(namespace string) (*logState, error) {
	raw, err := a.store.Get(stateKey(namespace))
	if errors.Is(err, types.ErrKeyNotFound) {
		return emptyState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading state for %q: %w", namespace, err)
	}
	return decodeState(raw)
}

func (a *Accumulator) saveState(namespace string, st *logState) error {
	raw, err := encodeState(st)
	if err != nil {
		return err
	}
	if err := a.store.Set(stateKey(namespace), raw); err != nil {
		return fmt.Errorf("saving state for %q: %w", namespace, err)
	}
	return nil
}
