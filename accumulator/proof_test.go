package accumulator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/merkleberry/kv"
	"github.com/blockberries/merkleberry/types"
)

// fillLog appends n distinct payloads and returns the final root.
func fillLog(t *testing.T, acc *Accumulator, namespace string, n int) string {
	t.Helper()

	var root string
	for i := 0; i < n; i++ {
		res, err := acc.Append(namespace, []byte(fmt.Sprintf("leaf-%d", i)))
		require.NoError(t, err)
		root = res.Root
	}
	return root
}

func TestGenProof_RoundTrip(t *testing.T) {
	// Exercise perfect trees, ragged right edges, and single peaks.
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 13, 17, 32} {
		t.Run(fmt.Sprintf("size %d", n), func(t *testing.T) {
			acc := newTestAccumulator()
			root := fillLog(t, acc, "ns1", n)

			for i := 0; i < n; i++ {
				proof, err := acc.GenProof("ns1", int64(i))
				require.NoError(t, err)
				require.Equal(t, Version, proof.Version)
				require.Equal(t, "ns1", proof.Namespace)
				require.Equal(t, int64(i), proof.Index)
				require.Equal(t, int64(n), proof.LeafCount)

				res := VerifyProof(proof, root)
				require.True(t, res.OK, "leaf %d of %d: %s", i, n, res.Reason)
				require.Empty(t, res.Reason)
			}
		})
	}
}

func TestGenProof_SingleLeaf(t *testing.T) {
	acc := newTestAccumulator()
	root := fillLog(t, acc, "ns1", 1)

	proof, err := acc.GenProof("ns1", 0)
	require.NoError(t, err)
	require.Empty(t, proof.Siblings)
	require.Equal(t, root, proof.LeafHash)

	require.True(t, VerifyProof(proof, root).OK)
}

func TestGenProof_PathLengthIsLogarithmic(t *testing.T) {
	acc := newTestAccumulator()
	fillLog(t, acc, "ns1", 32)

	proof, err := acc.GenProof("ns1", 11)
	require.NoError(t, err)
	require.Len(t, proof.Siblings, 5) // 32 leaves => perfect tree of depth 5
}

func TestGenProof_OutOfRange(t *testing.T) {
	acc := newTestAccumulator()
	fillLog(t, acc, "ns1", 3)

	_, err := acc.GenProof("ns1", -1)
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)

	_, err = acc.GenProof("ns1", 3)
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)

	// An untouched namespace has no valid index at all.
	_, err = acc.GenProof("empty", 0)
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestGenProof_MissingLeafRecord(t *testing.T) {
	store := kv.NewMemoryStore()
	acc := New(store)

	// State claims one leaf, but the leaf record was never written.
	leaf := types.LeafHash([]byte("phantom"))
	raw, err := encodeState(&logState{leafCount: 1, frontier: []types.Hash{leaf}})
	require.NoError(t, err)
	require.NoError(t, store.Set(stateKey("ns1"), raw))

	_, err = acc.GenProof("ns1", 0)
	require.ErrorIs(t, err, types.ErrLeafMissing)
}

func TestGenProof_StaleProofFailsAgainstNewRoot(t *testing.T) {
	acc := newTestAccumulator()
	fillLog(t, acc, "ns1", 4)

	proof, err := acc.GenProof("ns1", 2)
	require.NoError(t, err)

	oldRoot, err := acc.Root("ns1")
	require.NoError(t, err)

	res, err := acc.Append("ns1", []byte("one more"))
	require.NoError(t, err)
	newRoot := res.Root

	require.True(t, VerifyProof(proof, oldRoot).OK)
	require.False(t, VerifyProof(proof, newRoot).OK)
}

func TestGenProof_WorksThroughCachedStore(t *testing.T) {
	inner := kv.NewMemoryStore()
	cached, err := kv.NewCachedStore(inner, 128, IsStateKey)
	require.NoError(t, err)

	acc := New(cached)
	root := fillLog(t, acc, "ns1", 9)

	for i := 0; i < 9; i++ {
		proof, err := acc.GenProof("ns1", int64(i))
		require.NoError(t, err)
		require.True(t, VerifyProof(proof, root).OK)
	}
}
