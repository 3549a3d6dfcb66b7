package accumulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/merkleberry/types"
)

// flipHash decodes a base64url hash, flips one bit, and re-encodes it.
func flipHash(t *testing.T, s string) string {
	t.Helper()

	h, err := types.DecodeHash(s)
	require.NoError(t, err)
	h[0] ^= 0x01
	return types.EncodeHash(h)
}

func validProof(t *testing.T, n int, index int64) (*Proof, string) {
	t.Helper()

	acc := newTestAccumulator()
	root := fillLog(t, acc, "ns1", n)
	proof, err := acc.GenProof("ns1", index)
	require.NoError(t, err)
	return proof, root
}

func TestVerifyProof_TamperedLeafHash(t *testing.T) {
	proof, root := validProof(t, 5, 2)

	proof.LeafHash = flipHash(t, proof.LeafHash)

	res := VerifyProof(proof, root)
	require.False(t, res.OK)
	require.Equal(t, ReasonHashMismatch, res.Reason)
}

func TestVerifyProof_TamperedSiblings(t *testing.T) {
	proof, root := validProof(t, 13, 6)
	require.NotEmpty(t, proof.Siblings)

	for i := range proof.Siblings {
		original := proof.Siblings[i]
		proof.Siblings[i] = flipHash(t, original)

		res := VerifyProof(proof, root)
		require.False(t, res.OK, "tampering sibling %d went undetected", i)
		require.Equal(t, ReasonHashMismatch, res.Reason)

		proof.Siblings[i] = original
	}

	// Restored proof verifies again.
	require.True(t, VerifyProof(proof, root).OK)
}

func TestVerifyProof_WrongRoot(t *testing.T) {
	proof, root := validProof(t, 7, 3)

	res := VerifyProof(proof, flipHash(t, root))
	require.False(t, res.OK)
	require.Equal(t, ReasonHashMismatch, res.Reason)
}

func TestVerifyProof_WrongIndex(t *testing.T) {
	proof, root := validProof(t, 8, 3)

	proof.Index = 4

	require.False(t, VerifyProof(proof, root).OK)
}

// A proof with no siblings must only verify for a single-leaf log whose
// root is the leaf hash itself, never unconditionally.
func TestVerifyProof_EmptySiblingsNotTrusted(t *testing.T) {
	acc := newTestAccumulator()
	root := fillLog(t, acc, "ns1", 3)

	forged := &Proof{
		Version:   Version,
		Namespace: "ns1",
		Index:     0,
		LeafCount: 3,
		LeafHash:  root, // claim the root itself is the leaf
		Siblings:  nil,
	}

	res := VerifyProof(forged, root)
	require.False(t, res.OK)
	require.Equal(t, ReasonHashMismatch, res.Reason)
}

func TestVerifyProof_TruncatedAndExtendedPaths(t *testing.T) {
	proof, root := validProof(t, 8, 5)
	require.Len(t, proof.Siblings, 3)

	t.Run("truncated", func(t *testing.T) {
		truncated := *proof
		truncated.Siblings = proof.Siblings[:2]
		require.False(t, VerifyProof(&truncated, root).OK)
	})

	t.Run("extended", func(t *testing.T) {
		extended := *proof
		extended.Siblings = append(append([]string{}, proof.Siblings...), proof.Siblings[0])
		require.False(t, VerifyProof(&extended, root).OK)
	})
}

func TestVerifyProof_MalformedInputs(t *testing.T) {
	proof, root := validProof(t, 4, 1)

	t.Run("nil proof", func(t *testing.T) {
		res := VerifyProof(nil, root)
		require.False(t, res.OK)
		require.Equal(t, ReasonHashMismatch, res.Reason)
	})

	t.Run("index out of range", func(t *testing.T) {
		p := *proof
		p.Index = p.LeafCount
		require.False(t, VerifyProof(&p, root).OK)

		p.Index = -1
		require.False(t, VerifyProof(&p, root).OK)
	})

	t.Run("undecodable leaf hash", func(t *testing.T) {
		p := *proof
		p.LeafHash = "!!!"
		require.False(t, VerifyProof(&p, root).OK)
	})

	t.Run("undecodable sibling", func(t *testing.T) {
		p := *proof
		p.Siblings = append([]string{}, proof.Siblings...)
		p.Siblings[0] = "!!!"
		require.False(t, VerifyProof(&p, root).OK)
	})

	t.Run("empty claimed root", func(t *testing.T) {
		require.False(t, VerifyProof(proof, "").OK)
	})

	t.Run("zero leaf count", func(t *testing.T) {
		p := *proof
		p.LeafCount = 0
		require.False(t, VerifyProof(&p, root).OK)
	})
}

func TestVerifyProof_NeverPanics(t *testing.T) {
	// Garbage proofs must produce a result, not a panic.
	garbage := &Proof{
		Version:   Version,
		Namespace: "ns1",
		Index:     9999,
		LeafCount: 3,
		LeafHash:  "c29tZXRoaW5n",
		Siblings:  []string{"", "also garbage"},
	}
	res := VerifyProof(garbage, "bm90IGEgcm9vdA")
	require.False(t, res.OK)
	require.Equal(t, ReasonHashMismatch, res.Reason)
}

func TestVerify_RecordsOutcome(t *testing.T) {
	acc := newTestAccumulator()
	root := fillLog(t, acc, "ns1", 4)

	proof, err := acc.GenProof("ns1", 1)
	require.NoError(t, err)

	require.True(t, acc.Verify(proof, root).OK)

	res := acc.Verify(proof, flipHash(t, root))
	require.False(t, res.OK)
	require.Equal(t, ReasonHashMismatch, res.Reason)
}
