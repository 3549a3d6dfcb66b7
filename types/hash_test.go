package types

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafHash_Deterministic(t *testing.T) {
	payload := []byte("hello transparency log")

	h1 := LeafHash(payload)
	h2 := LeafHash(payload)

	require.Len(t, h1, HashSize)
	require.Equal(t, h1, h2)
}

func TestLeafHash_EmptyPayload(t *testing.T) {
	// Empty payloads are accepted; the hash is still well defined.
	h := LeafHash(nil)
	require.Len(t, h, HashSize)
	require.Equal(t, h, LeafHash([]byte{}))
}

func TestLeafHash_DoubleHashed(t *testing.T) {
	payload := []byte("payload")

	inner := sha256.Sum256(payload)
	outer := sha256.New()
	outer.Write([]byte{0x00})
	outer.Write(inner[:])

	require.Equal(t, Hash(outer.Sum(nil)), LeafHash(payload))
}

func TestNodeHash_NotCommutative(t *testing.T) {
	a := LeafHash([]byte("a"))
	b := LeafHash([]byte("b"))

	require.NotEqual(t, NodeHash(a, b), NodeHash(b, a))
}

func TestDomainSeparation(t *testing.T) {
	// A leaf whose payload happens to be the byte-wise concatenation of two
	// hashes must not collide with the node hash of those hashes.
	left := LeafHash([]byte("left"))
	right := LeafHash([]byte("right"))

	payload := append(append([]byte{}, left...), right...)

	require.NotEqual(t, NodeHash(left, right), LeafHash(payload))
}

func TestEncodeDecodeHash(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		h := LeafHash([]byte("x"))
		s := EncodeHash(h)
		require.NotEmpty(t, s)
		require.NotContains(t, s, "=")

		decoded, err := DecodeHash(s)
		require.NoError(t, err)
		require.Equal(t, h, decoded)
	})

	t.Run("empty string decodes to nil", func(t *testing.T) {
		decoded, err := DecodeHash("")
		require.NoError(t, err)
		require.Nil(t, decoded)
		require.True(t, decoded.IsEmpty())
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := DecodeHash(Encoding.EncodeToString([]byte("short")))
		require.ErrorIs(t, err, ErrInvalidHashLength)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := DecodeHash("!!!not-base64url!!!")
		require.Error(t, err)
	})
}

func TestHashEqual(t *testing.T) {
	a := LeafHash([]byte("a"))
	b := LeafHash([]byte("b"))

	require.True(t, a.Equal(LeafHash([]byte("a"))))
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(a[:HashSize-1]))
}
