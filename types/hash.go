package types

import (
	"crypto/sha256"
	"encoding/base64"
)

const (
	// HashSize is the size of a SHA-256 hash in bytes.
	HashSize = sha256.Size // 32 bytes

	// leafPrefix is the domain-separation byte prepended when hashing a leaf.
	leafPrefix byte = 0x00

	// nodePrefix is the domain-separation byte prepended when hashing an
	// interior node from its two children.
	nodePrefix byte = 0x01
)

// Hash is a raw SHA-256 digest. It is treated as an opaque byte sequence
// internally and encoded as base64url (no padding) at every external boundary.
type Hash []byte

// LeafHash computes the domain-separated hash of a leaf payload.
// The payload is hashed twice: once raw, then again with the leaf prefix
// prepended. The prefixed second pass guarantees that a leaf hash can never
// collide with an interior node hash, regardless of payload content.
func LeafHash(payload []byte) Hash {
	inner := sha256.Sum256(payload)
	h := sha256.New()
	h.Write([]byte{leafPrefix})
	h.Write(inner[:])
	return h.Sum(nil)
}

// NodeHash computes the domain-separated hash of an interior node from its
// left and right children. NodeHash is not commutative: callers must preserve
// the left/right order produced during append.
func NodeHash(left, right Hash) Hash {
	h := sha256.New()
	h.Write([]byte{nodePrefix})
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// Encoding is the base64url (no padding) encoding used for hashes crossing
// the storage and proof boundaries.
var Encoding = base64.RawURLEncoding

// EncodeHash returns the base64url string form of a hash.
// An empty hash encodes as the empty string.
func EncodeHash(h Hash) string {
	if len(h) == 0 {
		return ""
	}
	return Encoding.EncodeToString(h)
}

// DecodeHash parses a base64url hash string back into raw bytes.
// The empty string decodes to a nil hash.
func DecodeHash(s string) (Hash, error) {
	if s == "" {
		return nil, nil
	}
	b, err := Encoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != HashSize {
		return nil, ErrInvalidHashLength
	}
	return b, nil
}

// Equal reports whether two hashes are identical.
func (h Hash) Equal(other Hash) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the hash slot is unpopulated.
func (h Hash) IsEmpty() bool {
	return len(h) == 0
}

// String returns the base64url form of the hash.
func (h Hash) String() string {
	return EncodeHash(h)
}
