package accumulator

import (
	"fmt"
	"strings"
)

// Storage key naming scheme. This is the accumulator's contract with the
// storage collaborator:
//
//	tl:{namespace}:state            JSON-serialized accumulator state
//	tl:{namespace}:leaf:{index}     base64url leaf hash
//	tl:{namespace}:node:{level}:{position}  base64url interior node hash
//
// Interior nodes at level 0 are the leaf records themselves.
const keyPrefix = "tl"

func stateKey(namespace string) string {
	return fmt.Sprintf("%s:%s:state", keyPrefix, namespace)
}

func leafKey(namespace string, index int64) string {
	return fmt.Sprintf("%s:%s:leaf:%d", keyPrefix, namespace, index)
}

func nodeKey(namespace string, level int, position int64) string {
	if level == 0 {
		return leafKey(namespace, position)
	}
	return fmt.Sprintf("%s:%s:node:%d:%d", keyPrefix, namespace, level, position)
}

// IsStateKey reports whether key addresses mutable accumulator state.
// Leaf and node records are write-once; only state keys are rewritten, so
// read-through caches must bypass them.
func IsStateKey(key string) bool {
	return strings.HasPrefix(key, keyPrefix+":") && strings.HasSuffix(key, ":state")
}
