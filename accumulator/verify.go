package accumulator

import (
	"github.com/blockberries/merkleberry/logging"
	"github.com/blockberries/merkleberry/metrics"
	"github.com/blockberries/merkleberry/types"
)

// VerifyResult is the outcome of a proof verification. A failed verification
// is an expected, non-exceptional outcome (e.g. a forged proof), so it is
// reported as a value rather than an error.
type VerifyResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ReasonHashMismatch is the single failure reason reported by VerifyProof.
// Malformed proofs and recomputation mismatches are deliberately not
// distinguished: a verifier must not leak which part of a forged proof was
// wrong.
const ReasonHashMismatch = "hash_mismatch"

// VerifyProof recomputes the root implied by the proof's leaf hash and
// sibling path and compares it to claimedRoot. It never returns an error.
//
// The recomputation walks the path from the leaf upward, deciding left/right
// orientation from the leaf index and the tree size recorded in the proof.
// An empty sibling path is valid only for a single-leaf log, where the leaf
// hash must equal the root itself; it is never accepted unconditionally.
func VerifyProof(proof *Proof, claimedRoot string) VerifyResult {
	if verifyProof(proof, claimedRoot) {
		return VerifyResult{OK: true}
	}
	return VerifyResult{OK: false, Reason: ReasonHashMismatch}
}

// Verify is VerifyProof with the accumulator's metrics and logging attached.
// Verification itself needs no store access.
func (a *Accumulator) Verify(proof *Proof, claimedRoot string) VerifyResult {
	res := VerifyProof(proof, claimedRoot)
	if res.OK {
		a.metrics.IncVerifications(metrics.ResultOK)
	} else {
		a.metrics.IncVerifications(metrics.ResultMismatch)
		a.logger.Debug("proof rejected",
			logging.Reason(res.Reason),
		)
	}
	return res
}

func verifyProof(proof *Proof, claimedRoot string) bool {
	if proof == nil {
		return false
	}
	if proof.Index < 0 || proof.Index >= proof.LeafCount {
		return false
	}

	current, err := types.DecodeHash(proof.LeafHash)
	if err != nil || current.IsEmpty() {
		return false
	}
	root, err := types.DecodeHash(claimedRoot)
	if err != nil || root.IsEmpty() {
		return false
	}

	// fn tracks the node's index at the current level, sn the index of the
	// last node at that level. A set low bit of fn, or fn sitting on the
	// ragged right edge (fn == sn), means the current node is a right child.
	fn := proof.Index
	sn := proof.LeafCount - 1

	for _, s := range proof.Siblings {
		if sn == 0 {
			// Path longer than the tree is tall.
			return false
		}
		sibling, err := types.DecodeHash(s)
		if err != nil || sibling.IsEmpty() {
			return false
		}

		if fn&1 == 1 || fn == sn {
			current = types.NodeHash(sibling, current)
			if fn&1 == 0 {
				// Right-edge node: skip levels it is promoted through.
				for fn != 0 && fn&1 == 0 {
					fn >>= 1
					sn >>= 1
				}
			}
		} else {
			current = types.NodeHash(current, sibling)
		}
		fn >>= 1
		sn >>= 1
	}

	return sn == 0 && current.Equal(root)
}
