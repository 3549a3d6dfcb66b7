// Package metrics provides metrics collection for the accumulator and its
// storage collaborator, with Prometheus and no-op implementations.
package metrics

import (
	"time"
)

// Metrics defines the interface for collecting accumulator metrics.
// All methods are designed to be thread-safe and non-blocking.
type Metrics interface {
	// Append metrics
	IncAppends(namespace string)
	ObserveAppendLatency(latency time.Duration)
	SetLeafCount(namespace string, count int64)

	// Proof metrics
	IncProofsGenerated(namespace string)
	ObserveProofLatency(latency time.Duration)
	ObserveProofPathLength(length int)

	// Verification metrics
	IncVerifications(result string)

	// Store metrics
	IncStoreGets()
	IncStoreSets()
	ObserveStoreLatency(op string, latency time.Duration)

	// HTTP handler (for serving metrics)
	Handler() any
}

// Verification result labels.
const (
	ResultOK       = "ok"
	ResultMismatch = "hash_mismatch"
)

// Store operation labels.
const (
	OpGet = "get"
	OpSet = "set"
)
