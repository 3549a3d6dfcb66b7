package metrics

import (
	"time"
)

// NopMetrics is a no-op implementation of the Metrics interface.
// Use this when metrics collection is disabled.
type NopMetrics struct{}

// NewNopMetrics creates a new NopMetrics instance.
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// Append metrics (no-op)

func (m *NopMetrics) IncAppends(namespace string)                {}
func (m *NopMetrics) ObserveAppendLatency(latency time.Duration) {}
func (m *NopMetrics) SetLeafCount(namespace string, count int64) {}

// Proof metrics (no-op)

func (m *NopMetrics) IncProofsGenerated(namespace string)       {}
func (m *NopMetrics) ObserveProofLatency(latency time.Duration) {}
func (m *NopMetrics) ObserveProofPathLength(length int)         {}

// Verification metrics (no-op)

func (m *NopMetrics) IncVerifications(result string) {}

// Store metrics (no-op)

func (m *NopMetrics) IncStoreGets()                                        {}
func (m *NopMetrics) IncStoreSets()                                        {}
func (m *NopMetrics) ObserveStoreLatency(op string, latency time.Duration) {}

// Handler returns nil as there is nothing to serve.
func (m *NopMetrics) Handler() any { return nil }

var _ Metrics = (*NopMetrics)(nil)
