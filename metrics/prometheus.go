package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// Append metrics
	appendsTotal  *prometheus.CounterVec
	appendLatency prometheus.Histogram
	leafCount     *prometheus.GaugeVec

	// Proof metrics
	proofsGenerated *prometheus.CounterVec
	proofLatency    prometheus.Histogram
	proofPathLength prometheus.Histogram

	// Verification metrics
	verifications *prometheus.CounterVec

	// Store metrics
	storeGets    prometheus.Counter
	storeSets    prometheus.Counter
	storeLatency *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: registry,

		appendsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "appends_total",
				Help:      "Total number of leaves appended",
			},
			[]string{"log_namespace"},
		),
		appendLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "append_latency_seconds",
				Help:      "Time to append a leaf including storage writes",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		leafCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "leaf_count",
				Help:      "Current number of leaves per log namespace",
			},
			[]string{"log_namespace"},
		),

		proofsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proofs_generated_total",
				Help:      "Total number of inclusion proofs generated",
			},
			[]string{"log_namespace"},
		),
		proofLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "proof_latency_seconds",
				Help:      "Time to generate an inclusion proof",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		proofPathLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "proof_path_length",
				Help:      "Number of sibling hashes per generated proof",
				Buckets:   prometheus.LinearBuckets(0, 4, 16),
			},
		),

		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Total number of proof verifications by result",
			},
			[]string{"result"},
		),

		storeGets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_gets_total",
				Help:      "Total number of storage reads",
			},
		),
		storeSets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_sets_total",
				Help:      "Total number of storage writes",
			},
		),
		storeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_latency_seconds",
				Help:      "Storage operation latency",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		m.appendsTotal,
		m.appendLatency,
		m.leafCount,
		m.proofsGenerated,
		m.proofLatency,
		m.proofPathLength,
		m.verifications,
		m.storeGets,
		m.storeSets,
		m.storeLatency,
	)

	return m
}

// Append metrics

func (m *PrometheusMetrics) IncAppends(namespace string) {
	m.appendsTotal.WithLabelValues(namespace).Inc()
}

func (m *PrometheusMetrics) ObserveAppendLatency(latency time.Duration) {
	m.appendLatency.Observe(latency.Seconds())
}

func (m *PrometheusMetrics) SetLeafCount(namespace string, count int64) {
	m.leafCount.WithLabelValues(namespace).Set(float64(count))
}

// Proof metrics

func (m *PrometheusMetrics) IncProofsGenerated(namespace string) {
	m.proofsGenerated.WithLabelValues(namespace).Inc()
}

func (m *PrometheusMetrics) ObserveProofLatency(latency time.Duration) {
	m.proofLatency.Observe(latency.Seconds())
}

func (m *PrometheusMetrics) ObserveProofPathLength(length int) {
	m.proofPathLength.Observe(float64(length))
}

// Verification metrics

func (m *PrometheusMetrics) IncVerifications(result string) {
	m.verifications.WithLabelValues(result).Inc()
}

// Store metrics

func (m *PrometheusMetrics) IncStoreGets() {
	m.storeGets.Inc()
}

func (m *PrometheusMetrics) IncStoreSets() {
	m.storeSets.Inc()
}

func (m *PrometheusMetrics) ObserveStoreLatency(op string, latency time.Duration) {
	m.storeLatency.WithLabelValues(op).Observe(latency.Seconds())
}

// Handler returns an HTTP handler for serving metrics.
func (m *PrometheusMetrics) Handler() any {
	return m.HTTPHandler()
}

// HTTPHandler returns a typed HTTP handler for serving metrics.
func (m *PrometheusMetrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var _ Metrics = (*PrometheusMetrics)(nil)
