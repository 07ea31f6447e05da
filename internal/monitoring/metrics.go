// Package monitoring - metrics.go exports interaction metrics to Prometheus.
//
// DESIGN: Each Metrics owns a private registry (no global default registry):
//   - chatbot_interactions_total{status}:   Observed interactions
//   - chatbot_high_latency_total:           Interactions above the threshold
//   - chatbot_pii_responses_total:          Responses with at least one match
//   - chatbot_pii_matches_total{category}:  Individual PII matches
//   - chatbot_response_latency_seconds:     Latency histogram
//
// There is no HTTP endpoint. WriteTextfile dumps the registry in the text
// exposition format for the node_exporter textfile collector.
// All methods are no-ops on a nil *Metrics.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/compresr/chatbot-ops/internal/pii"
)

// Metrics collects operational metrics.
type Metrics struct {
	registry     *prometheus.Registry
	interactions *prometheus.CounterVec
	highLatency  prometheus.Counter
	piiResponses prometheus.Counter
	piiMatches   *prometheus.CounterVec
	latency      prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_interactions_total",
				Help: "Total number of chatbot interactions observed",
			},
			[]string{"status"},
		),
		highLatency: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatbot_high_latency_total",
			Help: "Interactions whose latency exceeded the alert threshold",
		}),
		piiResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatbot_pii_responses_total",
			Help: "Responses containing at least one PII match",
		}),
		piiMatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatbot_pii_matches_total",
				Help: "Individual PII matches by category",
			},
			[]string{"category"},
		),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatbot_response_latency_seconds",
			Help:    "Chatbot response latency in seconds",
			Buckets: []float64{0.5, 1, 2, 3, 5, 7, 10},
		}),
	}

	m.registry.MustRegister(
		m.interactions,
		m.highLatency,
		m.piiResponses,
		m.piiMatches,
		m.latency,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordInteraction records one interaction and its latency.
func (m *Metrics) RecordInteraction(status Status, latency time.Duration) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(string(status)).Inc()
	m.latency.Observe(latency.Seconds())
}

// RecordHighLatency records an interaction above the latency threshold.
func (m *Metrics) RecordHighLatency() {
	if m == nil {
		return
	}
	m.highLatency.Inc()
}

// RecordPII records the matches found in one response.
func (m *Metrics) RecordPII(findings pii.Findings) {
	if m == nil || !findings.Any() {
		return
	}
	m.piiResponses.Inc()
	for category, matches := range findings {
		m.piiMatches.WithLabelValues(string(category)).Add(float64(len(matches)))
	}
}

// WriteTextfile writes the registry to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
