// Package metrics provides Prometheus metrics for the recommender.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"UploadTimeAdvisor/internal/domain"
)

const namespace = "uploadadvisor"

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	// GenerationTotal counts collaborator calls by operation and outcome.
	GenerationTotal *prometheus.CounterVec
	// GenerationDuration measures collaborator latency.
	GenerationDuration *prometheus.HistogramVec
	// TokensTotal accumulates token usage by kind.
	TokensTotal *prometheus.CounterVec
	// ExtractionTotal counts extraction outcomes.
	ExtractionTotal *prometheus.CounterVec
}

// New registers collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		GenerationTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_total",
				Help:      "Total number of text generation calls",
			},
			[]string{"operation", "status"},
		),
		GenerationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of text generation calls in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		TokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_total",
				Help:      "Tokens consumed by text generation",
			},
			[]string{"kind"},
		),
		ExtractionTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_total",
				Help:      "Time extraction outcomes",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGeneration records one collaborator call. Safe on a nil receiver.
func (m *Metrics) RecordGeneration(operation string, err error, elapsed time.Duration, usage domain.TokenUsage) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.GenerationTotal.WithLabelValues(operation, status).Inc()
	m.GenerationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.TokensTotal.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	m.TokensTotal.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}

// RecordExtraction records whether a time was extracted.
func (m *Metrics) RecordExtraction(matched bool) {
	if m == nil {
		return
	}
	result := "none"
	if matched {
		result = "matched"
	}
	m.ExtractionTotal.WithLabelValues(result).Inc()
}
