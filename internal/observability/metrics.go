// Package observability holds the Prometheus metrics of the prediction
// gateway.
package observability

import (
	"time"

	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "diagno"

// Prediction outcomes recorded by RecordPrediction.
const (
	OutcomePositive      = "positive"
	OutcomeNegative      = "negative"
	OutcomeUpstreamError = "upstream_error"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	PredictionsTotal     *prometheus.CounterVec
	PersistFailuresTotal *prometheus.CounterVec
	UpstreamSeconds      *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "prediction",
				Name:      "requests_total",
				Help:      "Prediction requests by disease and outcome",
			},
			[]string{"disease", "outcome"},
		),
		PersistFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "prediction",
				Name:      "persist_failures_total",
				Help:      "Reports that could not be stored after a successful prediction",
			},
			[]string{"disease"},
		),
		UpstreamSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "prediction",
				Name:      "upstream_duration_seconds",
				Help:      "Latency of calls to the prediction service",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"disease"},
		),
	}
}

func (m *Metrics) RecordPrediction(disease models.DiseaseType, outcome string) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(disease.Slug(), outcome).Inc()
}

func (m *Metrics) RecordPersistFailure(disease models.DiseaseType) {
	if m == nil {
		return
	}
	m.PersistFailuresTotal.WithLabelValues(disease.Slug()).Inc()
}

func (m *Metrics) ObserveUpstream(disease models.DiseaseType, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamSeconds.WithLabelValues(disease.Slug()).Observe(elapsed.Seconds())
}
