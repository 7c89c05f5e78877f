// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// SourceMetrics records per-source lookups. A nil *SourceMetrics is valid and
// records nothing.
type SourceMetrics struct {
	checks   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Observe records one lookup of the given source and its outcome.
func (m *SourceMetrics) Observe(source, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(source, outcome).Inc()
	m.duration.WithLabelValues(source).Observe(took.Seconds())
}

// NewSourceMetrics creates the collectors and registers them with reg.
func NewSourceMetrics(reg prometheus.Registerer) (*SourceMetrics, error) {
	m := &SourceMetrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "breachcheck",
			Subsystem: "source",
			Name:      "checks_total",
			Help:      "Number of source lookups by outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "breachcheck",
			Subsystem: "source",
			Name:      "check_duration_seconds",
			Help:      "Latency of source lookups.",
			Buckets:   DefaultBuckets,
		}, []string{"source"}),
	}

	for _, c := range []prometheus.Collector{m.checks, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register source metrics: %w", err)
		}
	}

	return m, nil
}
