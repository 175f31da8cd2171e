// Package metrics exposes prometheus collectors for bridge calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector counts generation outcomes and upstream latency.
type Collector struct {
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	inFlight           prometheus.Gauge
}

// NewCollector registers the collectors on reg. A nil reg falls back to the default registerer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of video generation requests by outcome",
			},
			[]string{"model", "outcome"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Upstream video generation duration in seconds",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 180, 240, 300},
			},
			[]string{"model"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generations_in_flight",
				Help:      "Number of upstream generation calls currently awaiting a response",
			},
		),
	}
}

// Begin marks one upstream call as in flight and returns a func that records its outcome.
func (c *Collector) Begin(model string) func(outcome string) {
	if c == nil {
		return func(string) {}
	}
	start := time.Now()
	c.inFlight.Inc()
	return func(outcome string) {
		c.inFlight.Dec()
		c.generationDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
		c.generationsTotal.WithLabelValues(model, outcome).Inc()
	}
}

// Rejected records a request refused before any upstream call.
func (c *Collector) Rejected(model, outcome string) {
	if c == nil {
		return
	}
	c.generationsTotal.WithLabelValues(model, outcome).Inc()
}
