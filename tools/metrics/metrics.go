package metrics

import (
	"math"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crowdpulse/pulsewatch/model"
)

// Metrics holds the monitor counters exposed on /metrics.
type Metrics struct {
	SamplesAccepted   atomic.Uint64
	SamplesDuplicated atomic.Uint64
	SamplesRejected   atomic.Uint64
	ThresholdChanges  atomic.Uint64
	ThresholdRejected atomic.Uint64
	ArtifactsEmitted  atomic.Uint64
	FetchErrors       atomic.Uint64

	// float gauges, stored as IEEE-754 bits
	threshold  atomic.Uint64
	average    atomic.Uint64
	crossings  atomic.Uint64
	windowSize atomic.Uint64
	category   atomic.Int64

	registry *prometheus.Registry
}

// New creates a Metrics instance with its own Prometheus registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.category.Store(-1)
	m.registerPrometheusMetrics()
	return m
}

func (m *Metrics) counter(name, help string, value *atomic.Uint64) {
	m.registry.MustRegister(prometheus.NewCounterFunc(
		prometheus.CounterOpts{Name: name, Help: help},
		func() float64 { return float64(value.Load()) },
	))
}

func (m *Metrics) gauge(name, help string, value func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: name, Help: help},
		value,
	))
}

func (m *Metrics) registerPrometheusMetrics() {
	m.counter("pulsewatch_samples_accepted_total", "Samples pushed into the window", &m.SamplesAccepted)
	m.counter("pulsewatch_samples_duplicated_total", "Samples skipped because the label repeated the tail", &m.SamplesDuplicated)
	m.counter("pulsewatch_samples_rejected_total", "Samples rejected for non-finite values", &m.SamplesRejected)
	m.counter("pulsewatch_threshold_changes_total", "Accepted threshold changes", &m.ThresholdChanges)
	m.counter("pulsewatch_threshold_rejected_total", "Rejected threshold changes", &m.ThresholdRejected)
	m.counter("pulsewatch_artifacts_emitted_total", "Render artifacts emitted", &m.ArtifactsEmitted)
	m.counter("pulsewatch_fetch_errors_total", "Failed sample fetches", &m.FetchErrors)

	m.gauge("pulsewatch_threshold", "Current engagement threshold",
		func() float64 { return math.Float64frombits(m.threshold.Load()) })
	m.gauge("pulsewatch_window_average", "Rolling average of the window",
		func() float64 { return math.Float64frombits(m.average.Load()) })
	m.gauge("pulsewatch_window_crossings", "Threshold crossings inside the window",
		func() float64 { return float64(m.crossings.Load()) })
	m.gauge("pulsewatch_window_size", "Samples currently held in the window",
		func() float64 { return float64(m.windowSize.Load()) })
	m.gauge("pulsewatch_event_category", "Current event category (-1 none, 0 below, 1 within, 2 above)",
		func() float64 { return float64(m.category.Load()) })
}

// ObserveArtifact updates the gauges from an emitted artifact.
func (m *Metrics) ObserveArtifact(artifact model.Artifact) {
	m.ArtifactsEmitted.Add(1)
	m.threshold.Store(math.Float64bits(artifact.Threshold))
	m.average.Store(math.Float64bits(artifact.Average))
	m.windowSize.Store(uint64(artifact.Samples))

	synthetic := 0
	for _, point := range artifact.Points {
		if point.Synthetic {
			synthetic++
		}
	}
	m.crossings.Store(uint64(synthetic))

	if artifact.Event == nil {
		m.category.Store(-1)
		return
	}
	switch *artifact.Event {
	case model.EventBelow:
		m.category.Store(0)
	case model.EventWithin:
		m.category.Store(1)
	case model.EventAbove:
		m.category.Store(2)
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
