// Package metrics exposes Prometheus instrumentation for the activity repository.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results.
const (
	ResultChanged = "changed"
	ResultNoop    = "noop"
	ResultError   = "error"
	ResultOK      = "ok"
)

// Metrics owns a private registry so tests can create as many instances as they need.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	stored     prometheus.Gauge
}

// New builds and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "activities",
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Repository operations by name and result.",
		}, []string{"operation", "result"}),
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "activities",
			Name:      "stored",
			Help:      "Number of activities in the persisted collection after the last load or save.",
		}),
	}
	m.registry.MustRegister(
		m.operations,
		m.stored,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOperation counts one repository call.
func (m *Metrics) ObserveOperation(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// SetStored records the collection size.
func (m *Metrics) SetStored(n int) {
	if m == nil {
		return
	}
	m.stored.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
