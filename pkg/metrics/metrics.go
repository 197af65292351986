// Package metrics exposes optional prometheus instrumentation for the
// client. Collections take a nil *Metrics to run uninstrumented.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the prometheus instruments the client maintains.
type Metrics struct {
	CallsTotal           *prometheus.CounterVec
	EventsRetrievedTotal *prometheus.CounterVec
}

// New registers the instruments with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the instruments with reg. Tests pass a fresh registry to
// avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsm_api_calls_total",
			Help: "Total number of manager API calls by protocol, entrypoint and outcome",
		}, []string{"api", "call", "outcome"}),
		EventsRetrievedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsm_events_retrieved_total",
			Help: "Total number of events indexed into collections by category",
		}, []string{"category"}),
	}
}

// ObserveCall counts one dispatched call.
func (m *Metrics) ObserveCall(api, call, outcome string) {
	m.CallsTotal.WithLabelValues(api, call, outcome).Inc()
}

// ObserveEvents counts events indexed for a category.
func (m *Metrics) ObserveEvents(category string, n int) {
	m.EventsRetrievedTotal.WithLabelValues(category).Add(float64(n))
}
