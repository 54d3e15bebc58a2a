// Package metrics registers the Prometheus collectors exposed by the
// dfakit server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the server's collectors so handlers can record
// without touching the default registry directly.
type Metrics struct {
	Simulations  *prometheus.CounterVec
	DecodeErrors prometheus.Counter
	Sessions     prometheus.Gauge
	Finalized    *prometheus.CounterVec
}

// New creates and registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfakit_simulations_total",
				Help: "Evaluation runs served, labeled by outcome.",
			},
			[]string{"verdict"}, // accepted, rejected, error
		),
		DecodeErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dfakit_decode_errors_total",
				Help: "Automaton documents rejected at decode time.",
			},
		),
		Sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dfakit_builder_sessions",
				Help: "Builder sessions currently stored.",
			},
		),
		Finalized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfakit_sessions_finalized_total",
				Help: "Finalize attempts, labeled by result.",
			},
			[]string{"result"}, // ok, invalid, incomplete
		),
	}
	reg.MustRegister(m.Simulations, m.DecodeErrors, m.Sessions, m.Finalized)
	return m
}

// RecordVerdict maps an evaluation outcome onto the simulations counter.
func (m *Metrics) RecordVerdict(accepted bool, err error) {
	switch {
	case err != nil:
		m.Simulations.WithLabelValues("error").Inc()
	case accepted:
		m.Simulations.WithLabelValues("accepted").Inc()
	default:
		m.Simulations.WithLabelValues("rejected").Inc()
	}
}
