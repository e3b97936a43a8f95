// Package metrics defines the Prometheus collectors for secret loading and
// request gating.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SecretLoadsTotal tracks secret load attempts by backend and outcome
	SecretLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_loads_total",
			Help: "Total secret load attempts by backend (env/github) and status (success/failure)",
		},
		[]string{"backend", "status"},
	)

	// SecretLoadDuration tracks secret load latency in seconds
	SecretLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secret_load_duration_seconds",
			Help:    "Secret load duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"backend"},
	)

	// GateDecisionsTotal tracks API key gate outcomes
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_decisions_total",
			Help: "API key gate decisions by outcome (accepted/missing_credential/invalid_credential/configuration_unavailable/server_misconfigured)",
		},
		[]string{"outcome"},
	)
)
