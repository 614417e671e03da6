package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	diagnostics *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// Labels: route, code
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flrw",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"route", "code"}),
		// Labels: route
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flrw",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),
		// Labels: equality (matter-radiation, matter-dark-energy)
		diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flrw",
			Name:      "construction_diagnostics_total",
			Help:      "Equality redshifts which could not be found",
		}, []string{"equality"}),
	}
}
