package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_submissions_total",
			Help: "Total number of submit calls by outcome (accepted, empty_input, in_flight).",
		},
		[]string{"outcome"},
	)

	requestsSettledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_settled_total",
			Help: "Total number of analysis requests that settled, by final status.",
		},
		[]string{"status"},
	)

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_request_duration_seconds",
		Help:    "Time from submit to settle of an analysis request.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	})
)
