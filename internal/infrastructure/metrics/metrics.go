package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Composition sources
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

var (
	EmailsComposed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_emails_composed_total",
			Help: "Total number of summary emails composed, by content source",
		},
		[]string{"source"},
	)

	EmailsQueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_emails_queued_total",
			Help: "Total number of per-recipient outcomes recorded by report operations",
		},
		[]string{"operation", "outcome"},
	)

	EmailsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "veritas_emails_dispatched_total",
			Help: "Total number of pending emails relayed, by final status",
		},
		[]string{"status"},
	)

	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "veritas_dispatch_duration_seconds",
			Help:    "Duration of a full pending email dispatch run",
			Buckets: prometheus.DefBuckets,
		},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "veritas_llm_request_duration_seconds",
			Help:    "Duration of chat completion requests",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"outcome"},
	)
)
