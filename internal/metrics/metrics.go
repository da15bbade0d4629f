package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshai_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meshai_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .025, .1, .5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"method", "path"},
	)

	// Pipeline metrics
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshai_generations_total",
			Help: "Total persona generation calls",
		},
		[]string{"phase"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshai_generation_failures_total",
			Help: "Generation calls replaced by fallback content",
		},
		[]string{"phase"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshai_generation_duration_seconds",
			Help:    "Latency of a single persona generation call",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	SessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshai_sessions_total",
			Help: "Total simulated sessions",
		},
		[]string{"flow"}, // "simple", "discussion", or "focus_group"
	)

	MessagesProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meshai_messages_produced_total",
			Help: "Total transcript messages produced",
		},
	)

	SessionsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meshai_sessions_archived_total",
			Help: "Focus-group sessions written to the archive",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshai_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)
)
