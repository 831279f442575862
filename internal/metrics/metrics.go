package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AlarmsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alarms_emitted_total",
			Help: "Alarm rows written by fan-out, by alarm type.",
		},
		[]string{"type"},
	)

	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artwork_like_toggles_total",
			Help: "Like toggles, by resulting status.",
		},
		[]string{"status"},
	)

	LikeToggleRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artwork_like_toggle_retries_total",
			Help: "Like toggle transactions re-run after a uniqueness conflict.",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-member rate limit.",
		},
	)
)
