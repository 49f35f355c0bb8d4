package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{Namespace: "fare_engine", Name: "notifications_created_total", Help: "Total ride notifications created"})
	NotificationsExpired = promauto.NewCounter(prometheus.CounterOpts{Namespace: "fare_engine", Name: "notifications_expired_total", Help: "Total pending notifications auto-rejected on expiry"})
	DistanceFallbacks    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "fare_engine", Name: "distance_fallbacks_total", Help: "Total routed-distance failures recovered via geometric fallback"})
	FaresComputed        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "fare_engine", Name: "fares_computed_total", Help: "Total fare breakdowns computed"})
	PointsCredited       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "fare_engine", Name: "points_credited_total", Help: "Total loyalty points credited to the ledger"})

	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "fare_engine", Name: "lifecycle_transitions_total", Help: "Lifecycle transitions by target status"},
		[]string{"to"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "fare_engine", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fare_engine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
