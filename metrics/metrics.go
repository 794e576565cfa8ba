package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "location_service_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Credentials
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_registrations_total",
			Help: "Registration attempts by result",
		},
		[]string{"result"}, // "created", "invalid", "duplicate", "error"
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_logins_total",
			Help: "Password login attempts by result",
		},
		[]string{"result"}, // "success", "invalid_credentials", "error"
	)

	APIKeyAuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_api_key_auth_failures_total",
			Help: "Rejected API key authentications by reason",
		},
		[]string{"reason"}, // "missing", "invalid"
	)

	KeyCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_api_key_cache_lookups_total",
			Help: "API key cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Ledger
	LocationsAppendedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "location_service_locations_appended_total",
			Help: "Location samples committed to the ledger",
		},
	)

	LocationBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "location_service_location_batch_size",
			Help:    "Number of samples per append call",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)
