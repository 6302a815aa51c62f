// Package observability provides Prometheus metrics for the store API connector.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "comet",
			Subsystem: "connector",
			Name:      "request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "status"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "comet",
			Subsystem: "connector",
			Name:      "requests_total",
			Help:      "Total number of API request attempts",
		},
		[]string{"method", "status"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "comet",
			Subsystem: "connector",
			Name:      "retries_total",
			Help:      "Total number of retries scheduled after rate limiting",
		},
		[]string{"method"},
	)

	inflightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "comet",
			Subsystem: "connector",
			Name:      "inflight_requests",
			Help:      "Number of requests currently in flight",
		},
	)

	transportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "comet",
			Subsystem: "connector",
			Name:      "transport_errors_total",
			Help:      "Total number of transport-level request failures",
		},
		[]string{"method"},
	)
)

// RecordRequest records a completed HTTP exchange.
func RecordRequest(method string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	requestsTotal.WithLabelValues(method, status).Inc()
	requestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}

// RecordRetry records a retry scheduled after a rate-limit response.
func RecordRetry(method string) {
	retriesTotal.WithLabelValues(method).Inc()
}

// RecordTransportError records a request that failed before producing a response.
func RecordTransportError(method string) {
	transportErrors.WithLabelValues(method).Inc()
}

// IncInflight marks a request entering the transport.
func IncInflight() {
	inflightRequests.Inc()
}

// DecInflight marks a request leaving the transport.
func DecInflight() {
	inflightRequests.Dec()
}
