package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Buckets for push dispatch duration (1ms to 30s)
	durationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_http_requests_total",
			Help: "Total number of HTTP requests processed, labeled by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notify_gateway_http_request_duration_seconds",
			Help:    "Histogram of latencies for HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// PushesTotal counts individual push delivery attempts, by event type and result.
	PushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_pushes_total",
			Help: "Total number of push delivery attempts, labeled by event type and result.",
		},
		[]string{"event_type", "result"},
	)

	// RecordsPersistedTotal counts notification record writes, by result.
	RecordsPersistedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_records_persisted_total",
			Help: "Total number of notification record writes, labeled by result.",
		},
		[]string{"result"},
	)

	// MutedSkippedTotal counts recipients excluded from push delivery by mute filtering.
	MutedSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_gateway_muted_skipped_total",
			Help: "Total number of recipients excluded from push delivery because they muted the conversation.",
		},
	)

	OtpIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_otp_issued_total",
			Help: "Total number of verification codes issued, labeled by result.",
		},
		[]string{"result"},
	)

	OtpVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_otp_verified_total",
			Help: "Total number of verification attempts, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	// DispatchDuration measures the duration of a full dispatch batch.
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notify_gateway_dispatch_duration_seconds",
			Help:    "Histogram of push dispatch batch duration in seconds, by event type.",
			Buckets: durationBuckets,
		},
		[]string{"event_type"},
	)
)

// MetricsHandler returns the HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// ObserveDispatchDuration simplifies observing dispatch batch duration.
func ObserveDispatchDuration(eventType string, start time.Time) {
	DispatchDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
}
