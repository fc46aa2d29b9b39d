// Package metrics registers the application's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "water_abstraction",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "water_abstraction",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "water_abstraction",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	journeyEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "water_abstraction",
			Subsystem: "setup",
			Name:      "journey_events_total",
			Help:      "Setup journey lifecycle events.",
		},
		[]string{"event"},
	)

	sessionsCleaned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "water_abstraction",
			Subsystem: "sessions",
			Name:      "cleaned_total",
			Help:      "Expired setup sessions removed by the cleanup job.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		journeyEvents,
		sessionsCleaned,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// IncrementInFlight marks a request as started.
func IncrementInFlight() { httpInFlight.Inc() }

// DecrementInFlight marks a request as finished.
func DecrementInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one handled request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordJourneyEvent counts a journey lifecycle event (started, finalized, cancelled).
func RecordJourneyEvent(event string) {
	journeyEvents.WithLabelValues(event).Inc()
}

// RecordSessionsCleaned counts sessions removed by one cleanup run.
func RecordSessionsCleaned(n int64) {
	sessionsCleaned.Add(float64(n))
}
