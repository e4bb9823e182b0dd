package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "insurance_service"

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	Registry *prometheus.Registry

	requests             *prometheus.CounterVec
	duration             *prometheus.HistogramVec
	errors               *prometheus.CounterVec
	applicationsCreated  prometheus.Counter
	catalogCacheRequests *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Total number of failed HTTP requests by error code.",
		}, []string{"code"}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "applications_submitted_total",
			Help:      "Applications accepted by the intake service.",
		}),
		catalogCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "cache_requests_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.errors,
		m.applicationsCreated,
		m.catalogCacheRequests,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(code).Inc()
}

// ApplicationSubmitted counts an accepted application.
func (m *Metrics) ApplicationSubmitted() {
	if m == nil {
		return
	}
	m.applicationsCreated.Inc()
}

// CacheResult counts a catalog cache hit, miss or error.
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.catalogCacheRequests.WithLabelValues(result).Inc()
}
