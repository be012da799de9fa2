package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry so that several instances can
// coexist in one process (tests build one per router).
type Metrics struct {
	registry       *prometheus.Registry
	requestCounter *prometheus.CounterVec
	latencyHist    *prometheus.HistogramVec
	businessEvents *prometheus.CounterVec
}

// New registers the HTTP and business collectors plus Go runtime metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		}, []string{"method", "route", "status_code"}),
		latencyHist: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		businessEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "business_events_total",
			Help: "Business event counts by action and outcome",
		}, []string{"action", "outcome"}),
	}

	registry.MustRegister(
		m.requestCounter,
		m.latencyHist,
		m.businessEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the /metrics handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latencyHist.WithLabelValues(method, route).Observe(seconds)
}

// RecordBusinessEvent counts a domain event such as "connect_with_code"
// with outcome "success" or "failure".
func (m *Metrics) RecordBusinessEvent(action, outcome string) {
	if m == nil {
		return
	}
	m.businessEvents.WithLabelValues(action, outcome).Inc()
}
