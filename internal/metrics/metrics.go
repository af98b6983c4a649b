package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the proxy server.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	upstreamTotal       *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	liveSessions        prometheus.Gauge
}

// New registers all collectors on a fresh registry, so several instances
// (one per test) never collide on the default registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipefinder_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipefinder_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		upstreamTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipefinder_upstream_requests_total",
				Help: "Calls to the recipe API by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipefinder_upstream_request_duration_seconds",
				Help:    "Recipe API latency by endpoint",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "recipefinder_live_sessions",
			Help: "Open live search WebSocket sessions",
		}),
	}
}

// ObserveUpstream records one recipe API call. It satisfies recipeapi.Observer.
func (m *Metrics) ObserveUpstream(endpoint string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, statusCode string, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SessionOpened and SessionClosed track live search sessions.
func (m *Metrics) SessionOpened() { m.liveSessions.Inc() }
func (m *Metrics) SessionClosed() { m.liveSessions.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
