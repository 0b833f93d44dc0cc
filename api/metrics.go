package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus registry and collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec   // method, path, status
	latency   *prometheus.HistogramVec // method, path
	swaptions *prometheus.CounterVec   // outcome
	pricing   prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		swaptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swaptions_priced_total",
			Help: "Swaptions priced, by outcome",
		}, []string{"outcome"}),
		pricing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swaptions_pricing_duration_seconds",
			Help:    "Wall time to price one request's swaptions",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.swaptions, m.pricing)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
