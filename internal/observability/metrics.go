package observability

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	contactStatusTotal   *prometheus.CounterVec
	contactSessionsGauge prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the site.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_latency_seconds",
			Help:    "Latency distribution of HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		contactStatusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_status_total",
			Help: "Contact form status transitions by resulting status.",
		}, []string{"status"})

		contactSessionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_contact_sessions",
			Help: "Number of live contact form sessions.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, contactStatusTotal, contactSessionsGauge)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ContactStatus exposes the contact status transition counter.
func ContactStatus() *prometheus.CounterVec {
	RegisterMetrics()
	return contactStatusTotal
}

// ContactSessions exposes the live session gauge.
func ContactSessions() prometheus.Gauge {
	RegisterMetrics()
	return contactSessionsGauge
}

// MetricsHandler exposes the Prometheus scrape endpoint via gin.
func MetricsHandler() gin.HandlerFunc {
	RegisterMetrics()
	return gin.WrapH(promhttp.Handler())
}
