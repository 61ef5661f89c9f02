// Package metrics defines the Prometheus collectors of the dashboard server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "applytrack"

// Metrics holds the server's collectors and the registry serving them.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	loadsTotal      *prometheus.CounterVec
	applications    *prometheus.GaugeVec
	draftWrites     *prometheus.CounterVec
	sectionToggles  *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

// New registers the collectors on a fresh registry, alongside the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
		loadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Application list loads by outcome",
		}, []string{"result"}),
		applications: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "applications",
			Help:      "Stored applications per status category",
		}, []string{"category"}),
		draftWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_writes_total",
			Help:      "Form draft writes by operation and result",
		}, []string{"op", "result"}),
		sectionToggles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_toggles_total",
			Help:      "Sidebar section toggles by section",
		}, []string{"section"}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Browser sessions holding dashboard view state",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware records request counts and latency by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			return
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveLoad counts one load with result "loaded", "empty" or "error".
func (m *Metrics) ObserveLoad(result string) {
	m.loadsTotal.WithLabelValues(result).Inc()
}

// SetApplications publishes the per-category record counts.
func (m *Metrics) SetApplications(counts map[string]int) {
	for category, n := range counts {
		m.applications.WithLabelValues(category).Set(float64(n))
	}
}

// ObserveDraft counts one draft operation ("save", "load", "clear").
func (m *Metrics) ObserveDraft(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.draftWrites.WithLabelValues(op, result).Inc()
}

// ObserveToggle counts one sidebar section toggle.
func (m *Metrics) ObserveToggle(section string) {
	m.sectionToggles.WithLabelValues(section).Inc()
}

// SetSessions publishes the number of live sessions.
func (m *Metrics) SetSessions(n int) {
	m.activeSessions.Set(float64(n))
}
