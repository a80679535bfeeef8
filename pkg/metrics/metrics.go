// Package metrics exposes Prometheus instruments for rendering, document
// loads and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "navigator"

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Render Metrics
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	// Document Metrics
	DocumentLoadsTotal *prometheus.CounterVec
	DocumentTraces     prometheus.Gauge
	DocumentVersion    prometheus.Gauge

	// SSE Metrics
	Subscribers prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric initialised, plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initHTTPMetrics()
	r.initRenderMetrics()
	r.initDocumentMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	r.Subscribers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_subscribers",
			Help:      "Open document event streams",
		},
	)
}

func (r *Registry) initRenderMetrics() {
	r.RendersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Pipeline runs by theme and outcome",
		},
		[]string{"theme", "status"},
	)

	r.RenderDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Pipeline run time in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"theme"},
	)
}

func (r *Registry) initDocumentMetrics() {
	r.DocumentLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_loads_total",
			Help:      "Document load attempts by outcome",
		},
		[]string{"status"},
	)

	r.DocumentTraces = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "document_traces",
			Help:      "Number of traces in the served document",
		},
	)

	r.DocumentVersion = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "document_version",
			Help:      "Store version of the served document",
		},
	)
}

// RecordHTTPRequest records an HTTP request with its duration. route is the
// matched route template, not the raw path.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRender records one pipeline run.
func (r *Registry) RecordRender(theme string, err error, duration time.Duration) {
	r.RendersTotal.WithLabelValues(theme, outcome(err)).Inc()
	if err == nil {
		r.RenderDuration.WithLabelValues(theme).Observe(duration.Seconds())
	}
}

// RecordDocumentLoad records a load attempt.
func (r *Registry) RecordDocumentLoad(err error) {
	r.DocumentLoadsTotal.WithLabelValues(outcome(err)).Inc()
}

// SetDocument updates the served-document gauges.
func (r *Registry) SetDocument(version uint64, traces int) {
	r.DocumentVersion.Set(float64(version))
	r.DocumentTraces.Set(float64(traces))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
