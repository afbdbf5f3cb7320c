package controllers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chenxiaowo/ktrace/internal/runtime"
	"github.com/chenxiaowo/ktrace/internal/trace"
)

// MetricsController exposes Prometheus metrics for the tracer and the API.
type MetricsController struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// NewMetricsController builds a registry with the tracer collector and the
// API request counters.
func NewMetricsController(rt *runtime.Runtime) *MetricsController {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ktrace_http_requests_total",
		Help: "API requests handled, by endpoint.",
	}, []string{"endpoint"})
	registry.MustRegister(requests, newTracerCollector(rt.Tracer()))
	return &MetricsController{registry: registry, requests: requests}
}

// RegisterRoutes registers the metrics endpoint with the given mux.
func (c *MetricsController) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

func (c *MetricsController) observe(endpoint string) {
	c.requests.WithLabelValues(endpoint).Inc()
}

// tracerCollector samples the tracer snapshot on scrape, keeping metric
// bookkeeping out of the producer hot path.
type tracerCollector struct {
	tracer   *trace.Tracer
	capacity *prometheus.Desc
	reserved *prometheus.Desc
	dropped  *prometheus.Desc
	state    *prometheus.Desc
}

func newTracerCollector(t *trace.Tracer) *tracerCollector {
	return &tracerCollector{
		tracer:   t,
		capacity: prometheus.NewDesc("ktrace_buffer_capacity_bytes", "Usable trace buffer capacity.", nil, nil),
		reserved: prometheus.NewDesc("ktrace_buffer_reserved_bytes", "Bytes reserved in the current session, clipped to capacity.", nil, nil),
		dropped:  prometheus.NewDesc("ktrace_events_dropped_total", "Reservations refused after the overflow latch tripped.", nil, nil),
		state:    prometheus.NewDesc("ktrace_session_state", "Session state: 0 disabled, 1 live, 2 stopped.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *tracerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.reserved
	ch <- c.dropped
	ch <- c.state
}

// Collect implements prometheus.Collector.
func (c *tracerCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.tracer.Snapshot()
	reserved := s.Cursor
	if reserved > int64(s.Capacity) {
		reserved = int64(s.Capacity)
	}
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, float64(reserved))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped))
	ch <- prometheus.MustNewConstMetric(c.state, prometheus.GaugeValue, float64(s.State))
}
