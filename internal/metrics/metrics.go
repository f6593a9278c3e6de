// Package metrics exposes Prometheus counters and histograms for the
// prediction service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeModelNotFound   = "model_not_found"
	OutcomeInferenceFailed = "inference_failed"
)

// Metrics owns a private registry so several instances can coexist in tests
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	predictionsTotal  *prometheus.CounterVec
	predictedKWh      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	sinkErrors        *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_predictions_total",
			Help: "Total predictions by model and outcome.",
		}, []string{"model", "outcome"}),
		predictedKWh: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "energy_predicted_kwh",
			Help:    "Distribution of predicted monthly usage in kWh.",
			Buckets: []float64{50, 100, 200, 300, 400, 500, 750, 1000, 1500},
		}, []string{"model"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prediction_cache_hits_total",
			Help: "Total prediction cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prediction_cache_misses_total",
			Help: "Total prediction cache misses.",
		}),
		sinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prediction_sink_errors_total",
			Help: "Failures writing predictions to the store or event bus.",
		}, []string{"sink"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.predictionsTotal,
		m.predictedKWh,
		m.cacheHits,
		m.cacheMisses,
		m.sinkErrors,
	)
	return m
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Prediction records a prediction attempt. kwh is ignored unless outcome is success.
func (m *Metrics) Prediction(model, outcome string, kwh float64) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(model, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.predictedKWh.WithLabelValues(model).Observe(kwh)
	}
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// SinkError counts a failed background write to the named sink
func (m *Metrics) SinkError(sink string) {
	if m == nil {
		return
	}
	m.sinkErrors.WithLabelValues(sink).Inc()
}
