// Package metrics provides Prometheus collectors for the pricing service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bakery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// SummariesTotal counts batch summaries computed.
	SummariesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bakery_summaries_total",
			Help: "Total number of batch cost summaries computed",
		},
	)

	// DegradedLinesTotal counts ingredient and packaging lines that degraded to zero, by reason.
	DegradedLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_degraded_lines_total",
			Help: "Cost lines that contributed zero because of invalid input",
		},
		[]string{"kind", "status"},
	)

	// ImportsTotal tracks AI recipe imports by result.
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_imports_total",
			Help: "Total number of AI recipe imports",
		},
		[]string{"result"},
	)

	// ImportDuration tracks AI import latency.
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bakery_import_duration_seconds",
			Help:    "AI recipe import duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
	)

	// CacheOperationsTotal tracks AI response cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_cache_operations_total",
			Help: "Total number of AI response cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bakery_cache_size",
			Help: "Current AI response cache size",
		},
	)

	// QueueLength tracks pending AI import jobs.
	QueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bakery_import_queue_length",
			Help: "Pending AI import jobs",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordSummary records a computed summary and any degraded lines in it.
func RecordSummary(degraded map[string]map[string]int) {
	SummariesTotal.Inc()
	for kind, byStatus := range degraded {
		for status, n := range byStatus {
			DegradedLinesTotal.WithLabelValues(kind, status).Add(float64(n))
		}
	}
}

// RecordImport records metrics for an AI import.
func RecordImport(duration time.Duration, result string) {
	ImportDuration.Observe(duration.Seconds())
	ImportsTotal.WithLabelValues(result).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheSize updates the cache size gauge.
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}

// UpdateQueueLength updates the pending import job gauge.
func UpdateQueueLength(n int) {
	QueueLength.Set(float64(n))
}
