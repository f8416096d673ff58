// Package metrics provides Prometheus metrics collection for the fulfillment service.
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
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PlanBuildsTotal tracks total fulfillment plan builds by status.
	PlanBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_builds_total",
			Help: "Total number of fulfillment plan builds",
		},
		[]string{"status"},
	)

	// PlanBuildDuration tracks fulfillment plan build duration.
	PlanBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_build_duration_seconds",
			Help:    "Fulfillment plan build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// PlanOptionsEmitted tracks how many options each planning request produced.
	PlanOptionsEmitted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_options_emitted",
			Help:    "Number of plan options emitted per planning request",
			Buckets: []float64{0, 1, 2},
		},
	)

	// CoverIterations tracks greedy cover planner iterations per request.
	CoverIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cover_planner_iterations",
			Help:    "Greedy cover planner iterations per planning request",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	// UncoveredProductsTotal counts cart products no open store could supply.
	UncoveredProductsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "uncovered_products_total",
			Help: "Total number of cart products left uncovered by planning",
		},
	)

	// StoreCacheOperationsTotal tracks store snapshot cache operations.
	StoreCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_cache_operations_total",
			Help: "Total number of store snapshot cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPlanBuild records metrics for one fulfillment plan build.
func RecordPlanBuild(duration time.Duration, status string) {
	PlanBuildDuration.Observe(duration.Seconds())
	PlanBuildsTotal.WithLabelValues(status).Inc()
}

// RecordPlanOptions records how many options a planning request emitted.
func RecordPlanOptions(count int) {
	PlanOptionsEmitted.Observe(float64(count))
}

// RecordCoverIterations records greedy cover iterations for one request.
func RecordCoverIterations(n int) {
	CoverIterations.Observe(float64(n))
}

// RecordUncoveredProducts adds to the uncovered product counter.
func RecordUncoveredProducts(n int) {
	if n > 0 {
		UncoveredProductsTotal.Add(float64(n))
	}
}

// RecordStoreCacheOperation records metrics for a store cache operation.
func RecordStoreCacheOperation(operation, result string) {
	StoreCacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
