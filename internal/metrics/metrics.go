// Package metrics provides Prometheus metrics collection for the count service.
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

	// ScansTotal counts handled scans by outcome (inserted, summed, replaced, cancelled, rejected).
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "count_scans_total",
			Help: "Total number of scans handled",
		},
		[]string{"outcome"},
	)

	// SyncsTotal counts synchronization attempts by result.
	SyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "count_syncs_total",
			Help: "Total number of synchronization attempts",
		},
		[]string{"result"},
	)

	// SyncDuration tracks the time spent posting counts to the ERP.
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "count_sync_duration_seconds",
			Help:    "Synchronization duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// TallyLines tracks the number of distinct SKUs per device.
	TallyLines = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "count_tally_lines",
			Help: "Distinct SKUs in the current tally",
		},
		[]string{"device"},
	)

	// CircuitBreakerState tracks breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// ERPOnline is 1 while the connectivity probe reaches the ERP.
	ERPOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "count_erp_online",
			Help: "Whether the ERP endpoint is reachable",
		},
	)

	// LabelsTotal counts label print jobs by result.
	LabelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "count_labels_total",
			Help: "Total number of label print jobs",
		},
		[]string{"result"},
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

// RecordScan records the outcome of a scan.
func RecordScan(outcome string) {
	ScansTotal.WithLabelValues(outcome).Inc()
}

// RecordSync records a synchronization attempt.
func RecordSync(duration time.Duration, result string) {
	SyncDuration.Observe(duration.Seconds())
	SyncsTotal.WithLabelValues(result).Inc()
}

// SetTallyLines updates the tally size gauge of a device.
func SetTallyLines(device string, lines int) {
	TallyLines.WithLabelValues(device).Set(float64(lines))
}

// SetCircuitState publishes a circuit breaker state.
func SetCircuitState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// SetERPOnline publishes the connectivity status.
func SetERPOnline(online bool) {
	if online {
		ERPOnline.Set(1)
		return
	}
	ERPOnline.Set(0)
}

// RecordLabel records a label print job.
func RecordLabel(result string) {
	LabelsTotal.WithLabelValues(result).Inc()
}
