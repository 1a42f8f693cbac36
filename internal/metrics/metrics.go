// Package metrics provides Prometheus metrics for the kitchen receipt service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Archive outcomes used as the result label of ReceiptArchiveTotal.
const (
	ArchiveQueued  = "queued"
	ArchiveDropped = "dropped"
	ArchiveStored  = "stored"
	ArchiveFailed  = "failed"
)

// Reasons used as the reason label of RequestsRejectedTotal.
const (
	RejectRateLimited         = "rate_limited"
	RejectTimeout             = "timeout"
	RejectIdempotencyConflict = "idempotency_conflict"
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

	// ReceiptsGeneratedTotal counts formatted kitchen receipts.
	ReceiptsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_generated_total",
			Help: "Total number of kitchen receipts generated",
		},
		[]string{"status"},
	)

	// ReceiptRenderDuration tracks parse, aggregate and render time per receipt.
	ReceiptRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receipt_render_duration_seconds",
			Help:    "Kitchen receipt formatting duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// CartLinesSkippedTotal counts cart lines left off receipts, by reason.
	CartLinesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_lines_skipped_total",
			Help: "Total number of cart lines excluded from receipts",
		},
		[]string{"reason"},
	)

	// CatalogRefreshTotal counts catalog refreshes by where the snapshot came from.
	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_total",
			Help: "Total number of menu catalog refreshes",
		},
		[]string{"source", "status"},
	)

	// CatalogRefreshDuration tracks how long catalog refreshes take.
	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_refresh_duration_seconds",
			Help:    "Menu catalog refresh duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// CatalogItems is the number of items in the published snapshot.
	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of menu items in the current catalog snapshot",
		},
	)

	// MenuRecordsRejectedTotal counts menu documents that failed validation.
	MenuRecordsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_records_rejected_total",
			Help: "Total number of menu documents rejected during catalog refresh",
		},
		[]string{"field"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// RequestsRejectedTotal counts requests turned away by middleware.
	RequestsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_rejected_total",
			Help: "Requests rejected before reaching a handler, by reason",
		},
		[]string{"reason", "scope"},
	)

	// ReceiptArchiveTotal counts receipts through the archive pipeline.
	ReceiptArchiveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_archive_total",
			Help: "Receipts handed to the archive, by outcome",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Unmatched routes share one label so scanners cannot blow up cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordReceipt records one formatted receipt.
func RecordReceipt(duration time.Duration, status string) {
	ReceiptRenderDuration.Observe(duration.Seconds())
	ReceiptsGeneratedTotal.WithLabelValues(status).Inc()
}

// RecordSkippedLine records a cart line dropped for reason.
func RecordSkippedLine(reason string) {
	CartLinesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordCatalogRefresh records a refresh attempt and its outcome.
func RecordCatalogRefresh(duration time.Duration, source, status string) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	CatalogRefreshTotal.WithLabelValues(source, status).Inc()
}

// SetCatalogItems publishes the size of the current snapshot.
func SetCatalogItems(n int) {
	CatalogItems.Set(float64(n))
}

// RecordRejectedMenuRecord records a menu document rejected on field.
func RecordRejectedMenuRecord(field string) {
	MenuRecordsRejectedTotal.WithLabelValues(field).Inc()
}

// SetCircuitBreakerState publishes a breaker state as its numeric code.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordArchive adds n receipts to the archive counter for result.
func RecordArchive(result string, n int) {
	ReceiptArchiveTotal.WithLabelValues(result).Add(float64(n))
}

// RecordRejected counts a request rejected for reason. scope is the limiter
// key kind ("ip", "principal") or empty.
func RecordRejected(reason, scope string) {
	RequestsRejectedTotal.WithLabelValues(reason, scope).Inc()
}
