package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/menu", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		name   string
		path   string
		label  string
		status string
	}{
		{name: "matched route uses the route template", path: "/api/menu", label: "/api/menu", status: "200"},
		{name: "unmatched route is collapsed", path: "/wp-admin/install.php", label: "unmatched", status: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.label, tt.status)
			before := counterValue(t, counter)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, before+1, counterValue(t, counter))
		})
	}
}

func TestRecordReceipt(t *testing.T) {
	counter := ReceiptsGeneratedTotal.WithLabelValues("success")
	before := counterValue(t, counter)

	RecordReceipt(2*time.Millisecond, "success")

	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestRecordSkippedLine(t *testing.T) {
	counter := CartLinesSkippedTotal.WithLabelValues("unknown_item")
	before := counterValue(t, counter)

	RecordSkippedLine("unknown_item")
	RecordSkippedLine("unknown_item")

	assert.Equal(t, before+2, counterValue(t, counter))
}

func TestRecordCatalogRefresh(t *testing.T) {
	counter := CatalogRefreshTotal.WithLabelValues("cache", "success")
	before := counterValue(t, counter)

	RecordCatalogRefresh(10*time.Millisecond, "cache", "success")

	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestGauges(t *testing.T) {
	SetCatalogItems(12)
	assert.Equal(t, float64(12), gaugeValue(t, CatalogItems))

	SetCircuitBreakerState("menu", 1)
	assert.Equal(t, float64(1), gaugeValue(t, CircuitBreakerState.WithLabelValues("menu")))
}

func TestRecordArchiveAndRejections(t *testing.T) {
	dropped := ReceiptArchiveTotal.WithLabelValues(ArchiveDropped)
	before := counterValue(t, dropped)
	RecordArchive(ArchiveDropped, 3)
	assert.Equal(t, before+3, counterValue(t, dropped))

	rejected := MenuRecordsRejectedTotal.WithLabelValues("Price")
	before = counterValue(t, rejected)
	RecordRejectedMenuRecord("Price")
	assert.Equal(t, before+1, counterValue(t, rejected))
}

func TestRecordRejected(t *testing.T) {
	tests := []struct {
		reason string
		scope  string
	}{
		{RejectRateLimited, "ip"},
		{RejectRateLimited, "principal"},
		{RejectTimeout, ""},
		{RejectIdempotencyConflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.reason+"/"+tt.scope, func(t *testing.T) {
			counter := RequestsRejectedTotal.WithLabelValues(tt.reason, tt.scope)
			before := counterValue(t, counter)

			RecordRejected(tt.reason, tt.scope)

			assert.Equal(t, before+1, counterValue(t, counter))
		})
	}
}
