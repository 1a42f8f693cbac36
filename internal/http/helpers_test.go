//go:build !integration

package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newStaticServices returns a catalog serving the default menu without MongoDB.
func newStaticServices() (*service.CatalogServiceImpl, *service.ReceiptServiceImpl) {
	catalog := service.NewCatalogService(nil, nil, service.WithStaticItems(service.DefaultMenu()))
	formatter := service.NewKitchenReceiptFormatter(catalog, nil)
	return catalog, service.NewReceiptService(formatter, nil, nil)
}

func newTestRouter(t *testing.T, cfg RouterConfig, catalog service.CatalogService, receipts service.ReceiptService) *gin.Engine {
	t.Helper()
	health := NewHealthHandler()
	health.RegisterChecker("catalog", CatalogChecker(catalog))
	return NewRouter(health, cfg,
		NewReceiptRoutes(NewReceiptHandler(receipts)),
		NewMenuRoutes(NewMenuHandler(catalog)),
	)
}

func newStaticRouter(t *testing.T) *gin.Engine {
	t.Helper()
	catalog, receipts := newStaticServices()
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return newTestRouter(t, cfg, catalog, receipts)
}

func serve(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unwraps a SuccessResponse and decodes its data into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NotEmpty(t, envelope.RequestID)

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
