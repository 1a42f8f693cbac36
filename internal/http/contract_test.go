//go:build contract && !integration

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPI_ContractCompliance checks the documented envelope and field names.
func TestAPI_ContractCompliance(t *testing.T) {
	router := newStaticRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		dataFields     []string
		errorBody      bool
	}{
		{
			name:           "POST /api/receipts/kitchen - Success 200",
			method:         http.MethodPost,
			path:           "/api/receipts/kitchen",
			body:           `{"order_name":"Table 4","items":["Fries: (2.0), Extras: Salt"]}`,
			expectedStatus: http.StatusOK,
			dataFields:     []string{"id", "order_name", "text", "total", "line_count", "lines_skipped", "generated_at"},
		},
		{
			name:           "POST /api/receipts/kitchen - Bad Request 400",
			method:         http.MethodPost,
			path:           "/api/receipts/kitchen",
			body:           `{"order_name":""}`,
			expectedStatus: http.StatusBadRequest,
			errorBody:      true,
		},
		{
			name:           "GET /api/menu - Success 200",
			method:         http.MethodGet,
			path:           "/api/menu",
			expectedStatus: http.StatusOK,
			dataFields:     []string{"items", "count", "source", "refreshed_at"},
		},
		{
			name:           "POST /api/menu/refresh - Success 200",
			method:         http.MethodPost,
			path:           "/api/menu/refresh",
			expectedStatus: http.StatusOK,
			dataFields:     []string{"source", "items", "changed", "diagnostics"},
		},
		{
			name:           "GET /api/receipts - Not Implemented 501",
			method:         http.MethodGet,
			path:           "/api/receipts",
			expectedStatus: http.StatusNotImplemented,
			errorBody:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, tt.body, nil)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body, "request_id")
			assert.Contains(t, body, "timestamp")

			if tt.errorBody {
				assert.Contains(t, body, "error")
				assert.Contains(t, body, "message")
				return
			}
			data, ok := body["data"].(map[string]interface{})
			require.True(t, ok, "data must be an object")
			for _, field := range tt.dataFields {
				assert.Contains(t, data, field)
			}
		})
	}
}
