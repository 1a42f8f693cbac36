//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/kitchen-receipt-service/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		headerValue string
		validate    func(*testing.T, string)
	}{
		{
			name: "generates new request ID when not provided",
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
		{
			name:        "uses provided request ID from header",
			headerValue: "till-7-000123",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "till-7-000123", id)
			},
		},
		{
			name:        "replaces an oversized request ID",
			headerValue: strings.Repeat("x", maxRequestIDLength+1),
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				fromGin := GetRequestID(c)
				fromCtx := logger.RequestIDFromContext(c.Request.Context())
				assert.Equal(t, fromGin, fromCtx)
				c.String(http.StatusOK, fromGin)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.headerValue != "" {
				req.Header.Set(RequestIDHeader, tt.headerValue)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			requestID := w.Body.String()
			assert.Equal(t, requestID, w.Header().Get(RequestIDHeader))
			tt.validate(t, requestID)
		})
	}
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		setup    func(*gin.Context)
		expected string
	}{
		{
			name:     "returns empty string when not set",
			setup:    func(c *gin.Context) {},
			expected: "",
		},
		{
			name:     "returns request ID when set",
			setup:    func(c *gin.Context) { c.Set(string(RequestIDKey), "test-id-123") },
			expected: "test-id-123",
		},
		{
			name:     "ignores values of the wrong type",
			setup:    func(c *gin.Context) { c.Set(string(RequestIDKey), 42) },
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			tt.setup(c)

			assert.Equal(t, tt.expected, GetRequestID(c))
		})
	}
}
