//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		err       error
		wantLevel string
	}{
		{
			name:      "success with principal",
			principal: &Principal{Subject: "till-1", Method: AuthMethodBearer},
			wantLevel: "info",
		},
		{
			name:      "failure without principal",
			err:       errors.New("mongo down"),
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t, "info")
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(RequestID())
			router.PUT("/api/menu/items", func(c *gin.Context) {
				if tt.principal != nil {
					c.Set(string(PrincipalKey), tt.principal)
				}
				fields := map[string]interface{}{"items": 2}
				if tt.err != nil {
					AuditLogError(c, AuditActionMenuUpsert, "menu upsert failed", tt.err, fields)
				} else {
					AuditLog(c, AuditActionMenuUpsert, "menu updated", fields)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/api/menu/items", nil)
			req.Header.Set(RequestIDHeader, "req-42")
			router.ServeHTTP(httptest.NewRecorder(), req)

			entry := lastLogLine(t, buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, true, entry["audit"])
			assert.Equal(t, AuditActionMenuUpsert, entry["action"])
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Equal(t, float64(2), entry["items"])
			if tt.principal != nil {
				assert.Equal(t, "till-1", entry["principal"])
				assert.Equal(t, AuthMethodBearer, entry["auth_method"])
			} else {
				assert.NotContains(t, entry, "principal")
				assert.Equal(t, "mongo down", entry["error"])
			}
		})
	}
}
