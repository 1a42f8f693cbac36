//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newAuthTokens(t)
	valid, err := tokens.IssueToken("manager-2", []string{service.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	other := service.NewTokenService(service.TokenConfig{SecretKey: "someone-else", Issuer: "test"})
	forged, err := other.IssueToken("manager-2", []string{service.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
		bodyContains   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "bearer:manager-2"},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized, "Invalid or expired token"},
		{"empty token", "Bearer   ", http.StatusUnauthorized, "Invalid or expired token"},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), JWTAuth(tokens))
			router.GET("/test", principalEcho)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.bodyContains)
		})
	}
}
