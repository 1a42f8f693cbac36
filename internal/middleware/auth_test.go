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

func newAuthTokens(t *testing.T) *service.TokenServiceImpl {
	t.Helper()
	return service.NewTokenService(service.TokenConfig{SecretKey: "middleware-secret", Issuer: "test"})
}

func principalEcho(c *gin.Context) {
	p := GetPrincipal(c)
	if p == nil {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, p.Method+":"+p.Subject)
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validKeys := map[string]bool{"valid-key-123": true, "another-valid-key": true}

	tests := []struct {
		name           string
		validKeys      map[string]bool
		setupRequest   func(*http.Request)
		expectedStatus int
		bodyContains   string
	}{
		{
			name:           "allows request with valid API key in header",
			validKeys:      validKeys,
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "valid-key-123") },
			expectedStatus: http.StatusOK,
			bodyContains:   "api_key:api-key:",
		},
		{
			name:           "allows request with valid API key in query",
			validKeys:      validKeys,
			setupRequest:   func(req *http.Request) { req.URL.RawQuery = "api_key=another-valid-key" },
			expectedStatus: http.StatusOK,
			bodyContains:   "api_key:",
		},
		{
			name:           "rejects request without API key",
			validKeys:      validKeys,
			setupRequest:   func(req *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			bodyContains:   "API key is required",
		},
		{
			name:           "rejects request with invalid API key",
			validKeys:      validKeys,
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "nope") },
			expectedStatus: http.StatusUnauthorized,
			bodyContains:   "Invalid API key",
		},
		{
			name:           "disabled when no keys are configured",
			validKeys:      nil,
			setupRequest:   func(req *http.Request) {},
			expectedStatus: http.StatusOK,
			bodyContains:   "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), APIKeyAuth(tt.validKeys))
			router.GET("/test", principalEcho)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.bodyContains)
			assert.NotContains(t, w.Body.String(), "valid-key-123")
		})
	}
}

func TestAuthenticate_BearerOrAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newAuthTokens(t)
	token, err := tokens.IssueToken("till-1", []string{service.RoleCounter}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid bearer token",
			headers:        map[string]string{"Authorization": "Bearer " + token},
			expectedStatus: http.StatusOK,
			expectedBody:   "bearer:till-1",
		},
		{
			name:           "invalid bearer token is not rescued by an API key",
			headers:        map[string]string{"Authorization": "Bearer junk", APIKeyHeader: "k1"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer authorization scheme",
			headers:        map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "API key without bearer",
			headers:        map[string]string{APIKeyHeader: "k1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no credentials",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Authenticate(map[string]bool{"k1": true}, tokens))
			router.GET("/test", principalEcho)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &Principal{Roles: []string{service.RoleCounter}}
	assert.True(t, p.HasRole(service.RoleCounter))
	assert.False(t, p.HasRole(service.RoleAdmin))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasRole(service.RoleAdmin))
}
