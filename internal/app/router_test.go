//go:build !integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T, cfg config.Config) *ServiceComponents {
	t.Helper()
	services, err := InitializeServices(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(services.Stop)
	return services
}

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*config.Config)
		wantLimiter     bool
		wantIdempotency bool
		wantValidator   bool
	}{
		{
			name:            "defaults",
			mutate:          func(*config.Config) {},
			wantLimiter:     true,
			wantIdempotency: true,
		},
		{
			name: "limits off",
			mutate: func(c *config.Config) {
				c.Server.RateLimit = 0
				c.Server.IdempotencyEnabled = false
			},
		},
		{
			name: "jwt validator",
			mutate: func(c *config.Config) {
				c.Auth = config.AuthConfig{Enabled: true, JWTSecretKey: "s3cret"}
			},
			wantLimiter:     true,
			wantIdempotency: true,
			wantValidator:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			routing := InitializeRouter(cfg, newTestServices(t, cfg), nil)
			t.Cleanup(routing.Stop)

			require.NotNil(t, routing.Router)
			assert.Equal(t, tt.wantLimiter, routing.RateLimiter != nil)
			assert.Equal(t, tt.wantIdempotency, routing.IdempotencyStore != nil)
			assert.Equal(t, tt.wantValidator, routing.Config.TokenValidator != nil)
			assert.Equal(t, cfg.Auth.Enabled, routing.Config.EnableAuth)
			assert.Equal(t, cfg.Server.RequestTimeout, routing.Config.RequestTimeout)
		})
	}
}

func TestInitializeRouter_ReadinessChecks(t *testing.T) {
	cfg := testConfig()
	routing := InitializeRouter(cfg, newTestServices(t, cfg), nil)
	t.Cleanup(routing.Stop)

	w := httptest.NewRecorder()
	routing.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["checks"], "catalog")
	assert.NotContains(t, body["checks"], "mongodb")
}

func TestRouterComponents_StopNil(t *testing.T) {
	var routing *RouterComponents
	assert.NotPanics(t, routing.Stop)
}
