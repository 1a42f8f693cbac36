//go:build !integration

package http

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Endpoints(t *testing.T) {
	router := newStaticRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"healthz endpoint", http.MethodGet, "/healthz", http.StatusOK},
		{"readyz endpoint", http.MethodGet, "/readyz", http.StatusOK},
		{"metrics endpoint", http.MethodGet, "/metrics", http.StatusOK},
		{"swagger endpoint", http.MethodGet, "/swagger/index.html", http.StatusOK},
		{"menu endpoint", http.MethodGet, "/api/menu", http.StatusOK},
		{"receipt endpoint without body", http.MethodPost, "/api/receipts/kitchen", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/packs", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	catalog, receipts := newStaticServices()
	cfg := noLimitConfig()
	cfg.SwaggerUser = "docs"
	cfg.SwaggerPass = "secret"
	router := newTestRouter(t, cfg, catalog, receipts)

	w := serve(router, http.MethodGet, "/swagger/index.html", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := map[string]string{"Authorization": "Basic ZG9jczpzZWNyZXQ="}
	w = serve(router, http.MethodGet, "/swagger/index.html", "", req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	catalog, receipts := newStaticServices()
	limiter := middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)

	cfg := DefaultRouterConfig()
	cfg.RateLimiter = limiter
	router := newTestRouter(t, cfg, catalog, receipts)

	for i := 0; i < 2; i++ {
		w := serve(router, http.MethodGet, "/api/menu", "", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := serve(router, http.MethodGet, "/api/menu", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retry, 1)
}

func TestRouter_Idempotency(t *testing.T) {
	catalog, receipts := newStaticServices()
	store := middleware.NewIdempotencyStore(time.Minute)
	t.Cleanup(store.Stop)

	cfg := noLimitConfig()
	cfg.IdempotencyStore = store
	router := newTestRouter(t, cfg, catalog, receipts)

	body := `{"order_name":"Table 4","items":["Soda Can: (1.0)"]}`
	headers := map[string]string{middleware.IdempotencyKeyHeader: "till-1-order-88"}

	first := serve(router, http.MethodPost, "/api/receipts/kitchen", body, headers)
	second := serve(router, http.MethodPost, "/api/receipts/kitchen", body, headers)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())

	fresh := serve(router, http.MethodPost, "/api/receipts/kitchen", body, nil)
	assert.NotEqual(t, first.Body.String(), fresh.Body.String(), "a new receipt gets a new id")
}

func TestRouter_CORSPreflight(t *testing.T) {
	catalog, receipts := newStaticServices()
	cfg := noLimitConfig()
	cfg.CORSOrigins = []string{"https://till.example.com"}
	router := newTestRouter(t, cfg, catalog, receipts)

	w := serve(router, http.MethodOptions, "/api/receipts/kitchen", "", map[string]string{
		"Origin":                        "https://till.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://till.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
