// Package app provides router configuration.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/guttosm/kitchen-receipt-service/internal/http"
	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Router           *gin.Engine
	HealthHandler    *http.HealthHandler
	Config           http.RouterConfig
	RateLimiter      *middleware.ShardedRateLimiter
	IdempotencyStore *middleware.IdempotencyStore
}

// InitializeRouter builds the handlers, health checks and router.
func InitializeRouter(cfg config.Config, services *ServiceComponents, db *DatabaseComponents) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("catalog", http.CatalogChecker(services.Catalog))
	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.HealthCheck))
		healthHandler.RegisterCircuitBreaker(breakerMenu, db.MenuCircuitBreaker)
		healthHandler.RegisterCircuitBreaker(breakerReceipts, db.ReceiptsCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
	}
	if services.Tokens != nil {
		routerCfg.TokenValidator = services.Tokens
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}
	if cfg.Server.IdempotencyEnabled {
		routerCfg.IdempotencyStore = middleware.NewIdempotencyStore(cfg.Server.IdempotencyTTL)
	}

	router := http.NewRouter(healthHandler, routerCfg,
		http.NewReceiptRoutes(http.NewReceiptHandler(services.Receipts)),
		http.NewMenuRoutes(http.NewMenuHandler(services.Catalog)),
	)

	return &RouterComponents{
		Router:           router,
		HealthHandler:    healthHandler,
		Config:           routerCfg,
		RateLimiter:      routerCfg.RateLimiter,
		IdempotencyStore: routerCfg.IdempotencyStore,
	}
}

// Stop ends the rate limiter and idempotency cleanup loops.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	if r.RateLimiter != nil {
		r.RateLimiter.Stop()
	}
	r.IdempotencyStore.Stop()
}
