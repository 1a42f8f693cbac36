package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// quietPaths are probe and scrape endpoints logged at debug level.
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimiter is used instead of building one from RateLimit, so the
	// caller can stop it on shutdown.
	RateLimiter *middleware.ShardedRateLimiter

	EnableAuth     bool
	APIKeys        map[string]bool
	TokenValidator service.TokenValidator

	// IdempotencyStore enables Idempotency-Key handling when set.
	IdempotencyStore *middleware.IdempotencyStore
	RequestTimeout   time.Duration

	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter creates and configures the Gin router for the receipt service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig, groups ...RouteGroup) *gin.Engine {
	router := gin.New()

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	configureGlobalMiddleware(router, limiter, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, limiter, &cfg)
	for _, g := range groups {
		g.RegisterRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, limiter *middleware.ShardedRateLimiter, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(quietPaths...),
		middleware.ErrorHandler(),
	)

	if limiter != nil {
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group. Authentication
// runs before idempotency so replays are scoped to the caller.
func configureAPIMiddleware(api *gin.RouterGroup, limiter *middleware.ShardedRateLimiter, cfg *RouterConfig) {
	if cfg.EnableAuth {
		api.Use(middleware.Authenticate(cfg.APIKeys, cfg.TokenValidator))
		if limiter != nil {
			api.Use(limiter.UserRateLimit())
		}
	}

	api.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.IdempotencyStore != nil {
		api.Use(middleware.Idempotency(cfg.IdempotencyStore))
	}
}
