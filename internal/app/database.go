// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/guttosm/kitchen-receipt-service/internal/circuitbreaker"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// Circuit breaker names, as reported by /readyz and the circuit_breaker_state metric.
const (
	breakerMenu     = "mongodb_menu"
	breakerReceipts = "mongodb_receipts"
)

const dbPingTimeout = 2 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	MenuRepo               repository.MenuRepositoryInterface
	ChangesRepo            repository.ChangesRepositoryInterface
	ReceiptsRepo           repository.ReceiptsRepositoryInterface
	MenuCircuitBreaker     *circuitbreaker.CircuitBreaker
	ReceiptsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the breaker-guarded
// repositories. It returns nil if the database is disabled or unreachable,
// in which case the service formats against the built-in menu.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with built-in menu")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.ReceiptsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.SetReceiptsTTL(ctx, cfg.ReceiptsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set receipts TTL index")
		}
		cancel()
	}

	// Menu and change marker reads share a breaker: both feed the catalog.
	menuCB := newCircuitBreaker(breakerMenu, cfg)
	receiptsCB := newCircuitBreaker(breakerReceipts, cfg)

	return &DatabaseComponents{
		DB:                     db,
		MenuRepo:               repository.NewMenuRepositoryWithCircuitBreaker(repository.NewMenuRepository(db), menuCB),
		ChangesRepo:            repository.NewChangesRepositoryWithCircuitBreaker(repository.NewChangesRepository(db), menuCB),
		ReceiptsRepo:           repository.NewReceiptsRepositoryWithCircuitBreaker(repository.NewReceiptsRepository(db), receiptsCB),
		MenuCircuitBreaker:     menuCB,
		ReceiptsCircuitBreaker: receiptsCB,
	}
}

// HealthCheck pings MongoDB.
func (d *DatabaseComponents) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) {
	if d == nil || d.DB == nil {
		return
	}
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		return
	}
	log.Info().Msg("Disconnected from MongoDB")
}

// newCircuitBreaker builds a breaker that publishes its state to Prometheus.
func newCircuitBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		OnStateChange:    publishBreakerState,
	})
}

func publishBreakerState(name string, _, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
}
