// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/rs/zerolog/log"
)

const seedTimeout = 10 * time.Second

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog  *service.CatalogServiceImpl
	Archiver *service.ReceiptArchiver
	Receipts service.ReceiptService
	// Tokens is nil unless JWT_SECRET_KEY is set.
	Tokens service.TokenService
}

// InitializeServices builds the catalog, formatter and receipt services.
// With db nil the catalog serves the built-in menu and nothing is archived.
// The catalog's background refresher runs until ctx is done or Stop is called.
func InitializeServices(ctx context.Context, cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	loc, err := cfg.Receipt.Location()
	if err != nil {
		return nil, err
	}

	components := &ServiceComponents{}
	if cfg.Auth.JWTSecretKey != "" {
		components.Tokens = service.NewTokenService(service.TokenConfig{
			SecretKey: cfg.Auth.JWTSecretKey,
			Issuer:    cfg.Auth.JWTIssuer,
		})
	}

	var receiptsRepo repository.ReceiptsRepositoryInterface
	if db == nil {
		components.Catalog = service.NewCatalogService(nil, nil,
			service.WithStaticItems(service.DefaultMenu()),
			service.WithFetchTimeout(cfg.Catalog.FetchTimeout),
		)
	} else {
		receiptsRepo = db.ReceiptsRepo
		components.Catalog = service.NewCatalogService(db.MenuRepo, db.ChangesRepo,
			service.WithFetchTimeout(cfg.Catalog.FetchTimeout),
		)
		syncCatalog(ctx, components.Catalog, cfg.Catalog)
	}

	components.Archiver = service.NewReceiptArchiver(receiptsRepo, service.ArchiveConfig{
		BufferSize: cfg.Receipt.ArchiveBuffer,
		NumWorkers: cfg.Receipt.ArchiveWorkers,
	})

	renderer := service.NewReceiptRenderer(
		service.WithCompanyName(cfg.Receipt.CompanyName),
		service.WithAttribution(cfg.Receipt.Attribution),
		service.WithLocation(loc),
	)
	formatter := service.NewKitchenReceiptFormatter(components.Catalog, renderer)
	components.Receipts = service.NewReceiptService(formatter, components.Archiver, receiptsRepo)

	return components, nil
}

// syncCatalog seeds an empty menu, loads the first snapshot and starts the
// background refresher. Failures are logged: the refresher keeps retrying.
func syncCatalog(ctx context.Context, catalog *service.CatalogServiceImpl, cfg config.CatalogConfig) {
	if cfg.SeedDefaults {
		seedCtx, cancel := context.WithTimeout(ctx, seedTimeout)
		if _, err := catalog.SeedDefaults(seedCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to seed default menu")
		}
		cancel()
	}

	result, err := catalog.Refresh(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Initial menu load failed")
	} else {
		log.Info().
			Str("source", result.Source).
			Int("items", result.Items).
			Int("rejected", len(result.Diagnostics)).
			Msg("Menu catalog loaded")
	}

	if cfg.RefreshInterval > 0 {
		catalog.Start(ctx, cfg.RefreshInterval)
	}
}

// Stop halts the catalog refresher and flushes the receipt archive.
func (s *ServiceComponents) Stop() {
	if s == nil {
		return
	}
	s.Catalog.Stop()
	s.Archiver.Stop()
	if stats := s.Archiver.Stats(); stats.Queued > 0 {
		log.Info().
			Int64("stored", stats.Stored).
			Int64("failed", stats.Failed).
			Int64("dropped", stats.Dropped).
			Int64("queued", stats.Queued).
			Msg("Receipt archive flushed")
	}
}
