// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/config"
)

const closeTimeout = 10 * time.Second

// App is the wired kitchen receipt service.
type App struct {
	Router   *gin.Engine
	Database *DatabaseComponents
	Services *ServiceComponents
	Routing  *RouterComponents

	cancel context.CancelFunc
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	InitializeLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())

	db := InitializeDatabase(cfg.Database)

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		cancel()
		db.Close(context.Background())
		return nil, err
	}

	routing := InitializeRouter(cfg, services, db)

	return &App{
		Router:   routing.Router,
		Database: db,
		Services: services,
		Routing:  routing,
		cancel:   cancel,
	}, nil
}

// Close stops background work in dependency order: the catalog refresher
// and receipt archive first, then the middleware loops, then MongoDB.
func (a *App) Close() {
	a.cancel()
	a.Services.Stop()
	a.Routing.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	a.Database.Close(ctx)
}
