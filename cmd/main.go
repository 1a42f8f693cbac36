// Package main is the entry point for the kitchen-receipt-service application.
//
// @title           Kitchen Receipt Service API
// @version         1.0.0
// @description     Formats point-of-sale carts into fixed-width kitchen receipts.
//
//	Cart lines are priced against a menu catalog kept in MongoDB and grouped by course.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/kitchen-receipt-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" signed with JWT_SECRET_KEY.
//
// @tag.name        Receipts
// @tag.description Kitchen receipt formatting and archive
//
// @tag.name        Menu
// @tag.description Menu catalog reads and writes
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"time"

	_ "github.com/guttosm/kitchen-receipt-service/docs" // swagger docs

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/guttosm/kitchen-receipt-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		app.WithWriteTimeout(cfg.Server.RequestTimeout+5*time.Second),
	)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
