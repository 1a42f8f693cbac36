//go:build !integration

package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns a configuration that runs without MongoDB.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:               "8080",
			RateLimit:          100,
			RateWindow:         time.Minute,
			RequestTimeout:     5 * time.Second,
			IdempotencyEnabled: true,
			IdempotencyTTL:     time.Minute,
		},
		Catalog: config.CatalogConfig{
			FetchTimeout: time.Second,
		},
		Receipt: config.ReceiptConfig{
			CompanyName: "TEST DINER",
			Timezone:    "UTC",
		},
		Log: config.LogConfig{Level: "error"},
	}
}
