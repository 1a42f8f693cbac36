package service

import (
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultMenu is the demo menu written by SeedDefaults and served in static
// mode. Categories are stored lowercase the way the till writes them.
func DefaultMenu() []model.CatalogItem {
	return []model.CatalogItem{
		{Name: "Garlic Bread", Price: decimal.RequireFromString("2.5"), Category: "starter", Description: "Toasted with garlic butter"},
		{Name: "Chocolate Donut", Price: decimal.RequireFromString("3.0"), Category: "main", Description: "Ring donut, chocolate glaze"},
		{Name: "Fries", Price: decimal.RequireFromString("2.0"), Category: "side",
			Sizes:      []string{"Regular", "Large"},
			SizePrices: []decimal.Decimal{decimal.RequireFromString("2.0"), decimal.RequireFromString("2.8")}},
		{Name: "Soda Can", Price: decimal.RequireFromString("1.0"), Category: "drink"},
	}
}
