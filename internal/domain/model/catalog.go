// Package model defines the core domain entities for the kitchen receipt service.
package model

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Display categories, in the order the kitchen reads them.
const (
	CategoryStarter = "Starter"
	CategoryMain    = "Main"
	CategorySide    = "Side"
	CategoryDrink   = "Drink"
)

// PreferredCategoryOrder is the fixed section order on a kitchen receipt.
// Categories outside this list follow in lexicographic order.
var PreferredCategoryOrder = []string{CategoryStarter, CategoryMain, CategorySide, CategoryDrink}

var displayCategories = map[string]string{
	"starter": CategoryStarter,
	"main":    CategoryMain,
	"side":    CategorySide,
	"drink":   CategoryDrink,
}

// DisplayCategory maps a raw menu type to its receipt section name.
// Known types match case-insensitively; anything else passes through unchanged.
func DisplayCategory(raw string) string {
	if c, ok := displayCategories[strings.ToLower(raw)]; ok {
		return c
	}
	return raw
}

// CategoryRank returns the position of a display category in
// PreferredCategoryOrder, or len(PreferredCategoryOrder) when it is not listed.
func CategoryRank(category string) int {
	for i, c := range PreferredCategoryOrder {
		if c == category {
			return i
		}
	}
	return len(PreferredCategoryOrder)
}

// SortCategories orders categories for rendering: preferred ones first in
// their fixed order, the rest lexicographically.
func SortCategories(categories []string) {
	sort.SliceStable(categories, func(i, j int) bool {
		ri, rj := CategoryRank(categories[i]), CategoryRank(categories[j])
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})
}

// CatalogItem is a single priced menu entry.
//
// @Description Menu item as served by the catalog
type CatalogItem struct {
	Name          string            `json:"name" example:"Soda Can"`
	Price         decimal.Decimal   `json:"price" swaggertype:"string" example:"1.0"`
	Category      string            `json:"category" example:"Drink"`
	Description   string            `json:"description,omitempty"`
	Image         string            `json:"image,omitempty"`
	Location      string            `json:"location,omitempty"`
	VAT           decimal.Decimal   `json:"vat" swaggertype:"string" example:"0"`
	Sizes         []string          `json:"sizes,omitempty"`
	SizePrices    []decimal.Decimal `json:"size_prices,omitempty" swaggertype:"array,string"`
	MealDeal      string            `json:"meal_deal,omitempty"`
	MealDealPrice decimal.Decimal   `json:"meal_deal_price" swaggertype:"string" example:"0"`
	UpdatedAt     time.Time         `json:"updated_at,omitempty"`
} // @name CatalogItem

// Catalog is an immutable snapshot of the menu.
// Lookups are exact and case-sensitive by item name.
type Catalog struct {
	items       []CatalogItem
	byName      map[string]int
	marker      string
	refreshedAt time.Time
	source      string
}

// NewCatalog builds a snapshot from items. When two items share a name,
// the first one wins.
func NewCatalog(items []CatalogItem, marker, source string, refreshedAt time.Time) *Catalog {
	c := &Catalog{
		items:       make([]CatalogItem, 0, len(items)),
		byName:      make(map[string]int, len(items)),
		marker:      marker,
		refreshedAt: refreshedAt,
		source:      source,
	}
	for _, item := range items {
		if _, dup := c.byName[item.Name]; dup {
			continue
		}
		c.byName[item.Name] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// EmptyCatalog returns a snapshot with no items.
func EmptyCatalog() *Catalog {
	return NewCatalog(nil, "", "", time.Time{})
}

// Lookup resolves a main item name against the snapshot.
func (c *Catalog) Lookup(name string) (CatalogItem, bool) {
	if c == nil {
		return CatalogItem{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the snapshot items.
func (c *Catalog) Items() []CatalogItem {
	if c == nil {
		return nil
	}
	out := make([]CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the snapshot.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Marker is the change marker the snapshot was built from.
func (c *Catalog) Marker() string {
	if c == nil {
		return ""
	}
	return c.marker
}

// RefreshedAt is when the snapshot was published.
func (c *Catalog) RefreshedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.refreshedAt
}

// Source tells where the snapshot items came from ("server", "cache", "static").
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}
