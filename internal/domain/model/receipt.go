package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem aggregates every cart line for one main item within a category.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Extras    map[string]int
}

// Subtotal is quantity times the catalog price. Extras are never priced.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ExtraNames returns the extra names sorted lexicographically.
func (l LineItem) ExtraNames() []string {
	names := make([]string, 0, len(l.Extras))
	for name := range l.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aggregation groups line items by display category, then by main item name.
type Aggregation map[string]map[string]*LineItem

// Categories returns the categories present, in rendering order.
func (a Aggregation) Categories() []string {
	cats := make([]string, 0, len(a))
	for c := range a {
		cats = append(cats, c)
	}
	SortCategories(cats)
	return cats
}

// Items returns the line items of a category sorted by name.
func (a Aggregation) Items(category string) []*LineItem {
	bucket := a[category]
	items := make([]*LineItem, 0, len(bucket))
	for _, item := range bucket {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Total sums the subtotals of every aggregated main item.
func (a Aggregation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range a {
		for _, item := range bucket {
			total = total.Add(item.Subtotal())
		}
	}
	return total
}

// Quantity returns the aggregated quantity for (category, name), zero when absent.
func (a Aggregation) Quantity(category, name string) int {
	if item, ok := a[category][name]; ok {
		return item.Quantity
	}
	return 0
}

// KitchenOrder is the input to the receipt formatter.
type KitchenOrder struct {
	OrderName  string
	OrderType  string
	Note       string
	Items      []string
	ShowPrices bool
}

// Receipt is a rendered kitchen receipt plus the diagnostics gathered while
// building it.
type Receipt struct {
	ID          string
	OrderName   string
	OrderType   string
	Text        string
	Total       decimal.Decimal
	LineCount   int
	Skipped     []SkippedLine
	GeneratedAt time.Time
}
