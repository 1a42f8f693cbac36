// Package service holds the receipt formatter, the menu catalog and the
// receipt archive.
package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
)

// CatalogReader hands out the current catalog snapshot. Implementations must
// return an immutable value that stays valid after later refreshes.
type CatalogReader interface {
	Snapshot() *model.Catalog
}

// ReceiptFormatter turns a kitchen order into receipt text.
type ReceiptFormatter interface {
	Format(order model.KitchenOrder) model.Receipt
}

// KitchenReceiptFormatter formats receipts against whatever catalog snapshot
// is current when Format is called.
type KitchenReceiptFormatter struct {
	catalog  CatalogReader
	renderer *ReceiptRenderer
}

// NewKitchenReceiptFormatter creates a formatter. A nil renderer gets the defaults.
func NewKitchenReceiptFormatter(catalog CatalogReader, renderer *ReceiptRenderer) *KitchenReceiptFormatter {
	if renderer == nil {
		renderer = NewReceiptRenderer()
	}
	return &KitchenReceiptFormatter{
		catalog:  catalog,
		renderer: renderer,
	}
}

// Format parses, aggregates and renders the order. It never fails: lines that
// cannot be parsed or resolved are left out and listed in Receipt.Skipped.
func (f *KitchenReceiptFormatter) Format(order model.KitchenOrder) model.Receipt {
	start := time.Now()

	snapshot := model.EmptyCatalog()
	if f.catalog != nil {
		if s := f.catalog.Snapshot(); s != nil {
			snapshot = s
		}
	}

	agg, skipped := Aggregate(order.Items, snapshot)
	at := f.renderer.Now()
	text, total := f.renderer.Render(order, agg, at)

	for _, s := range skipped {
		metrics.RecordSkippedLine(string(s.Reason))
	}
	metrics.RecordReceipt(time.Since(start), "success")

	return model.Receipt{
		ID:          uuid.NewString(),
		OrderName:   order.OrderName,
		OrderType:   order.OrderType,
		Text:        text,
		Total:       total,
		LineCount:   len(order.Items) - len(skipped),
		Skipped:     skipped,
		GeneratedAt: at,
	}
}
