//go:build !integration

package dto

import (
	"testing"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKitchenReceiptResponse(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	receipt := model.Receipt{
		ID:          "r-1",
		OrderName:   "Table 4",
		OrderType:   "Dine In",
		Text:        "COMPANY NAME\n",
		Total:       decimal.RequireFromString("3.50"),
		LineCount:   1,
		GeneratedAt: at,
		Skipped: []model.SkippedLine{
			{Index: 1, Line: "Mystery: (1.0)", Reason: model.SkipUnknownItem},
		},
	}

	resp := NewKitchenReceiptResponse(receipt)

	assert.Equal(t, "r-1", resp.ID)
	assert.Equal(t, "3.5", resp.Total)
	assert.Equal(t, 1, resp.LineCount)
	assert.Equal(t, at, resp.GeneratedAt)
	require.Len(t, resp.LinesSkipped, 1)
	assert.Equal(t, model.SkipUnknownItem, resp.LinesSkipped[0].Reason)
}

func TestNewKitchenReceiptResponse_NoSkippedLines(t *testing.T) {
	resp := NewKitchenReceiptResponse(model.Receipt{Total: decimal.Zero})

	assert.NotNil(t, resp.LinesSkipped)
	assert.Empty(t, resp.LinesSkipped)
	assert.Equal(t, "0", resp.Total)
}

func TestNewReceiptListResponse(t *testing.T) {
	resp := NewReceiptListResponse([]model.Receipt{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "a", resp.Receipts[0].ID)
	assert.Equal(t, "b", resp.Receipts[1].ID)

	empty := NewReceiptListResponse(nil)
	assert.NotNil(t, empty.Receipts)
	assert.Equal(t, 0, empty.Count)
}

func TestNewMenuResponse(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	catalog := model.NewCatalog([]model.CatalogItem{
		{Name: "Soda Can", Price: decimal.NewFromInt(1), Category: "drink"},
	}, "m-1", "server", at)

	resp := NewMenuResponse(catalog)

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Soda Can", resp.Items[0].Name)
	assert.Equal(t, "m-1", resp.Marker)
	assert.Equal(t, "server", resp.Source)
	assert.Equal(t, at, resp.RefreshedAt)

	empty := NewMenuResponse(nil)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Count)
}

func TestNewRefreshResponse(t *testing.T) {
	resp := NewRefreshResponse("cache", 4, "m-1", false, nil)

	assert.Equal(t, "cache", resp.Source)
	assert.Equal(t, 4, resp.Items)
	assert.False(t, resp.Changed)
	assert.NotNil(t, resp.Diagnostics)
}
