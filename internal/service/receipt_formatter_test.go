//go:build !integration

package service

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReader struct {
	catalog *model.Catalog
}

func (r staticReader) Snapshot() *model.Catalog { return r.catalog }

func TestKitchenReceiptFormatter_Format(t *testing.T) {
	catalog := testCatalog(menuItem("Soda Can", "1.0", "Drink"))
	f := NewKitchenReceiptFormatter(staticReader{catalog}, fixedRenderer())

	receipt := f.Format(model.KitchenOrder{
		OrderName: "Table 2",
		OrderType: "Dine In",
		Items:     []string{"Soda Can: (1.0)", "Unknown: (1.0)", "Soda Can: (1.0)"},
	})

	_, err := uuid.Parse(receipt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Table 2", receipt.OrderName)
	assert.Equal(t, "Dine In", receipt.OrderType)
	assert.Equal(t, "2", receipt.Total.String())
	assert.Equal(t, 2, receipt.LineCount)
	assert.Equal(t, fixedTime, receipt.GeneratedAt)
	assert.Contains(t, receipt.Text, "Type: Drink\nSoda Can x 2\n")
	require.Len(t, receipt.Skipped, 1)
	assert.Equal(t, model.SkippedLine{Index: 1, Line: "Unknown: (1.0)", Reason: model.SkipUnknownItem}, receipt.Skipped[0])
}

func TestKitchenReceiptFormatter_SkippedLinesDoNotChangeText(t *testing.T) {
	catalog := testCatalog(menuItem("Soda Can", "1.0", "Drink"))
	f := NewKitchenReceiptFormatter(staticReader{catalog}, fixedRenderer())

	clean := f.Format(model.KitchenOrder{Items: []string{"Soda Can: (1.0)"}})
	noisy := f.Format(model.KitchenOrder{Items: []string{"???", "Soda Can: (1.0)", "Nope: (1)"}})

	assert.Equal(t, clean.Text, noisy.Text)
	assert.Len(t, noisy.Skipped, 2)
}

func TestKitchenReceiptFormatter_NilCatalog(t *testing.T) {
	for _, reader := range []CatalogReader{nil, staticReader{}} {
		f := NewKitchenReceiptFormatter(reader, fixedRenderer())

		receipt := f.Format(model.KitchenOrder{Items: []string{"Soda Can: (1.0)"}})

		assert.True(t, strings.HasSuffix(receipt.Text, "TOTAL: $0\n"))
		assert.Equal(t, 0, receipt.LineCount)
	}
}

func TestKitchenReceiptFormatter_DefaultRenderer(t *testing.T) {
	f := NewKitchenReceiptFormatter(staticReader{model.EmptyCatalog()}, nil)

	receipt := f.Format(model.KitchenOrder{})

	assert.True(t, strings.HasPrefix(receipt.Text, DefaultCompanyName+"\n"))
}

func TestKitchenReceiptFormatter_ConcurrentFormat(t *testing.T) {
	catalog := testCatalog(menuItem("Soda Can", "1.0", "Drink"), menuItem("Fries", "2.0", "Side"))
	f := NewKitchenReceiptFormatter(staticReader{catalog}, fixedRenderer())
	order := model.KitchenOrder{Items: []string{"Soda Can: (1.0)", "Fries: (2.0), Extras: Salt"}}
	want := f.Format(order).Text

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, f.Format(order).Text)
		}()
	}
	wg.Wait()
}
