package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultCompanyName heads every receipt unless overridden.
	DefaultCompanyName = "COMPANY NAME"
	// ReceiptDateLayout renders as yyyy-MM-dd HH:mm:ss.
	ReceiptDateLayout = "2006-01-02 15:04:05"

	extraIndent = "     "
)

var (
	// DefaultAttribution is printed between the note and the closing rule.
	DefaultAttribution = []string{"POWERED BY AEXIR", "KITCHEN RECEIPT"}

	separatorRule = strings.Repeat("-", 29)
)

// RendererOption configures a ReceiptRenderer.
type RendererOption func(*ReceiptRenderer)

// ReceiptRenderer lays out an aggregation as fixed-format kitchen receipt text.
type ReceiptRenderer struct {
	companyName string
	attribution []string
	location    *time.Location
	now         func() time.Time
}

// NewReceiptRenderer creates a renderer with the default header and footer.
func NewReceiptRenderer(opts ...RendererOption) *ReceiptRenderer {
	r := &ReceiptRenderer{
		companyName: DefaultCompanyName,
		attribution: append([]string(nil), DefaultAttribution...),
		location:    time.Local,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCompanyName overrides the header line.
func WithCompanyName(name string) RendererOption {
	return func(r *ReceiptRenderer) {
		if name != "" {
			r.companyName = name
		}
	}
}

// WithAttribution overrides the fixed footer lines.
func WithAttribution(lines []string) RendererOption {
	return func(r *ReceiptRenderer) {
		if len(lines) > 0 {
			r.attribution = append([]string(nil), lines...)
		}
	}
}

// WithLocation sets the time zone used for the DATE line.
func WithLocation(loc *time.Location) RendererOption {
	return func(r *ReceiptRenderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) RendererOption {
	return func(r *ReceiptRenderer) {
		if now != nil {
			r.now = now
		}
	}
}

// Now returns the renderer's current time in its configured location.
func (r *ReceiptRenderer) Now() time.Time {
	return r.now().In(r.location)
}

// Render produces the receipt text and the order total.
func (r *ReceiptRenderer) Render(order model.KitchenOrder, agg model.Aggregation, at time.Time) (string, decimal.Decimal) {
	upper := cases.Upper(language.Und)

	lines := []string{
		r.companyName,
		separatorRule,
		"OrderType: " + order.OrderType,
		"DATE: " + upper.String(at.In(r.location).Format(ReceiptDateLayout)),
		"ORDER NAME: " + order.OrderName,
		separatorRule,
	}

	for _, category := range agg.Categories() {
		lines = append(lines, "Type: "+category)
		for _, item := range agg.Items(category) {
			if order.ShowPrices {
				lines = append(lines, fmt.Sprintf("%s (%s) x %d", item.Name, item.UnitPrice.String(), item.Quantity))
			} else {
				lines = append(lines, fmt.Sprintf("%s x %d", item.Name, item.Quantity))
			}
			for _, extra := range item.ExtraNames() {
				lines = append(lines, fmt.Sprintf("%s%s x %d", extraIndent, extra, item.Extras[extra]))
			}
		}
	}

	total := agg.Total()

	lines = append(lines, separatorRule, "NOTE: "+upper.String(order.Note))
	lines = append(lines, r.attribution...)
	lines = append(lines, separatorRule, "TOTAL: $"+total.String())

	return strings.Join(lines, "\n") + "\n", total
}
