// Package dto defines the JSON shapes of the HTTP API.
//
// DTOs keep the wire format apart from the domain model: decimals travel as
// strings, validation happens here, and conversion helpers build the model
// values the services work on.
package dto

import (
	"strings"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// MaxCartLines caps the number of cart lines accepted in one receipt request.
const MaxCartLines = 500

// KitchenReceiptRequest is the body of POST /api/receipts/kitchen.
//
// Items holds encoded cart lines, "<Name>: (<price>), Extras: <extra>, ...".
// Lines that do not parse or do not match the menu are left off the receipt
// and reported in the response.
//
// @Description Order to format as a kitchen receipt
type KitchenReceiptRequest struct {
	OrderName  string   `json:"order_name" binding:"required" example:"Table 4"`
	OrderType  string   `json:"order_type" example:"Dine In"`
	Note       string   `json:"note" example:"no onions"`
	Items      []string `json:"items" binding:"max=500" example:"Chocolate Donut: (3.0), Extras: Chocolate Sauce (0.52)"`
	ShowPrices bool     `json:"show_prices" example:"false"`
} // @name KitchenReceiptRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrOrderNameRequired is returned when order_name is blank.
	ErrOrderNameRequired = &ValidationError{Field: "order_name", Message: "must not be blank"}
	// ErrTooManyItems is returned when items exceeds MaxCartLines.
	ErrTooManyItems = &ValidationError{Field: "items", Message: "too many cart lines"}
	// ErrMenuItemsRequired is returned when a menu upsert carries no items.
	ErrMenuItemsRequired = &ValidationError{Field: "items", Message: "at least one item is required"}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks what binding tags cannot express.
func (r *KitchenReceiptRequest) Validate() error {
	if strings.TrimSpace(r.OrderName) == "" {
		return ErrOrderNameRequired
	}
	if len(r.Items) > MaxCartLines {
		return ErrTooManyItems
	}
	return nil
}

// ToModel converts the request into a formatter input.
func (r *KitchenReceiptRequest) ToModel() model.KitchenOrder {
	return model.KitchenOrder{
		OrderName:  r.OrderName,
		OrderType:  r.OrderType,
		Note:       r.Note,
		Items:      r.Items,
		ShowPrices: r.ShowPrices,
	}
}

// MenuItemRequest is one item in a menu upsert. Prices are decimal strings.
//
// @Description Menu item to create or replace
type MenuItemRequest struct {
	Name          string   `json:"name" binding:"required" example:"Soda Can"`
	Price         string   `json:"price" binding:"required" example:"1.0"`
	Category      string   `json:"category" binding:"required" example:"drink"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image,omitempty"`
	Location      string   `json:"location,omitempty"`
	VAT           string   `json:"vat,omitempty" example:"20"`
	Sizes         []string `json:"sizes,omitempty"`
	SizePrices    []string `json:"size_prices,omitempty"`
	MealDeal      string   `json:"meal_deal,omitempty"`
	MealDealPrice string   `json:"meal_deal_price,omitempty"`
} // @name MenuItemRequest

// UpsertMenuRequest is the body of PUT /api/menu/items.
//
// @Description Menu items to create or replace, keyed by name
type UpsertMenuRequest struct {
	Items []MenuItemRequest `json:"items" binding:"required,dive"`
} // @name UpsertMenuRequest

// ToModel converts the request into catalog items. Price fields that are not
// decimals are reported as validation errors naming the offending item.
func (r *UpsertMenuRequest) ToModel() ([]model.CatalogItem, error) {
	if len(r.Items) == 0 {
		return nil, ErrMenuItemsRequired
	}

	items := make([]model.CatalogItem, 0, len(r.Items))
	for _, in := range r.Items {
		item := model.CatalogItem{
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			Image:       in.Image,
			Location:    in.Location,
			Sizes:       in.Sizes,
			MealDeal:    in.MealDeal,
		}

		var err error
		if item.Price, err = parseDecimal(in.Price); err != nil {
			return nil, &ValidationError{Field: in.Name + ".price", Message: "must be a decimal number"}
		}
		if item.VAT, err = parseDecimal(in.VAT); err != nil {
			return nil, &ValidationError{Field: in.Name + ".vat", Message: "must be a decimal number"}
		}
		if item.MealDealPrice, err = parseDecimal(in.MealDealPrice); err != nil {
			return nil, &ValidationError{Field: in.Name + ".meal_deal_price", Message: "must be a decimal number"}
		}
		for _, p := range in.SizePrices {
			d, err := parseDecimal(p)
			if err != nil {
				return nil, &ValidationError{Field: in.Name + ".size_prices", Message: "must be decimal numbers"}
			}
			item.SizePrices = append(item.SizePrices, d)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseDecimal treats a blank string as zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
