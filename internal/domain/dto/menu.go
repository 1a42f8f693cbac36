package dto

import (
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
)

// MenuResponse is the current catalog snapshot.
//
// @Description Menu snapshot used to format receipts
type MenuResponse struct {
	Items       []model.CatalogItem `json:"items"`
	Count       int                 `json:"count" example:"4"`
	Marker      string              `json:"marker,omitempty" example:"2025-01-28T10:00:00.123456789Z"`
	Source      string              `json:"source" example:"server"`
	RefreshedAt time.Time           `json:"refreshed_at" example:"2025-01-28T10:00:00Z"`
} // @name MenuResponse

// NewMenuResponse converts a catalog snapshot for the wire.
func NewMenuResponse(c *model.Catalog) MenuResponse {
	if c == nil {
		c = model.EmptyCatalog()
	}
	items := c.Items()
	if items == nil {
		items = []model.CatalogItem{}
	}
	return MenuResponse{
		Items:       items,
		Count:       len(items),
		Marker:      c.Marker(),
		Source:      c.Source(),
		RefreshedAt: c.RefreshedAt(),
	}
}

// RefreshResponse reports the outcome of a catalog refresh or menu write.
//
// @Description Catalog refresh outcome
type RefreshResponse struct {
	Source      string                   `json:"source" example:"server"`
	Items       int                      `json:"items" example:"4"`
	Marker      string                   `json:"marker,omitempty"`
	Changed     bool                     `json:"changed" example:"true"`
	Diagnostics []model.RecordDiagnostic `json:"diagnostics"`
} // @name RefreshResponse

// NewRefreshResponse builds a RefreshResponse. Diagnostics is always an array.
func NewRefreshResponse(source string, items int, marker string, changed bool, diags []model.RecordDiagnostic) RefreshResponse {
	if diags == nil {
		diags = []model.RecordDiagnostic{}
	}
	return RefreshResponse{
		Source:      source,
		Items:       items,
		Marker:      marker,
		Changed:     changed,
		Diagnostics: diags,
	}
}
