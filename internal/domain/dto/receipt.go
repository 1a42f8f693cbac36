package dto

import (
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
)

// KitchenReceiptResponse is a formatted kitchen receipt.
//
// @Description Formatted kitchen receipt
type KitchenReceiptResponse struct {
	ID           string              `json:"id" example:"5f1c1b8e-3c1e-4f0e-9a53-2b1b7d0c2f11"`
	OrderName    string              `json:"order_name" example:"Table 4"`
	OrderType    string              `json:"order_type,omitempty" example:"Dine In"`
	Text         string              `json:"text"`
	Total        string              `json:"total" example:"3"`
	LineCount    int                 `json:"line_count" example:"1"`
	LinesSkipped []model.SkippedLine `json:"lines_skipped"`
	GeneratedAt  time.Time           `json:"generated_at" example:"2025-01-28T10:00:00Z"`
} // @name KitchenReceiptResponse

// NewKitchenReceiptResponse converts a receipt for the wire. LinesSkipped is
// always an array, never null.
func NewKitchenReceiptResponse(r model.Receipt) KitchenReceiptResponse {
	skipped := r.Skipped
	if skipped == nil {
		skipped = []model.SkippedLine{}
	}
	return KitchenReceiptResponse{
		ID:           r.ID,
		OrderName:    r.OrderName,
		OrderType:    r.OrderType,
		Text:         r.Text,
		Total:        r.Total.String(),
		LineCount:    r.LineCount,
		LinesSkipped: skipped,
		GeneratedAt:  r.GeneratedAt,
	}
}

// ReceiptListResponse is the body of GET /api/receipts.
//
// @Description Archived receipts, newest first
type ReceiptListResponse struct {
	Receipts []KitchenReceiptResponse `json:"receipts"`
	Count    int                      `json:"count" example:"1"`
} // @name ReceiptListResponse

// NewReceiptListResponse converts archived receipts for the wire.
func NewReceiptListResponse(receipts []model.Receipt) ReceiptListResponse {
	out := make([]KitchenReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, NewKitchenReceiptResponse(r))
	}
	return ReceiptListResponse{Receipts: out, Count: len(out)}
}
