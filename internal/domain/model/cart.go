package model

import "github.com/shopspring/decimal"

// CartLine is one parsed cart entry. DeclaredPrice comes from the encoded
// string and is never used for pricing; the catalog price is authoritative.
type CartLine struct {
	MainItem      string
	DeclaredPrice decimal.Decimal
	Extras        []string
}

// SkipReason explains why a cart line contributed nothing to a receipt.
type SkipReason string

const (
	SkipMalformedMainItem SkipReason = "malformed_main_item"
	SkipMissingPrice      SkipReason = "missing_price"
	SkipInvalidPrice      SkipReason = "invalid_price"
	SkipUnknownItem       SkipReason = "unknown_item"
)

// SkippedLine records a cart line that was dropped while building a receipt.
//
// @Description Cart line excluded from the receipt
type SkippedLine struct {
	Index  int        `json:"index" example:"2"`
	Line   string     `json:"line" example:"Mystery Item: (2.0)"`
	Reason SkipReason `json:"reason" example:"unknown_item"`
} // @name SkippedLine
