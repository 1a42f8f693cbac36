package service

import (
	"errors"
	"strings"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ExtrasSeparator splits the main item from its extras in an encoded cart line.
const ExtrasSeparator = ", Extras: "

var (
	// ErrMalformedMainItem is returned when the main segment does not contain exactly one colon.
	ErrMalformedMainItem = errors.New("main item segment must contain exactly one colon")
	// ErrMissingPrice is returned when the main segment has no single parenthesised price.
	ErrMissingPrice = errors.New("main item price is missing")
	// ErrInvalidPrice is returned when the parenthesised price is not a decimal number.
	ErrInvalidPrice = errors.New("main item price is not a number")
)

// ParseCartLine decodes "<Name>: (<price>)[, Extras: <extra>[ (<price>)]]...".
func ParseCartLine(line string) (model.CartLine, error) {
	segments := strings.Split(line, ExtrasSeparator)

	main := strings.Split(strings.TrimSpace(segments[0]), ":")
	if len(main) != 2 {
		return model.CartLine{}, ErrMalformedMainItem
	}

	name := strings.TrimSpace(main[0])

	priceParts := strings.Split(main[1], "(")
	if len(priceParts) != 2 {
		return model.CartLine{}, ErrMissingPrice
	}

	raw := strings.TrimSpace(strings.ReplaceAll(priceParts[1], ")", ""))
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return model.CartLine{}, ErrInvalidPrice
	}

	extras := make([]string, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		extras = append(extras, trimAfterFirstParenthesis(strings.TrimSpace(seg)))
	}

	return model.CartLine{
		MainItem:      name,
		DeclaredPrice: price,
		Extras:        extras,
	}, nil
}

// trimAfterFirstParenthesis keeps the text before the first "(", trimmed.
func trimAfterFirstParenthesis(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// skipReason maps parser errors onto diagnostic reasons.
func skipReason(err error) model.SkipReason {
	switch {
	case errors.Is(err, ErrMissingPrice):
		return model.SkipMissingPrice
	case errors.Is(err, ErrInvalidPrice):
		return model.SkipInvalidPrice
	default:
		return model.SkipMalformedMainItem
	}
}
