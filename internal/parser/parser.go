// Package parser turns receipt images into structured line items.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/models"
)

var (
	// ErrDisabled is returned when no parsing provider is configured.
	ErrDisabled = errors.New("receipt parsing is not configured")
	// ErrBadResponse means the provider answered with something that is not a receipt.
	ErrBadResponse = errors.New("receipt parser returned an invalid response")
)

// ReceiptItem is one parsed line item.
type ReceiptItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Receipt is the parser's view of a bill. Totals are null when not
// printed on the receipt.
type Receipt struct {
	Venue    string              `json:"venue"`
	Items    []ReceiptItem       `json:"items"`
	Subtotal decimal.NullDecimal `json:"subtotal"`
	Tax      decimal.NullDecimal `json:"tax"`
	Tip      decimal.NullDecimal `json:"tip"`
}

// Parser extracts a Receipt from an image.
type Parser interface {
	Parse(ctx context.Context, image []byte, contentType string) (*Receipt, error)
}

// Validate checks the receipt is usable and trims names.
func (r *Receipt) Validate() error {
	r.Venue = strings.TrimSpace(r.Venue)
	for i := range r.Items {
		r.Items[i].Name = strings.TrimSpace(r.Items[i].Name)
		if r.Items[i].Name == "" {
			return fmt.Errorf("%w: item %d has no name", ErrBadResponse, i+1)
		}
		if models.CheckAmount(r.Items[i].Price) != nil {
			return fmt.Errorf("%w: item %q has an invalid price", ErrBadResponse, r.Items[i].Name)
		}
	}
	for name, v := range map[string]decimal.NullDecimal{"subtotal": r.Subtotal, "tax": r.Tax, "tip": r.Tip} {
		if v.Valid && models.CheckAmount(v.Decimal) != nil {
			return fmt.Errorf("%w: invalid %s", ErrBadResponse, name)
		}
	}
	return nil
}

// Disabled is used when no provider is configured.
type Disabled struct{}

func (Disabled) Parse(context.Context, []byte, string) (*Receipt, error) {
	return nil, ErrDisabled
}
