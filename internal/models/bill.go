package models

import (
	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	// BillEditing is the initial state: items are being parsed or entered.
	BillEditing BillStatus = "editing"
	// BillActive means the share link is live and participants are claiming.
	BillActive BillStatus = "active"
	// BillComplete means totals are final and payment handles are recorded.
	BillComplete BillStatus = "complete"
)

// Valid reports whether s is a known bill status.
func (s BillStatus) Valid() bool {
	switch s {
	case BillEditing, BillActive, BillComplete:
		return true
	}
	return false
}

// PaymentHandles are the creator's payment identifiers shown with final results.
type PaymentHandles struct {
	Venmo   string
	Zelle   string
	CashApp string
}

// Any reports whether at least one handle is set.
func (h PaymentHandles) Any() bool {
	return h.Venmo != "" || h.Zelle != "" || h.CashApp != ""
}

// Bill represents one uploaded receipt.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// CreatorToken grants full control over the bill until it is complete.
	CreatorToken string

	// ShareToken grants read access and the ability to join.
	ShareToken string

	Status BillStatus

	// Venue is the restaurant name reported by the parser, if any.
	Venue string

	// ImageKey locates the receipt image in the image store. Empty when the
	// bill was created without an image.
	ImageKey         string
	ImageContentType string

	// Subtotal, Tax and Tip are unset until ingest or manual entry.
	Subtotal decimal.NullDecimal
	Tax      decimal.NullDecimal
	Tip      decimal.NullDecimal

	// Payment is recorded only at completion.
	Payment PaymentHandles

	CreatedAt int64
	UpdatedAt int64
}

// BillItem represents a single line item on a bill.
type BillItem struct {
	ID     string
	BillID string
	Name   string
	// Price is the non-negative price of the whole item.
	Price decimal.Decimal
	// Position orders items as they appeared on the receipt.
	Position  int
	CreatedAt int64
}

// SumPrices returns the total price of items.
func SumPrices(items []BillItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price)
	}
	return sum
}

// ItemClaim records that a participant claims an item.
type ItemClaim struct {
	ItemID        string
	ParticipantID string
	BillID        string
	CreatedAt     int64
}
