package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Amount limits. A decimal is checked against them before any arithmetic,
// since rescaling one with a huge exponent allocates a huge integer.
const (
	MaxAmountDigits = 9
	MaxAmountPlaces = 6
)

// ErrAmountOutOfRange is returned by CheckAmount.
var ErrAmountOutOfRange = errors.New("amount out of range")

var maxAmount = decimal.New(1, MaxAmountDigits)

// CheckAmount reports ErrAmountOutOfRange unless d is non-negative, below
// 10^MaxAmountDigits and has at most MaxAmountPlaces decimal places.
func CheckAmount(d decimal.Decimal) error {
	if exp := d.Exponent(); exp < -MaxAmountPlaces || exp > MaxAmountDigits {
		return ErrAmountOutOfRange
	}
	if d.IsNegative() || d.Cmp(maxAmount) >= 0 {
		return ErrAmountOutOfRange
	}
	return nil
}
