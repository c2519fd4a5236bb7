package calculator

import "github.com/shopspring/decimal"

// Tolerance is the largest reconciliation difference that is not worth a warning.
var Tolerance = decimal.New(1, -2)

// Reconciliation compares the bill subtotal with what submitted participants
// will be charged for items. A difference means items are unclaimed (positive)
// or the subtotal disagrees with the item prices.
type Reconciliation struct {
	Subtotal   decimal.Decimal
	Claimed    decimal.Decimal
	Difference decimal.Decimal
	// Warning is set when the difference exceeds Tolerance. It never blocks completion.
	Warning bool
}

// Reconcile computes subtotal − Σ itemsTotals.
func Reconcile(subtotal decimal.Decimal, itemsTotals map[string]decimal.Decimal) Reconciliation {
	claimed := decimal.Zero
	for _, total := range itemsTotals {
		claimed = claimed.Add(total)
	}
	diff := subtotal.Sub(claimed)
	return Reconciliation{
		Subtotal:   subtotal,
		Claimed:    claimed,
		Difference: diff,
		Warning:    diff.Abs().GreaterThan(Tolerance),
	}
}
