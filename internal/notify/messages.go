package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/models"
)

// ConfirmationMessage is sent once a participant has submitted their items
// and verified their phone.
func ConfirmationMessage(name, venue string, provisional decimal.Decimal) string {
	return fmt.Sprintf("Hi %s, your items%s are locked in. Running total before tax and tip: $%s. We'll text you the final amount.",
		name, at(venue), provisional.StringFixed(2))
}

// FinalMessage tells a participant what they owe and how to pay.
func FinalMessage(name, venue string, total decimal.Decimal, handles models.PaymentHandles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, the bill%s is settled. You owe $%s.", name, at(venue), total.StringFixed(2))

	var pay []string
	if handles.Venmo != "" {
		pay = append(pay, "Venmo "+handles.Venmo)
	}
	if handles.Zelle != "" {
		pay = append(pay, "Zelle "+handles.Zelle)
	}
	if handles.CashApp != "" {
		pay = append(pay, "Cash App "+handles.CashApp)
	}
	if len(pay) > 0 {
		fmt.Fprintf(&b, " Pay via %s.", strings.Join(pay, " or "))
	}
	return b.String()
}

func at(venue string) string {
	if venue == "" {
		return ""
	}
	return " at " + venue
}
