package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/pkg/api"
)

// amountPattern admits plain amounts only. Exponent forms would let a
// short string name an enormous number.
var amountPattern = regexp.MustCompile(`^[0-9]{1,9}(\.[0-9]{1,6})?$`)

const (
	maxItemNameLen   = 200
	maxPersonNameLen = 64
	maxHandleLen     = 100
)

// money formats an amount for display, rounded to cents.
func money(d decimal.Decimal) string {
	return calculator.RoundCents(d).StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return money(d.Decimal)
}

// parseMoney parses a non-negative amount such as "12.50" or "$12.50".
func parseMoney(field, s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return decimal.Zero, apperr.Validation(field+" is required", "")
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, apperr.Validation(field+" must not be negative", "")
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, apperr.Validation(field+" must be an amount like 12.50", "at most 9 digits and 6 decimal places")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || models.CheckAmount(d) != nil {
		return decimal.Zero, apperr.Validation(field+" must be an amount like 12.50", "")
	}
	return d, nil
}

// parseOptionalMoney parses s, treating an empty string as unset.
func parseOptionalMoney(field, s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseMoney(field, s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func itemName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("item name is required", "")
	}
	if len(name) > maxItemNameLen {
		return "", apperr.Validation("item name is too long", "")
	}
	return name, nil
}

func toAPIItem(item *models.BillItem, claimantCount int) *api.Item {
	return &api.Item{
		ID:            item.ID,
		Name:          item.Name,
		Price:         money(item.Price),
		Position:      item.Position,
		ClaimantCount: claimantCount,
	}
}

// toAPIBill is the creator's view. The share token may change while the
// bill is editing, when ingest gives it a venue slug.
func toAPIBill(snap *snapshot) *api.Bill {
	b := snap.bill
	claimants := snap.claimants()
	items := make([]*api.Item, len(snap.items))
	for i := range snap.items {
		items[i] = toAPIItem(&snap.items[i], len(claimants[snap.items[i].ID]))
	}
	return &api.Bill{
		ID:         b.ID,
		Status:     string(b.Status),
		Venue:      b.Venue,
		Items:      items,
		Subtotal:   money(snap.subtotal()),
		Tax:        nullMoney(b.Tax),
		Tip:        nullMoney(b.Tip),
		HasImage:   b.ImageKey != "",
		ShareToken: b.ShareToken,
		CreatedAt:  b.CreatedAt,
	}
}

func toAPIParticipant(p *models.Participant) *api.Participant {
	return &api.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		IsCreator: p.IsCreator,
	}
}

func toAPIClaims(snap *snapshot, p *models.Participant) *api.Claims {
	claimed := snap.claimedItems(p.ID)
	ids := make([]string, len(claimed))
	for i, item := range claimed {
		ids[i] = item.ID
	}
	total := calculator.ProvisionalTotal(snap.calcItems(), snap.calcClaims(), p.ID)
	return &api.Claims{
		BillID:           snap.bill.ID,
		BillStatus:       string(snap.bill.Status),
		ParticipantID:    p.ID,
		Name:             p.Name,
		Status:           string(p.Status),
		IsCreator:        p.IsCreator,
		Phone:            p.Phone,
		PhoneVerified:    p.PhoneVerified,
		ItemIDs:          ids,
		ProvisionalTotal: money(total),
	}
}

func toAPIReconciliation(r calculator.Reconciliation) *api.Reconciliation {
	return &api.Reconciliation{
		Subtotal:   money(r.Subtotal),
		Claimed:    money(r.Claimed),
		Difference: money(r.Difference),
		Warning:    r.Warning,
	}
}

func toAPIPayment(h models.PaymentHandles) *api.PaymentHandles {
	return &api.PaymentHandles{Venmo: h.Venmo, Zelle: h.Zelle, CashApp: h.CashApp}
}

// fromAPIPayment trims the handles and requires at least one.
func fromAPIPayment(h *api.PaymentHandles) (models.PaymentHandles, error) {
	if h == nil {
		h = &api.PaymentHandles{}
	}
	out := models.PaymentHandles{
		Venmo:   strings.TrimSpace(h.Venmo),
		Zelle:   strings.TrimSpace(h.Zelle),
		CashApp: strings.TrimSpace(h.CashApp),
	}
	if !out.Any() {
		return out, apperr.Validation("at least one payment handle is required", "venmo, zelle or cashapp")
	}
	if len(out.Venmo) > maxHandleLen || len(out.Zelle) > maxHandleLen || len(out.CashApp) > maxHandleLen {
		return out, apperr.Validation("payment handle is too long", "")
	}
	return out, nil
}

func toAPIFinalResults(snap *snapshot, splits []calculator.FinalSplit, r calculator.Reconciliation) *api.FinalResults {
	out := &api.FinalResults{
		BillID:         snap.bill.ID,
		Venue:          snap.bill.Venue,
		Subtotal:       money(snap.subtotal()),
		Tax:            money(orZero(snap.bill.Tax)),
		Tip:            money(orZero(snap.bill.Tip)),
		Payment:        toAPIPayment(snap.bill.Payment),
		Splits:         make([]*api.FinalSplit, len(splits)),
		Reconciliation: toAPIReconciliation(r),
	}
	for i, split := range splits {
		out.Splits[i] = &api.FinalSplit{
			ParticipantID: split.ParticipantID,
			Name:          split.Name,
			ItemsTotal:    money(split.ItemsTotal),
			TaxShare:      money(split.TaxShare),
			TipShare:      money(split.TipShare),
			FinalTotal:    money(split.FinalTotal),
		}
	}
	return out
}
