package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// snapshot is a bill with everything hanging off it. Totals are always
// recomputed from it, never stored.
type snapshot struct {
	bill         *models.Bill
	items        []models.BillItem
	participants []models.Participant
	claims       []models.ItemClaim
}

func loadSnapshot(ctx context.Context, r storage.Reader, billID string) (*snapshot, error) {
	bill, err := r.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return loadRest(ctx, r, bill)
}

func loadRest(ctx context.Context, r storage.Reader, bill *models.Bill) (*snapshot, error) {
	items, err := r.ListItems(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	participants, err := r.ListParticipants(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	claims, err := r.ListClaims(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return &snapshot{bill: bill, items: items, participants: participants, claims: claims}, nil
}

// subtotal is the bill subtotal, defaulting to the sum of item prices.
func (s *snapshot) subtotal() decimal.Decimal {
	if s.bill.Subtotal.Valid {
		return s.bill.Subtotal.Decimal
	}
	return models.SumPrices(s.items)
}

func (s *snapshot) item(id string) (*models.BillItem, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], true
		}
	}
	return nil, false
}

func (s *snapshot) participant(id string) (*models.Participant, bool) {
	for i := range s.participants {
		if s.participants[i].ID == id {
			return &s.participants[i], true
		}
	}
	return nil, false
}

// claimants returns each item's claimant IDs in participant join order.
func (s *snapshot) claimants() map[string][]string {
	byParticipant := make(map[string]map[string]bool, len(s.participants))
	for _, c := range s.claims {
		if byParticipant[c.ParticipantID] == nil {
			byParticipant[c.ParticipantID] = make(map[string]bool)
		}
		byParticipant[c.ParticipantID][c.ItemID] = true
	}
	out := make(map[string][]string)
	for _, p := range s.participants {
		for _, item := range s.items {
			if byParticipant[p.ID][item.ID] {
				out[item.ID] = append(out[item.ID], p.ID)
			}
		}
	}
	return out
}

// claimedItems returns the participant's claimed items in display order.
func (s *snapshot) claimedItems(participantID string) []models.BillItem {
	claimed := make(map[string]bool)
	for _, c := range s.claims {
		if c.ParticipantID == participantID {
			claimed[c.ItemID] = true
		}
	}
	var out []models.BillItem
	for _, item := range s.items {
		if claimed[item.ID] {
			out = append(out, item)
		}
	}
	return out
}

func (s *snapshot) calcItems() []calculator.Item {
	out := make([]calculator.Item, len(s.items))
	for i, item := range s.items {
		out[i] = calculator.Item{ID: item.ID, Name: item.Name, Price: item.Price}
	}
	return out
}

func (s *snapshot) calcClaims() []calculator.Claim {
	out := make([]calculator.Claim, len(s.claims))
	for i, c := range s.claims {
		out[i] = calculator.Claim{ItemID: c.ItemID, ParticipantID: c.ParticipantID}
	}
	return out
}

func (s *snapshot) calcParticipants() []calculator.Participant {
	out := make([]calculator.Participant, len(s.participants))
	for i, p := range s.participants {
		out[i] = calculator.Participant{ID: p.ID, Name: p.DisplayName(""), Done: p.Done()}
	}
	return out
}

// doneCount returns the number of done participants and whether any of
// them is not the creator.
func (s *snapshot) doneCount() (n int, guestDone bool) {
	for _, p := range s.participants {
		if p.Done() {
			n++
			if !p.IsCreator {
				guestDone = true
			}
		}
	}
	return n, guestDone
}

// final computes the final splits and reconciliation.
func (s *snapshot) final() ([]calculator.FinalSplit, calculator.Reconciliation, error) {
	in := calculator.FinalInput{
		Items:        s.calcItems(),
		Claims:       s.calcClaims(),
		Participants: s.calcParticipants(),
		Tax:          orZero(s.bill.Tax),
		Tip:          orZero(s.bill.Tip),
	}
	splits, err := calculator.CalculateFinal(in)
	if err != nil {
		return nil, calculator.Reconciliation{}, err
	}
	totals := calculator.DoneItemsTotals(in.Items, in.Claims, in.Participants)
	return splits, calculator.Reconcile(s.subtotal(), totals), nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}
