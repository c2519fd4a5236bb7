package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a priced line item.
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Claim links a participant to an item.
type Claim struct {
	ItemID        string
	ParticipantID string
}

// Participant is the part of a participant the calculator needs.
type Participant struct {
	ID   string
	Name string
	Done bool
}

// FinalSplit is one participant's locked-in share of a completed bill.
// Amounts are unrounded; use RoundCents for display.
type FinalSplit struct {
	ParticipantID string
	Name          string
	ItemsTotal    decimal.Decimal
	TaxShare      decimal.Decimal
	TipShare      decimal.Decimal
	FinalTotal    decimal.Decimal
}

// FinalInput holds everything needed to compute final splits.
type FinalInput struct {
	Items        []Item
	Claims       []Claim
	Participants []Participant
	Tax          decimal.Decimal
	Tip          decimal.Decimal
}

// ProvisionalTotals returns each claiming participant's running share:
// the sum over their claimed items of price / claimant count, where every
// current claimant counts. Items nobody claims contribute nothing.
func ProvisionalTotals(items []Item, claims []Claim) map[string]decimal.Decimal {
	return itemsTotals(items, claims, func(string) bool { return true })
}

// ProvisionalTotal returns one participant's running share.
func ProvisionalTotal(items []Item, claims []Claim, participantID string) decimal.Decimal {
	total, ok := ProvisionalTotals(items, claims)[participantID]
	if !ok {
		return decimal.Zero
	}
	return total
}

// DoneItemsTotals returns items totals using the final rule: only
// participants who are done are claimants, both for shares and divisors.
func DoneItemsTotals(items []Item, claims []Claim, participants []Participant) map[string]decimal.Decimal {
	done := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.Done {
			done[p.ID] = true
		}
	}
	totals := itemsTotals(items, claims, func(id string) bool { return done[id] })
	for id := range done {
		if _, ok := totals[id]; !ok {
			totals[id] = decimal.Zero
		}
	}
	return totals
}

// CalculateFinal computes each done participant's final total. Tax and tip are
// split equally among the N done participants; participants who never
// submitted are excluded and pay nothing.
//
// Algorithm:
//
//	items_total = Σ price / claimant_count (done claimants only)
//	tax_share   = tax / N
//	tip_share   = tip / N
//	final_total = items_total + tax_share + tip_share
func CalculateFinal(in FinalInput) ([]FinalSplit, error) {
	totals := DoneItemsTotals(in.Items, in.Claims, in.Participants)
	n := len(totals)
	if n == 0 {
		return nil, fmt.Errorf("must have at least one submitted participant")
	}

	count := decimal.NewFromInt(int64(n))
	taxShare := in.Tax.Div(count)
	tipShare := in.Tip.Div(count)

	splits := make([]FinalSplit, 0, n)
	for _, p := range in.Participants {
		itemsTotal, ok := totals[p.ID]
		if !ok {
			continue
		}
		splits = append(splits, FinalSplit{
			ParticipantID: p.ID,
			Name:          p.Name,
			ItemsTotal:    itemsTotal,
			TaxShare:      taxShare,
			TipShare:      tipShare,
			FinalTotal:    itemsTotal.Add(taxShare).Add(tipShare),
		})
	}

	sort.SliceStable(splits, func(i, j int) bool {
		a, b := strings.ToLower(splits[i].Name), strings.ToLower(splits[j].Name)
		if a != b {
			return a < b
		}
		return splits[i].ParticipantID < splits[j].ParticipantID
	})
	return splits, nil
}

// RoundCents rounds d to two decimal places, halves away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// itemsTotals divides each item's price among its distinct counted claimants
// and sums the shares per participant.
func itemsTotals(items []Item, claims []Claim, counted func(participantID string) bool) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		prices[item.ID] = item.Price
	}

	claimants := make(map[string][]string)
	seen := make(map[Claim]bool, len(claims))
	for _, c := range claims {
		if seen[c] || !counted(c.ParticipantID) {
			continue
		}
		if _, ok := prices[c.ItemID]; !ok {
			continue
		}
		seen[c] = true
		claimants[c.ItemID] = append(claimants[c.ItemID], c.ParticipantID)
	}

	totals := make(map[string]decimal.Decimal)
	for itemID, who := range claimants {
		share := prices[itemID].Div(decimal.NewFromInt(int64(len(who))))
		for _, participantID := range who {
			totals[participantID] = totals[participantID].Add(share)
		}
	}
	return totals
}
