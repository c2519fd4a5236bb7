package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	in := scenarioA()

	t.Run("fully claimed bill balances", func(t *testing.T) {
		totals := DoneItemsTotals(in.Items, in.Claims, in.Participants)
		r := Reconcile(d("16.00"), totals)
		assertDecimal(t, "0", r.Difference)
		assert.False(t, r.Warning)
	})

	t.Run("unclaimed item raises a warning", func(t *testing.T) {
		claims := in.Claims[:3] // Bob's soda is unclaimed
		totals := DoneItemsTotals(in.Items, claims, in.Participants)
		r := Reconcile(d("16.00"), totals)
		assertDecimal(t, "2", r.Difference)
		assert.True(t, r.Warning)
	})

	t.Run("thirds stay within tolerance", func(t *testing.T) {
		items := []Item{{ID: "x", Price: d("10")}}
		participants := []Participant{{ID: "a", Done: true}, {ID: "b", Done: true}, {ID: "c", Done: true}}
		claims := []Claim{{ItemID: "x", ParticipantID: "a"}, {ItemID: "x", ParticipantID: "b"}, {ItemID: "x", ParticipantID: "c"}}
		r := Reconcile(d("10"), DoneItemsTotals(items, claims, participants))
		assert.False(t, r.Warning)
	})

	t.Run("subtotal below item prices is negative", func(t *testing.T) {
		totals := DoneItemsTotals(in.Items, in.Claims, in.Participants)
		r := Reconcile(d("15.00"), totals)
		assertDecimal(t, "-1", r.Difference)
		assert.True(t, r.Warning)
	})
}
