package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		op      Operation
		allowed []models.BillStatus
	}{
		{OpIngestItems, []models.BillStatus{models.BillEditing}},
		{OpAddItem, []models.BillStatus{models.BillEditing}},
		{OpUpdateItem, []models.BillStatus{models.BillEditing}},
		{OpDeleteItem, []models.BillStatus{models.BillEditing, models.BillActive}},
		{OpUpdateTotals, []models.BillStatus{models.BillEditing}},
		{OpConfirm, []models.BillStatus{models.BillEditing}},
		{OpViewShared, []models.BillStatus{models.BillActive, models.BillComplete}},
		{OpJoin, []models.BillStatus{models.BillActive}},
		{OpSetClaims, []models.BillStatus{models.BillActive}},
		{OpSubmit, []models.BillStatus{models.BillActive}},
		{OpStartVerify, []models.BillStatus{models.BillActive}},
		{OpCheckVerify, []models.BillStatus{models.BillActive, models.BillComplete}},
		{OpComplete, []models.BillStatus{models.BillActive}},
		{OpReadFinal, []models.BillStatus{models.BillComplete}},
	}

	all := []models.BillStatus{models.BillEditing, models.BillActive, models.BillComplete}
	for _, tt := range tests {
		for _, status := range all {
			want := false
			for _, s := range tt.allowed {
				if s == status {
					want = true
				}
			}
			t.Run(string(tt.op)+"/"+string(status), func(t *testing.T) {
				err := Check(tt.op, status)
				if want {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
			})
		}
	}
}

func TestCheckParticipant(t *testing.T) {
	active := &models.Bill{Status: models.BillActive}
	selecting := &models.Participant{Status: models.ParticipantSelecting}
	done := &models.Participant{Status: models.ParticipantDone}

	assert.NoError(t, CheckParticipant(OpSetClaims, active, selecting))
	assert.NoError(t, CheckParticipant(OpSubmit, active, selecting))

	err := CheckParticipant(OpSetClaims, active, done)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))
	err = CheckParticipant(OpSubmit, active, done)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))

	// Verification is not tied to the selecting state.
	assert.NoError(t, CheckParticipant(OpStartVerify, active, done))

	complete := &models.Bill{Status: models.BillComplete}
	err = CheckParticipant(OpSetClaims, complete, selecting)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))
}

func TestAdvanceIsStrictlyForward(t *testing.T) {
	bill := &models.Bill{Status: models.BillEditing}

	err := Advance(bill, models.BillComplete)
	require.Error(t, err, "skipping active must fail")
	assert.Equal(t, models.BillEditing, bill.Status)

	require.NoError(t, Advance(bill, models.BillActive))
	assert.Equal(t, models.BillActive, bill.Status)

	err = Advance(bill, models.BillEditing)
	require.Error(t, err, "reverse transition must fail")
	assert.Equal(t, models.BillActive, bill.Status)

	require.NoError(t, Advance(bill, models.BillComplete))
	assert.Equal(t, models.BillComplete, bill.Status)

	err = Advance(bill, models.BillComplete)
	assert.True(t, apperr.Is(err, apperr.KindStateConflict))
	_, err = Next(models.BillComplete)
	assert.Error(t, err)
}
