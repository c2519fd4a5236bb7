// Package lifecycle owns the bill state machine: which status follows which,
// and in which statuses each operation is legal.
package lifecycle

import (
	"fmt"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
)

// Operation names a state-dependent operation on a bill.
type Operation string

const (
	OpIngestItems  Operation = "ingest items"
	OpAddItem      Operation = "add item"
	OpUpdateItem   Operation = "update item"
	OpDeleteItem   Operation = "delete item"
	OpUpdateTotals Operation = "update totals"
	OpConfirm      Operation = "confirm"
	OpViewShared   Operation = "view shared bill"
	OpJoin         Operation = "join"
	OpSetClaims    Operation = "update claims"
	OpSubmit       Operation = "submit"
	OpStartVerify  Operation = "start phone verification"
	OpCheckVerify  Operation = "check phone verification"
	OpComplete     Operation = "complete"
	OpReadFinal    Operation = "read final results"
)

var legalIn = map[Operation][]models.BillStatus{
	OpIngestItems:  {models.BillEditing},
	OpAddItem:      {models.BillEditing},
	OpUpdateItem:   {models.BillEditing},
	OpDeleteItem:   {models.BillEditing, models.BillActive},
	OpUpdateTotals: {models.BillEditing},
	OpConfirm:      {models.BillEditing},
	OpViewShared:   {models.BillActive, models.BillComplete},
	OpJoin:         {models.BillActive},
	OpSetClaims:    {models.BillActive},
	OpSubmit:       {models.BillActive},
	OpStartVerify:  {models.BillActive},
	OpCheckVerify:  {models.BillActive, models.BillComplete},
	OpComplete:     {models.BillActive},
	OpReadFinal:    {models.BillComplete},
}

// participantOps must be performed by a participant who is still selecting.
var participantOps = map[Operation]bool{
	OpSetClaims: true,
	OpSubmit:    true,
}

var next = map[models.BillStatus]models.BillStatus{
	models.BillEditing: models.BillActive,
	models.BillActive:  models.BillComplete,
}

// Allowed reports whether op is legal for a bill in status.
func Allowed(op Operation, status models.BillStatus) bool {
	for _, s := range legalIn[op] {
		if s == status {
			return true
		}
	}
	return false
}

// Check returns a StateConflict error when op is illegal for status.
func Check(op Operation, status models.BillStatus) error {
	if Allowed(op, status) {
		return nil
	}
	return apperr.StateConflict(
		fmt.Sprintf("cannot %s while bill is %s", op, status),
		fmt.Sprintf("allowed when bill is %v", legalIn[op]),
	)
}

// CheckParticipant checks op against both the bill status and, for claim
// mutation and submission, the participant status.
func CheckParticipant(op Operation, bill *models.Bill, p *models.Participant) error {
	if err := Check(op, bill.Status); err != nil {
		return err
	}
	if participantOps[op] && p.Status != models.ParticipantSelecting {
		return apperr.StateConflict(
			fmt.Sprintf("cannot %s after submitting", op),
			fmt.Sprintf("participant status: %s", p.Status),
		)
	}
	return nil
}

// Next returns the status that follows from. Complete is terminal.
func Next(from models.BillStatus) (models.BillStatus, error) {
	to, ok := next[from]
	if !ok {
		return "", apperr.StateConflict(fmt.Sprintf("bill is %s", from), "no further transitions")
	}
	return to, nil
}

// Advance moves bill to to, enforcing the strictly forward, one step at a
// time ordering editing → active → complete.
func Advance(bill *models.Bill, to models.BillStatus) error {
	want, err := Next(bill.Status)
	if err != nil {
		return err
	}
	if to != want {
		return apperr.StateConflict(
			fmt.Sprintf("cannot move bill from %s to %s", bill.Status, to),
			fmt.Sprintf("next status is %s", want),
		)
	}
	bill.Status = to
	return nil
}
