package service

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/lifecycle"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/internal/verify"
	"github.com/mmynk/tabsplit/pkg/api"
)

// GetSharedBill is what the share link shows: items with who claimed
// them, and the roster. It is not available while the bill is editing.
func (s *BillService) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	ref, err := resource(ctx, models.TokenShare)
	if err != nil {
		return nil, s.fail(ctx, "GetSharedBill", err)
	}
	snap, err := loadSnapshot(ctx, s.store, ref.BillID)
	if err != nil {
		return nil, s.fail(ctx, "GetSharedBill", err)
	}
	if err := lifecycle.Check(lifecycle.OpViewShared, snap.bill.Status); err != nil {
		return nil, s.fail(ctx, "GetSharedBill", err)
	}

	claimants := snap.claimants()
	items := make([]*api.Item, len(snap.items))
	for i := range snap.items {
		who := claimants[snap.items[i].ID]
		item := toAPIItem(&snap.items[i], len(who))
		for _, id := range who {
			if p, ok := snap.participant(id); ok && p.Name != "" {
				item.ClaimedBy = append(item.ClaimedBy, p.Name)
			}
		}
		items[i] = item
	}
	roster := make([]*api.Participant, len(snap.participants))
	for i := range snap.participants {
		roster[i] = toAPIParticipant(&snap.participants[i])
	}

	return connect.NewResponse(&api.GetSharedBillResponse{
		BillID:       snap.bill.ID,
		Status:       string(snap.bill.Status),
		Venue:        snap.bill.Venue,
		Items:        items,
		Subtotal:     money(snap.subtotal()),
		Tax:          nullMoney(snap.bill.Tax),
		Tip:          nullMoney(snap.bill.Tip),
		Participants: roster,
	}), nil
}

// JoinBill adds a participant to an active bill and returns their token.
func (s *BillService) JoinBill(ctx context.Context, req *connect.Request[api.JoinBillRequest]) (*connect.Response[api.JoinBillResponse], error) {
	ref, err := resource(ctx, models.TokenShare)
	if err != nil {
		return nil, s.fail(ctx, "JoinBill", err)
	}
	if err := s.rateLimit(ctx, "join:"+ref.BillID, s.limits.Join); err != nil {
		return nil, s.fail(ctx, "JoinBill", err)
	}
	token, err := s.tokens.Mint()
	if err != nil {
		return nil, s.fail(ctx, "JoinBill", err)
	}

	p := &models.Participant{BillID: ref.BillID, Token: token, Status: models.ParticipantSelecting}
	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, err := tx.LockBill(ctx, ref.BillID, storage.LockShared)
		if err != nil {
			return err
		}
		if err := lifecycle.Check(lifecycle.OpJoin, bill.Status); err != nil {
			return err
		}
		return tx.InsertParticipant(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "JoinBill", err)
	}

	s.logger.InfoContext(ctx, "Participant joined", "bill_id", ref.BillID, "participant_id", p.ID)
	return connect.NewResponse(&api.JoinBillResponse{
		BillID:           ref.BillID,
		ParticipantID:    p.ID,
		ParticipantToken: p.Token,
	}), nil
}

// GetClaims returns the caller's claimed items and provisional total.
func (s *BillService) GetClaims(ctx context.Context, req *connect.Request[api.GetClaimsRequest]) (*connect.Response[api.GetClaimsResponse], error) {
	claims, err := s.claimsOf(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetClaims", err)
	}
	return connect.NewResponse(&api.GetClaimsResponse{Claims: claims}), nil
}

// SetClaims replaces the caller's whole claim set. Sending the same set
// twice leaves the ledger unchanged.
func (s *BillService) SetClaims(ctx context.Context, req *connect.Request[api.SetClaimsRequest]) (*connect.Response[api.SetClaimsResponse], error) {
	ref, err := resource(ctx, models.TokenParticipant)
	if err != nil {
		return nil, s.fail(ctx, "SetClaims", err)
	}

	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, p, err := lockParticipant(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := lifecycle.CheckParticipant(lifecycle.OpSetClaims, bill, p); err != nil {
			return err
		}
		items, err := tx.ListItems(ctx, ref.BillID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(items))
		for _, item := range items {
			known[item.ID] = true
		}
		for _, id := range req.Msg.ItemIDs {
			if !known[id] {
				return &apperr.Error{Kind: apperr.KindNotFound, Message: "item not found", Detail: id}
			}
		}
		return tx.ReplaceClaims(ctx, ref.BillID, p.ID, req.Msg.ItemIDs)
	})
	if err != nil {
		return nil, s.fail(ctx, "SetClaims", err)
	}

	claims, err := s.claimsOf(ctx)
	if err != nil {
		return nil, s.fail(ctx, "SetClaims", err)
	}
	return connect.NewResponse(&api.SetClaimsResponse{Claims: claims}), nil
}

// SubmitClaims locks in the caller's claims. A name is required; a phone
// is optional and, when given, starts verification. Verification and
// messaging failures do not undo the submission.
func (s *BillService) SubmitClaims(ctx context.Context, req *connect.Request[api.SubmitClaimsRequest]) (*connect.Response[api.SubmitClaimsResponse], error) {
	ref, err := resource(ctx, models.TokenParticipant)
	if err != nil {
		return nil, s.fail(ctx, "SubmitClaims", err)
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, s.fail(ctx, "SubmitClaims", apperr.Validation("name is required", ""))
	}
	if len(name) > maxPersonNameLen {
		return nil, s.fail(ctx, "SubmitClaims", apperr.Validation("name is too long", ""))
	}
	var phone string
	if strings.TrimSpace(req.Msg.Phone) != "" {
		if phone, err = verify.NormalizePhone(req.Msg.Phone); err != nil {
			return nil, s.fail(ctx, "SubmitClaims", apperr.Validation("invalid phone number", err.Error()))
		}
	}

	var submitted *models.Participant
	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, p, err := lockParticipant(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := lifecycle.CheckParticipant(lifecycle.OpSubmit, bill, p); err != nil {
			return err
		}
		claims, err := tx.ListClaims(ctx, ref.BillID)
		if err != nil {
			return err
		}
		if !hasClaim(claims, p.ID) {
			return apperr.Validation("select at least one item before submitting", "")
		}

		p.Name = name
		if phone != "" && phone != p.Phone {
			p.Phone = phone
			p.PhoneVerified = false
		}
		p.Status = models.ParticipantDone
		if err := tx.UpdateParticipant(ctx, p); err != nil {
			return err
		}
		submitted = p
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "SubmitClaims", err)
	}
	s.logger.InfoContext(ctx, "Claims submitted", "bill_id", ref.BillID, "participant_id", ref.ParticipantID)

	resp := &api.SubmitClaimsResponse{}
	switch {
	case submitted.Phone != "" && !submitted.PhoneVerified:
		challenge, err := s.startVerification(ctx, ref, submitted.Phone)
		if err != nil {
			s.logger.WarnContext(ctx, "Could not start phone verification after submit",
				"participant_id", ref.ParticipantID, "error", err)
		} else {
			resp.VerificationStarted = true
			resp.Challenge = challenge
		}
	case submitted.PhoneVerified:
		s.notifyConfirmation(ctx, ref)
	}

	if resp.Claims, err = s.claimsOf(ctx); err != nil {
		return nil, s.fail(ctx, "SubmitClaims", err)
	}
	return connect.NewResponse(resp), nil
}

// StartPhoneVerification records the caller's phone as unverified and
// asks the verifier to send a code.
func (s *BillService) StartPhoneVerification(ctx context.Context, req *connect.Request[api.StartPhoneVerificationRequest]) (*connect.Response[api.StartPhoneVerificationResponse], error) {
	ref, err := resource(ctx, models.TokenParticipant)
	if err != nil {
		return nil, s.fail(ctx, "StartPhoneVerification", err)
	}
	phone, err := verify.NormalizePhone(req.Msg.Phone)
	if err != nil {
		return nil, s.fail(ctx, "StartPhoneVerification", apperr.Validation("invalid phone number", err.Error()))
	}

	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, p, err := lockParticipant(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := lifecycle.CheckParticipant(lifecycle.OpStartVerify, bill, p); err != nil {
			return err
		}
		p.Phone = phone
		p.PhoneVerified = false
		return tx.UpdateParticipant(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "StartPhoneVerification", err)
	}

	challenge, err := s.startVerification(ctx, ref, phone)
	if err != nil {
		return nil, s.fail(ctx, "StartPhoneVerification", err)
	}
	return connect.NewResponse(&api.StartPhoneVerificationResponse{Challenge: challenge}), nil
}

func (s *BillService) startVerification(ctx context.Context, ref *models.ResourceRef, phone string) (string, error) {
	if s.verifier == nil {
		return "", apperr.Upstream("phone verification", errors.New("no verification provider configured"))
	}
	if err := s.rateLimit(ctx, "verify:"+ref.ParticipantID, s.limits.Verify); err != nil {
		return "", err
	}
	challenge, err := s.verifier.Start(ctx, phone)
	if err != nil {
		return "", apperr.Upstream("phone verification", err)
	}
	s.logger.InfoContext(ctx, "Phone verification started", "participant_id", ref.ParticipantID, "phone", verify.MaskPhone(phone))
	return challenge, nil
}

// CheckPhoneVerification checks the code sent to the caller's phone. A
// wrong code is not an error; it leaves the phone unverified. Once
// verified, a participant who has already submitted gets a confirmation,
// or their final amount if the bill is complete.
func (s *BillService) CheckPhoneVerification(ctx context.Context, req *connect.Request[api.CheckPhoneVerificationRequest]) (*connect.Response[api.CheckPhoneVerificationResponse], error) {
	ref, err := resource(ctx, models.TokenParticipant)
	if err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}
	code := strings.TrimSpace(req.Msg.Code)
	if code == "" {
		return nil, s.fail(ctx, "CheckPhoneVerification", apperr.Validation("verification code is required", ""))
	}

	bill, err := s.store.GetBill(ctx, ref.BillID)
	if err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}
	p, err := s.store.GetParticipant(ctx, ref.BillID, ref.ParticipantID)
	if err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}
	if err := lifecycle.CheckParticipant(lifecycle.OpCheckVerify, bill, p); err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}
	if p.Phone == "" {
		return nil, s.fail(ctx, "CheckPhoneVerification", apperr.StateConflict("no phone verification in progress", ""))
	}
	if p.PhoneVerified {
		return connect.NewResponse(&api.CheckPhoneVerificationResponse{Verified: true}), nil
	}
	if s.verifier == nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", apperr.Upstream("phone verification", errors.New("no verification provider configured")))
	}

	if err := s.rateLimit(ctx, "verify-check:"+ref.ParticipantID, s.limits.Check); err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}

	phone := p.Phone
	ok, err := s.verifier.Check(ctx, phone, req.Msg.Challenge, code)
	if err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", apperr.Upstream("phone verification", err))
	}
	if !ok {
		return connect.NewResponse(&api.CheckPhoneVerificationResponse{Verified: false}), nil
	}

	var verified *models.Participant
	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, p, err := lockParticipant(ctx, tx, ref)
		if err != nil {
			return err
		}
		if err := lifecycle.CheckParticipant(lifecycle.OpCheckVerify, bill, p); err != nil {
			return err
		}
		// The phone may have changed while the code was being checked.
		if p.Phone != phone {
			return nil
		}
		p.PhoneVerified = true
		if err := tx.UpdateParticipant(ctx, p); err != nil {
			return err
		}
		verified = p
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "CheckPhoneVerification", err)
	}
	if verified == nil {
		return connect.NewResponse(&api.CheckPhoneVerificationResponse{Verified: false}), nil
	}

	s.logger.InfoContext(ctx, "Phone verified", "participant_id", ref.ParticipantID)
	if verified.Done() {
		s.notifyConfirmation(ctx, ref)
	}
	return connect.NewResponse(&api.CheckPhoneVerificationResponse{Verified: true}), nil
}

// GetFinalResults returns the locked-in split of a completed bill.
func (s *BillService) GetFinalResults(ctx context.Context, req *connect.Request[api.GetFinalResultsRequest]) (*connect.Response[api.GetFinalResultsResponse], error) {
	ref, err := resource(ctx, "")
	if err != nil || ref.Kind == models.TokenParticipant {
		return nil, s.fail(ctx, "GetFinalResults", apperr.NotFound("bill"))
	}
	snap, err := loadSnapshot(ctx, s.store, ref.BillID)
	if err != nil {
		return nil, s.fail(ctx, "GetFinalResults", err)
	}
	if err := lifecycle.Check(lifecycle.OpReadFinal, snap.bill.Status); err != nil {
		return nil, s.fail(ctx, "GetFinalResults", err)
	}
	splits, recon, err := snap.final()
	if err != nil {
		return nil, s.fail(ctx, "GetFinalResults", err)
	}
	return connect.NewResponse(&api.GetFinalResultsResponse{Results: toAPIFinalResults(snap, splits, recon)}), nil
}

// notifyConfirmation texts a done, verified participant. On a complete
// bill it sends the final amount instead.
func (s *BillService) notifyConfirmation(ctx context.Context, ref *models.ResourceRef) {
	snap, err := loadSnapshot(ctx, s.store, ref.BillID)
	if err != nil {
		s.logger.WarnContext(ctx, "Could not load bill for confirmation message", "bill_id", ref.BillID, "error", err)
		return
	}
	p, ok := snap.participant(ref.ParticipantID)
	if !ok || !p.Done() || !p.PhoneVerified {
		return
	}

	if snap.bill.Status == models.BillComplete {
		splits, _, err := snap.final()
		if err != nil {
			return
		}
		for _, split := range splits {
			if split.ParticipantID == p.ID {
				s.notifier.Send("final", p.Phone, notify.FinalMessage(p.Name, snap.bill.Venue, calculator.RoundCents(split.FinalTotal), snap.bill.Payment))
			}
		}
		return
	}
	total := calculator.ProvisionalTotal(snap.calcItems(), snap.calcClaims(), p.ID)
	s.notifier.Send("confirmation", p.Phone, notify.ConfirmationMessage(p.Name, snap.bill.Venue, calculator.RoundCents(total)))
}

// claimsOf reads the calling participant's claim state.
func (s *BillService) claimsOf(ctx context.Context) (*api.Claims, error) {
	ref, err := resource(ctx, models.TokenParticipant)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, s.store, ref.BillID)
	if err != nil {
		return nil, err
	}
	p, ok := snap.participant(ref.ParticipantID)
	if !ok {
		return nil, apperr.NotFound("bill")
	}
	return toAPIClaims(snap, p), nil
}

// lockParticipant locks the bill for sharing, so claims from different
// participants proceed together but wait for creator edits, then locks
// the participant row.
func lockParticipant(ctx context.Context, tx storage.Tx, ref *models.ResourceRef) (*models.Bill, *models.Participant, error) {
	bill, err := tx.LockBill(ctx, ref.BillID, storage.LockShared)
	if err != nil {
		return nil, nil, err
	}
	p, err := tx.LockParticipant(ctx, ref.BillID, ref.ParticipantID)
	if err != nil {
		return nil, nil, err
	}
	return bill, p, nil
}

func hasClaim(claims []models.ItemClaim, participantID string) bool {
	for _, c := range claims {
		if c.ParticipantID == participantID {
			return true
		}
	}
	return false
}
