package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/imagestore"
	"github.com/mmynk/tabsplit/internal/lifecycle"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
)

// CreateBill starts a new bill, optionally with a receipt image.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	bill := &models.Bill{ID: uuid.New().String(), Status: models.BillEditing}

	if len(req.Msg.Image) > 0 {
		if len(req.Msg.Image) > s.maxUploadBytes {
			return nil, s.fail(ctx, "CreateBill", apperr.Validation("image is too large", fmt.Sprintf("limit is %d bytes", s.maxUploadBytes)))
		}
		contentType, err := imagestore.DetectImage(req.Msg.Image)
		if err != nil {
			return nil, s.fail(ctx, "CreateBill", apperr.Validation("file must be an image", err.Error()))
		}
		if s.images == nil {
			return nil, s.fail(ctx, "CreateBill", apperr.Validation("image uploads are not enabled", ""))
		}
		bill.ImageKey = imagestore.KeyFor(bill.ID, contentType)
		bill.ImageContentType = contentType
	}

	var err error
	if bill.CreatorToken, err = s.tokens.Mint(); err != nil {
		return nil, s.fail(ctx, "CreateBill", err)
	}
	if bill.ShareToken, err = s.tokens.MintShare(""); err != nil {
		return nil, s.fail(ctx, "CreateBill", err)
	}

	if bill.ImageKey != "" {
		if err := s.images.Save(ctx, bill.ImageKey, req.Msg.Image, bill.ImageContentType); err != nil {
			return nil, s.fail(ctx, "CreateBill", apperr.Upstream("image storage", err))
		}
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		if bill.ImageKey != "" {
			if delErr := s.images.Delete(ctx, bill.ImageKey); delErr != nil {
				s.logger.WarnContext(ctx, "Failed to clean up orphaned image", "bill_id", bill.ID, "error", delErr)
			}
		}
		return nil, s.fail(ctx, "CreateBill", err)
	}

	s.logger.InfoContext(ctx, "Bill created", "bill_id", bill.ID, "has_image", bill.ImageKey != "")
	return connect.NewResponse(&api.CreateBillResponse{
		BillID:       bill.ID,
		CreatorToken: bill.CreatorToken,
		ShareToken:   bill.ShareToken,
		Status:       string(bill.Status),
	}), nil
}

// GetBill returns the creator's view of the bill.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	snap, err := s.creatorSnapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetBill", err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(snap)}), nil
}

// ParseBill runs the stored receipt image through the parsing service and
// ingests the result. A parsing failure leaves the bill editing so items
// can still be entered by hand.
func (s *BillService) ParseBill(ctx context.Context, req *connect.Request[api.ParseBillRequest]) (*connect.Response[api.ParseBillResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "ParseBill", err)
	}
	bill, err := s.store.GetBill(ctx, ref.BillID)
	if err != nil {
		return nil, s.fail(ctx, "ParseBill", err)
	}
	if err := lifecycle.Check(lifecycle.OpIngestItems, bill.Status); err != nil {
		return nil, s.fail(ctx, "ParseBill", err)
	}
	if bill.ImageKey == "" || s.images == nil {
		return nil, s.fail(ctx, "ParseBill", apperr.Validation("bill has no image to parse", ""))
	}

	image, err := s.images.Load(ctx, bill.ImageKey)
	if errors.Is(err, imagestore.ErrNotFound) {
		return nil, s.fail(ctx, "ParseBill", apperr.Validation("bill has no image to parse", "image missing from storage"))
	}
	if err != nil {
		return nil, s.fail(ctx, "ParseBill", apperr.Upstream("image storage", err))
	}

	receipt, err := s.parser.Parse(ctx, image, bill.ImageContentType)
	if err != nil {
		s.logger.WarnContext(ctx, "Receipt parsing failed", "bill_id", bill.ID, "error", err)
		return nil, s.fail(ctx, "ParseBill", apperr.Upstream("receipt parser", err))
	}

	items := make([]models.BillItem, len(receipt.Items))
	for i, item := range receipt.Items {
		items[i] = models.BillItem{Name: item.Name, Price: item.Price}
	}
	snap, err := s.ingest(ctx, ref.BillID, ingestInput{
		venue:    receipt.Venue,
		items:    items,
		subtotal: receipt.Subtotal,
		tax:      receipt.Tax,
		tip:      receipt.Tip,
	})
	if err != nil {
		return nil, s.fail(ctx, "ParseBill", err)
	}

	s.logger.InfoContext(ctx, "Receipt parsed", "bill_id", ref.BillID, "items", len(items))
	return connect.NewResponse(&api.ParseBillResponse{Bill: toAPIBill(snap)}), nil
}

// IngestItems replaces the bill's items and totals with a client-supplied set.
func (s *BillService) IngestItems(ctx context.Context, req *connect.Request[api.IngestItemsRequest]) (*connect.Response[api.IngestItemsResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "IngestItems", err)
	}

	in := ingestInput{venue: strings.TrimSpace(req.Msg.Venue)}
	for i, item := range req.Msg.Items {
		if item == nil {
			return nil, s.fail(ctx, "IngestItems", apperr.Validation(fmt.Sprintf("item %d is empty", i+1), ""))
		}
		name, err := itemName(item.Name)
		if err != nil {
			return nil, s.fail(ctx, "IngestItems", err)
		}
		price, err := parseMoney("price", item.Price)
		if err != nil {
			return nil, s.fail(ctx, "IngestItems", err)
		}
		in.items = append(in.items, models.BillItem{Name: name, Price: price})
	}
	if in.subtotal, err = parseOptionalMoney("subtotal", req.Msg.Subtotal); err != nil {
		return nil, s.fail(ctx, "IngestItems", err)
	}
	if in.tax, err = parseOptionalMoney("tax", req.Msg.Tax); err != nil {
		return nil, s.fail(ctx, "IngestItems", err)
	}
	if in.tip, err = parseOptionalMoney("tip", req.Msg.Tip); err != nil {
		return nil, s.fail(ctx, "IngestItems", err)
	}

	snap, err := s.ingest(ctx, ref.BillID, in)
	if err != nil {
		return nil, s.fail(ctx, "IngestItems", err)
	}
	return connect.NewResponse(&api.IngestItemsResponse{Bill: toAPIBill(snap)}), nil
}

type ingestInput struct {
	venue              string
	items              []models.BillItem
	subtotal, tax, tip decimal.NullDecimal
}

// ingest replaces the item set in one transaction. The subtotal defaults
// to the sum of prices, and a venue re-mints the share token with its slug.
func (s *BillService) ingest(ctx context.Context, billID string, in ingestInput) (*snapshot, error) {
	var shareToken string
	if in.venue != "" {
		var err error
		if shareToken, err = s.tokens.MintShare(in.venue); err != nil {
			return nil, err
		}
	}

	var snap *snapshot
	err := s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, err := tx.LockBill(ctx, billID, storage.LockExclusive)
		if err != nil {
			return err
		}
		if err := lifecycle.Check(lifecycle.OpIngestItems, bill.Status); err != nil {
			return err
		}

		if err := tx.DeleteItems(ctx, billID); err != nil {
			return err
		}
		for i := range in.items {
			in.items[i].BillID = billID
			in.items[i].Position = i
		}
		if err := tx.InsertItems(ctx, in.items); err != nil {
			return err
		}

		bill.Venue = in.venue
		if shareToken != "" {
			bill.ShareToken = shareToken
		}
		bill.Subtotal = in.subtotal
		if !bill.Subtotal.Valid {
			bill.Subtotal = decimal.NewNullDecimal(models.SumPrices(in.items))
		}
		bill.Tax = in.tax
		bill.Tip = in.tip
		if err := tx.UpdateBill(ctx, bill); err != nil {
			return err
		}

		snap, err = loadRest(ctx, tx, bill)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// AddItem appends a manually entered item and adds its price to the subtotal.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "AddItem", err)
	}
	name, err := itemName(req.Msg.Name)
	if err != nil {
		return nil, s.fail(ctx, "AddItem", err)
	}
	price, err := parseMoney("price", req.Msg.Price)
	if err != nil {
		return nil, s.fail(ctx, "AddItem", err)
	}

	item := models.BillItem{BillID: ref.BillID, Name: name, Price: price}
	snap, err := s.editBill(ctx, ref.BillID, lifecycle.OpAddItem, func(tx storage.Tx, snap *snapshot) error {
		for _, existing := range snap.items {
			if existing.Position >= item.Position {
				item.Position = existing.Position + 1
			}
		}
		subtotal := snap.subtotal()
		items := []models.BillItem{item}
		if err := tx.InsertItems(ctx, items); err != nil {
			return err
		}
		item = items[0]
		snap.bill.Subtotal = decimal.NewNullDecimal(subtotal.Add(price))
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "AddItem", err)
	}

	added, _ := snap.item(item.ID)
	if added == nil {
		added = &item
	}
	return connect.NewResponse(&api.AddItemResponse{
		Item: toAPIItem(added, 0),
		Bill: toAPIBill(snap),
	}), nil
}

// UpdateItem renames or reprices an item, moving the subtotal by the price change.
func (s *BillService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "UpdateItem", err)
	}

	var name string
	if strings.TrimSpace(req.Msg.Name) != "" {
		if name, err = itemName(req.Msg.Name); err != nil {
			return nil, s.fail(ctx, "UpdateItem", err)
		}
	}
	var price decimal.NullDecimal
	if strings.TrimSpace(req.Msg.Price) != "" {
		p, err := parseMoney("price", req.Msg.Price)
		if err != nil {
			return nil, s.fail(ctx, "UpdateItem", err)
		}
		price = decimal.NewNullDecimal(p)
	}

	snap, err := s.editBill(ctx, ref.BillID, lifecycle.OpUpdateItem, func(tx storage.Tx, snap *snapshot) error {
		item, ok := snap.item(req.Msg.ItemID)
		if !ok {
			return apperr.NotFound("item")
		}
		if name != "" {
			item.Name = name
		}
		if price.Valid {
			delta := price.Decimal.Sub(item.Price)
			if snap.bill.Subtotal.Valid {
				snap.bill.Subtotal = decimal.NewNullDecimal(snap.bill.Subtotal.Decimal.Add(delta))
			}
			item.Price = price.Decimal
		}
		return tx.UpdateItem(ctx, item)
	})
	if err != nil {
		return nil, s.fail(ctx, "UpdateItem", err)
	}
	return connect.NewResponse(&api.UpdateItemResponse{Bill: toAPIBill(snap)}), nil
}

// DeleteItem removes an item and every claim on it. It is also allowed
// while the bill is active, for creator corrections.
func (s *BillService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "DeleteItem", err)
	}

	snap, err := s.editBill(ctx, ref.BillID, lifecycle.OpDeleteItem, func(tx storage.Tx, snap *snapshot) error {
		item, ok := snap.item(req.Msg.ItemID)
		if !ok {
			return apperr.NotFound("item")
		}
		if err := tx.DeleteItem(ctx, ref.BillID, item.ID); err != nil {
			return err
		}
		if snap.bill.Subtotal.Valid {
			snap.bill.Subtotal = decimal.NewNullDecimal(snap.bill.Subtotal.Decimal.Sub(item.Price))
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "DeleteItem", err)
	}

	s.logger.InfoContext(ctx, "Item deleted", "bill_id", ref.BillID, "item_id", req.Msg.ItemID)
	return connect.NewResponse(&api.DeleteItemResponse{Bill: toAPIBill(snap)}), nil
}

// UpdateTotals sets subtotal, tax and tip by hand.
func (s *BillService) UpdateTotals(ctx context.Context, req *connect.Request[api.UpdateTotalsRequest]) (*connect.Response[api.UpdateTotalsResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "UpdateTotals", err)
	}

	type field struct {
		name string
		in   *string
		out  decimal.NullDecimal
	}
	fields := []*field{
		{name: "subtotal", in: req.Msg.Subtotal},
		{name: "tax", in: req.Msg.Tax},
		{name: "tip", in: req.Msg.Tip},
	}
	for _, f := range fields {
		if f.in == nil {
			continue
		}
		if f.out, err = parseOptionalMoney(f.name, *f.in); err != nil {
			return nil, s.fail(ctx, "UpdateTotals", err)
		}
	}

	snap, err := s.editBill(ctx, ref.BillID, lifecycle.OpUpdateTotals, func(_ storage.Tx, snap *snapshot) error {
		targets := []*decimal.NullDecimal{&snap.bill.Subtotal, &snap.bill.Tax, &snap.bill.Tip}
		for i, f := range fields {
			if f.in != nil {
				*targets[i] = f.out
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "UpdateTotals", err)
	}
	return connect.NewResponse(&api.UpdateTotalsResponse{Bill: toAPIBill(snap)}), nil
}

// editBill runs fn against a locked snapshot of the bill after checking op
// is legal, then writes the bill row and returns the fresh snapshot.
func (s *BillService) editBill(ctx context.Context, billID string, op lifecycle.Operation, fn func(tx storage.Tx, snap *snapshot) error) (*snapshot, error) {
	var out *snapshot
	err := s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, err := tx.LockBill(ctx, billID, storage.LockExclusive)
		if err != nil {
			return err
		}
		if err := lifecycle.Check(op, bill.Status); err != nil {
			return err
		}
		snap, err := loadRest(ctx, tx, bill)
		if err != nil {
			return err
		}
		if err := fn(tx, snap); err != nil {
			return err
		}
		if err := tx.UpdateBill(ctx, snap.bill); err != nil {
			return err
		}
		out, err = loadRest(ctx, tx, snap.bill)
		return err
	})
	return out, err
}

// ConfirmBill locks in the items, opens the share link and makes the
// creator a participant so they can claim like everyone else.
func (s *BillService) ConfirmBill(ctx context.Context, req *connect.Request[api.ConfirmBillRequest]) (*connect.Response[api.ConfirmBillResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "ConfirmBill", err)
	}
	token, err := s.tokens.Mint()
	if err != nil {
		return nil, s.fail(ctx, "ConfirmBill", err)
	}

	creator := &models.Participant{
		BillID:    ref.BillID,
		Token:     token,
		IsCreator: true,
		Status:    models.ParticipantSelecting,
	}
	var snap *snapshot
	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, err := tx.LockBill(ctx, ref.BillID, storage.LockExclusive)
		if err != nil {
			return err
		}
		if err := lifecycle.Check(lifecycle.OpConfirm, bill.Status); err != nil {
			return err
		}
		rest, err := loadRest(ctx, tx, bill)
		if err != nil {
			return err
		}
		if !bill.Subtotal.Valid {
			bill.Subtotal = decimal.NewNullDecimal(rest.subtotal())
		}
		if err := lifecycle.Advance(bill, models.BillActive); err != nil {
			return err
		}
		if err := tx.UpdateBill(ctx, bill); err != nil {
			return err
		}
		if err := tx.InsertParticipant(ctx, creator); err != nil {
			return err
		}
		snap, err = loadRest(ctx, tx, bill)
		return err
	})
	if errors.Is(err, storage.ErrConflict) {
		err = apperr.StateConflict("bill is already confirmed", "")
	}
	if err != nil {
		return nil, s.fail(ctx, "ConfirmBill", err)
	}

	s.logger.InfoContext(ctx, "Bill confirmed", "bill_id", ref.BillID, "items", len(snap.items))
	return connect.NewResponse(&api.ConfirmBillResponse{
		Bill:             toAPIBill(snap),
		ParticipantID:    creator.ID,
		ParticipantToken: creator.Token,
	}), nil
}

// GetDashboard is the creator's polling view: roster, per-participant
// totals and the reconciliation figure. Done participants show what they
// would owe for items if the bill completed now; others show their
// provisional total.
func (s *BillService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	snap, err := s.creatorSnapshot(ctx)
	if err != nil {
		return nil, s.fail(ctx, "GetDashboard", err)
	}

	items, claims, participants := snap.calcItems(), snap.calcClaims(), snap.calcParticipants()
	provisional := calculator.ProvisionalTotals(items, claims)
	final := calculator.DoneItemsTotals(items, claims, participants)

	roster := make([]*api.DashboardParticipant, len(snap.participants))
	for i := range snap.participants {
		p := &snap.participants[i]
		total := provisional[p.ID]
		if p.Done() {
			total = final[p.ID]
		}
		claimed := snap.claimedItems(p.ID)
		names := make([]string, len(claimed))
		for j, item := range claimed {
			names[j] = item.Name
		}
		roster[i] = &api.DashboardParticipant{
			ID:            p.ID,
			Name:          p.Name,
			Status:        string(p.Status),
			IsCreator:     p.IsCreator,
			PhoneVerified: p.PhoneVerified,
			ItemNames:     names,
			ItemsTotal:    money(total),
		}
	}

	done, guestDone := snap.doneCount()
	return connect.NewResponse(&api.GetDashboardResponse{
		Bill:           toAPIBill(snap),
		Participants:   roster,
		Reconciliation: toAPIReconciliation(calculator.Reconcile(snap.subtotal(), final)),
		DoneCount:      done,
		CanComplete:    snap.bill.Status == models.BillActive && guestDone,
	}), nil
}

// CompleteBill records the payment handles, finalizes the split and texts
// every phone-verified participant what they owe.
func (s *BillService) CompleteBill(ctx context.Context, req *connect.Request[api.CompleteBillRequest]) (*connect.Response[api.CompleteBillResponse], error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, s.fail(ctx, "CompleteBill", err)
	}
	handles, err := fromAPIPayment(req.Msg.Payment)
	if err != nil {
		return nil, s.fail(ctx, "CompleteBill", err)
	}

	var snap *snapshot
	err = s.store.RunInTx(ctx, func(tx storage.Tx) error {
		bill, err := tx.LockBill(ctx, ref.BillID, storage.LockExclusive)
		if err != nil {
			return err
		}
		if err := lifecycle.Check(lifecycle.OpComplete, bill.Status); err != nil {
			return err
		}
		snap, err = loadRest(ctx, tx, bill)
		if err != nil {
			return err
		}
		if _, guestDone := snap.doneCount(); !guestDone {
			return apperr.StateConflict("cannot complete before anyone has submitted", "at least one participant besides the creator must be done")
		}
		if err := lifecycle.Advance(bill, models.BillComplete); err != nil {
			return err
		}
		bill.Payment = handles
		return tx.UpdateBill(ctx, bill)
	})
	if err != nil {
		return nil, s.fail(ctx, "CompleteBill", err)
	}

	splits, recon, err := snap.final()
	if err != nil {
		return nil, s.fail(ctx, "CompleteBill", err)
	}
	s.notifyFinal(snap, splits)

	s.logger.InfoContext(ctx, "Bill completed", "bill_id", ref.BillID, "participants", len(splits), "reconciliation_warning", recon.Warning)
	return connect.NewResponse(&api.CompleteBillResponse{Results: toAPIFinalResults(snap, splits, recon)}), nil
}

// notifyFinal texts each phone-verified done participant their total.
func (s *BillService) notifyFinal(snap *snapshot, splits []calculator.FinalSplit) {
	for _, split := range splits {
		p, ok := snap.participant(split.ParticipantID)
		if !ok || !p.PhoneVerified || p.Phone == "" {
			continue
		}
		s.notifier.Send("final", p.Phone, notify.FinalMessage(p.Name, snap.bill.Venue, calculator.RoundCents(split.FinalTotal), snap.bill.Payment))
	}
}

// creatorSnapshot loads the bill the creator token in ctx names.
func (s *BillService) creatorSnapshot(ctx context.Context) (*snapshot, error) {
	ref, err := resource(ctx, models.TokenCreator)
	if err != nil {
		return nil, err
	}
	return loadSnapshot(ctx, s.store, ref.BillID)
}
