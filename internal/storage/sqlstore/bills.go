package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

const billColumns = `id, creator_token, share_token, status, venue, image_key, image_content_type,
	subtotal, tax, tip, venmo, zelle, cashapp, created_at, updated_at`

// GetBill retrieves a bill by ID.
func (e *executor) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	return e.selectBill(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?", billID)
}

// LockBill reads a bill and locks its row until the transaction ends.
func (t *txn) LockBill(ctx context.Context, billID string, mode storage.LockMode) (*models.Bill, error) {
	return t.selectBill(ctx, "SELECT "+billColumns+" FROM bills WHERE id = ?"+t.d.lockClause(mode), billID)
}

// UpdateBill writes every mutable bill column.
func (t *txn) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = t.now().Unix()
	res, err := t.exec(ctx, `
		UPDATE bills SET share_token = ?, status = ?, venue = ?, image_key = ?, image_content_type = ?,
			subtotal = ?, tax = ?, tip = ?, venmo = ?, zelle = ?, cashapp = ?, updated_at = ?
		WHERE id = ?`,
		bill.ShareToken, string(bill.Status), bill.Venue, bill.ImageKey, bill.ImageContentType,
		bill.Subtotal, bill.Tax, bill.Tip, bill.Payment.Venmo, bill.Payment.Zelle, bill.Payment.CashApp,
		bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return expectOne(res)
}

func (e *executor) selectBill(ctx context.Context, query string, args ...any) (*models.Bill, error) {
	bill := &models.Bill{}
	var status string
	err := e.queryRow(ctx, query, args...).Scan(
		&bill.ID,
		&bill.CreatorToken,
		&bill.ShareToken,
		&status,
		&bill.Venue,
		&bill.ImageKey,
		&bill.ImageContentType,
		&bill.Subtotal,
		&bill.Tax,
		&bill.Tip,
		&bill.Payment.Venmo,
		&bill.Payment.Zelle,
		&bill.Payment.CashApp,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.Status = models.BillStatus(status)
	return bill, nil
}
