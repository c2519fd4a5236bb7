package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/models"
)

// ListItems returns a bill's items in display order.
func (e *executor) ListItems(ctx context.Context, billID string) ([]models.BillItem, error) {
	rows, err := e.query(ctx, `
		SELECT id, bill_id, name, price, position, created_at
		FROM bill_items
		WHERE bill_id = ?
		ORDER BY position, created_at, id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.BillItem
	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.Position, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// InsertItems persists items. IDs and creation times are assigned in place.
func (t *txn) InsertItems(ctx context.Context, items []models.BillItem) error {
	now := t.now().Unix()
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}

		_, err := t.exec(ctx,
			"INSERT INTO bill_items (id, bill_id, name, price, position, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, item.BillID, item.Name, item.Price, item.Position, item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}
	return nil
}

// UpdateItem writes an item's name, price and position.
func (t *txn) UpdateItem(ctx context.Context, item *models.BillItem) error {
	res, err := t.exec(ctx,
		"UPDATE bill_items SET name = ?, price = ?, position = ? WHERE id = ? AND bill_id = ?",
		item.Name, item.Price, item.Position, item.ID, item.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return expectOne(res)
}

// DeleteItem removes an item along with every claim on it.
func (t *txn) DeleteItem(ctx context.Context, billID, itemID string) error {
	if _, err := t.exec(ctx, "DELETE FROM item_claims WHERE item_id = ? AND bill_id = ?", itemID, billID); err != nil {
		return fmt.Errorf("failed to delete item claims: %w", err)
	}
	res, err := t.exec(ctx, "DELETE FROM bill_items WHERE id = ? AND bill_id = ?", itemID, billID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return expectOne(res)
}

// DeleteItems removes all of a bill's items and their claims.
func (t *txn) DeleteItems(ctx context.Context, billID string) error {
	if _, err := t.exec(ctx, "DELETE FROM item_claims WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to delete claims: %w", err)
	}
	if _, err := t.exec(ctx, "DELETE FROM bill_items WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}
