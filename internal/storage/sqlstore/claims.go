package sqlstore

import (
	"context"
	"fmt"

	"github.com/mmynk/tabsplit/internal/models"
)

// ListClaims returns every claim on a bill.
func (e *executor) ListClaims(ctx context.Context, billID string) ([]models.ItemClaim, error) {
	rows, err := e.query(ctx, `
		SELECT item_id, participant_id, bill_id, created_at
		FROM item_claims
		WHERE bill_id = ?
		ORDER BY created_at, item_id, participant_id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []models.ItemClaim
	for rows.Next() {
		var c models.ItemClaim
		if err := rows.Scan(&c.ItemID, &c.ParticipantID, &c.BillID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// ReplaceClaims deletes the participant's claims and inserts itemIDs.
// Duplicate IDs are inserted once. Callers verify that every ID names an
// item of the bill.
func (t *txn) ReplaceClaims(ctx context.Context, billID, participantID string, itemIDs []string) error {
	if _, err := t.exec(ctx,
		"DELETE FROM item_claims WHERE participant_id = ? AND bill_id = ?",
		participantID, billID,
	); err != nil {
		return fmt.Errorf("failed to clear claims: %w", err)
	}

	now := t.now().Unix()
	seen := make(map[string]bool, len(itemIDs))
	for _, itemID := range itemIDs {
		if seen[itemID] {
			continue
		}
		seen[itemID] = true

		_, err := t.exec(ctx,
			"INSERT INTO item_claims (item_id, participant_id, bill_id, created_at) VALUES (?, ?, ?, ?)",
			itemID, participantID, billID, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert claim: %w", err)
		}
	}
	return nil
}
