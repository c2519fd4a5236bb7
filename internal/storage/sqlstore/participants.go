package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

const participantColumns = `id, bill_id, token, name, phone, phone_verified, is_creator, status, joined_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	p := &models.Participant{}
	var status string
	err := row.Scan(
		&p.ID,
		&p.BillID,
		&p.Token,
		&p.Name,
		&p.Phone,
		&p.PhoneVerified,
		&p.IsCreator,
		&status,
		&p.JoinedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = models.ParticipantStatus(status)
	return p, nil
}

// ListParticipants returns a bill's participants ordered by join time.
func (e *executor) ListParticipants(ctx context.Context, billID string) ([]models.Participant, error) {
	rows, err := e.query(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE bill_id = ? ORDER BY joined_at, id",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// GetParticipant retrieves one participant of a bill.
func (e *executor) GetParticipant(ctx context.Context, billID, participantID string) (*models.Participant, error) {
	return e.selectParticipant(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ? AND bill_id = ?",
		participantID, billID,
	)
}

// LockParticipant reads a participant and locks its row.
func (t *txn) LockParticipant(ctx context.Context, billID, participantID string) (*models.Participant, error) {
	return t.selectParticipant(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ? AND bill_id = ?"+t.d.lockClause(storage.LockExclusive),
		participantID, billID,
	)
}

func (e *executor) selectParticipant(ctx context.Context, query string, args ...any) (*models.Participant, error) {
	p, err := scanParticipant(e.queryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// InsertParticipant inserts a new participant. The ID and join time are
// assigned when unset.
func (t *txn) InsertParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := t.now()
	if p.JoinedAt == 0 {
		p.JoinedAt = now.UnixNano()
	}
	p.UpdatedAt = now.Unix()
	if p.Status == "" {
		p.Status = models.ParticipantSelecting
	}

	_, err := t.exec(ctx, `
		INSERT INTO participants (`+participantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.BillID, p.Token, p.Name, p.Phone, p.PhoneVerified, p.IsCreator,
		string(p.Status), p.JoinedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// UpdateParticipant writes a participant's name, phone and status.
func (t *txn) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	p.UpdatedAt = t.now().Unix()
	res, err := t.exec(ctx, `
		UPDATE participants SET name = ?, phone = ?, phone_verified = ?, status = ?, updated_at = ?
		WHERE id = ? AND bill_id = ?`,
		p.Name, p.Phone, p.PhoneVerified, string(p.Status), p.UpdatedAt, p.ID, p.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return expectOne(res)
}
