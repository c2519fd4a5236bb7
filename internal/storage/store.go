// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabsplit/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// LockMode selects the row lock LockBill takes inside a transaction.
type LockMode int

const (
	// LockShared blocks concurrent exclusive lockers but not other readers.
	LockShared LockMode = iota
	// LockExclusive serializes against every other locker of the bill.
	LockExclusive
)

// Reader holds the queries available both inside and outside transactions.
type Reader interface {
	// GetBill retrieves a bill by its ID.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListItems returns a bill's items in display order.
	ListItems(ctx context.Context, billID string) ([]models.BillItem, error)

	// ListParticipants returns a bill's participants ordered by join time.
	ListParticipants(ctx context.Context, billID string) ([]models.Participant, error)

	// GetParticipant returns one participant of a bill.
	GetParticipant(ctx context.Context, billID, participantID string) (*models.Participant, error)

	// ListClaims returns every claim on a bill.
	ListClaims(ctx context.Context, billID string) ([]models.ItemClaim, error)
}

// Tx is a unit of work. Every state transition re-reads the rows it
// depends on through LockBill or LockParticipant before writing.
type Tx interface {
	Reader

	// LockBill reads the bill and holds a row lock until the transaction ends.
	LockBill(ctx context.Context, billID string, mode LockMode) (*models.Bill, error)

	// LockParticipant reads the participant and holds an exclusive row lock.
	LockParticipant(ctx context.Context, billID, participantID string) (*models.Participant, error)

	UpdateBill(ctx context.Context, bill *models.Bill) error

	// InsertItems persists items, assigning IDs and timestamps where unset.
	InsertItems(ctx context.Context, items []models.BillItem) error
	UpdateItem(ctx context.Context, item *models.BillItem) error
	// DeleteItem removes an item and every claim on it.
	DeleteItem(ctx context.Context, billID, itemID string) error
	// DeleteItems removes all of a bill's items and their claims.
	DeleteItems(ctx context.Context, billID string) error

	// InsertParticipant persists p, assigning its ID and join time where unset.
	InsertParticipant(ctx context.Context, p *models.Participant) error
	UpdateParticipant(ctx context.Context, p *models.Participant) error

	// ReplaceClaims sets the participant's claims to exactly itemIDs.
	ReplaceClaims(ctx context.Context, billID, participantID string, itemIDs []string) error
}

// Store defines the interface for bill storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	Reader

	// CreateBill persists a new bill.
	// The bill.ID field will be populated by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ResolveToken maps a token of the given kind to the resource it grants.
	// Returns ErrNotFound for unknown tokens.
	ResolveToken(ctx context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error)

	// RunInTx runs fn in a transaction, committing when fn returns nil.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
