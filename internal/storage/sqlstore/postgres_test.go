package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

func newMockPostgres(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return wrap(db, postgresDialect), mock
}

var billRowColumns = []string{
	"id", "creator_token", "share_token", "status", "venue", "image_key", "image_content_type",
	"subtotal", "tax", "tip", "venmo", "zelle", "cashapp", "created_at", "updated_at",
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name  string
		d     *dialect
		query string
		want  string
	}{
		{"sqlite keeps placeholders", sqliteDialect, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{"postgres numbers placeholders", postgresDialect, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
		{"no placeholders", postgresDialect, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.rebind(tt.query))
		})
	}
}

func TestLockClause(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", postgresDialect.lockClause(storage.LockExclusive))
	assert.Equal(t, " FOR SHARE", postgresDialect.lockClause(storage.LockShared))
	assert.Empty(t, sqliteDialect.lockClause(storage.LockExclusive))
}

func TestPostgresLockBill(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bills WHERE id = $1 FOR UPDATE")).
		WithArgs("bill-1").
		WillReturnRows(sqlmock.NewRows(billRowColumns).AddRow(
			"bill-1", "ct", "st", "active", "Diner", "", "",
			"16.00", "1.44", nil, "", "", "", int64(100), int64(100),
		))
	mock.ExpectCommit()

	var got *models.Bill
	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		var err error
		got, err = tx.LockBill(ctx, "bill-1", storage.LockExclusive)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillActive, got.Status)
	assert.Equal(t, "16", got.Subtotal.Decimal.String())
	assert.True(t, got.Tax.Valid)
	assert.False(t, got.Tip.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSharedLockAndNotFound(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bills WHERE id = $1 FOR SHARE")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(billRowColumns))
	mock.ExpectRollback()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		_, err := tx.LockBill(ctx, "missing", storage.LockShared)
		return err
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplaceClaims(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM item_claims WHERE participant_id = $1 AND bill_id = $2")).
		WithArgs("p-1", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_claims (item_id, participant_id, bill_id, created_at) VALUES ($1, $2, $3, $4)")).
		WithArgs("item-1", "p-1", "bill-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_claims")).
		WithArgs("item-2", "p-1", "bill-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		return tx.ReplaceClaims(ctx, "bill-1", "p-1", []string{"item-1", "item-2", "item-1"})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUniqueViolation(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bills")).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.CreateBill(context.Background(), &models.Bill{CreatorToken: "a", ShareToken: "b"})
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresResolveToken(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, bill_id FROM participants WHERE token = $1")).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bill_id"}).AddRow("p-1", "bill-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM bills WHERE share_token = $1")).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM bills WHERE creator_token = $1")).
		WithArgs("boom").
		WillReturnError(errors.New("connection reset"))

	ref, err := store.ResolveToken(ctx, models.TokenParticipant, "tok")
	require.NoError(t, err)
	assert.Equal(t, &models.ResourceRef{Kind: models.TokenParticipant, BillID: "bill-1", ParticipantID: "p-1"}, ref)

	_, err = store.ResolveToken(ctx, models.TokenShare, "unknown")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.ResolveToken(ctx, models.TokenCreator, "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteItemRemovesClaimsFirst(t *testing.T) {
	store, mock := newMockPostgres(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM item_claims WHERE item_id = $1 AND bill_id = $2")).
		WithArgs("item-1", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bill_items WHERE id = $1 AND bill_id = $2")).
		WithArgs("item-1", "bill-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		return tx.DeleteItem(ctx, "bill-1", "item-1")
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
