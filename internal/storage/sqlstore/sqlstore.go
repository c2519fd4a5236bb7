// Package sqlstore implements storage.Store on database/sql for SQLite
// (modernc.org/sqlite, no CGO) and PostgreSQL (pgx stdlib driver).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Config selects and configures the database.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	// Path is the SQLite database file.
	Path string
	// URL is the Postgres connection string.
	URL          string
	MaxOpenConns int
}

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// Store implements storage.Store on a *sql.DB.
type Store struct {
	executor
	db *sql.DB
}

// Open connects to the configured database and runs migrations.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(ctx, cfg.Path, cfg.MaxOpenConns)
	case "postgres":
		return NewPostgres(ctx, cfg.URL, cfg.MaxOpenConns)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewSQLite opens the SQLite database at dbPath.
// It creates the parent directories and runs migrations automatically.
// Transactions begin IMMEDIATE so a transaction holds the write lock from
// its first read.
func NewSQLite(ctx context.Context, dbPath string, maxOpenConns int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := "file:" + dbPath + "?" + sqlitePragmas

	db, err := sql.Open(sqliteDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	return newStore(ctx, db, sqliteDialect)
}

// NewPostgres connects to the Postgres database at databaseURL.
func NewPostgres(ctx context.Context, databaseURL string, maxOpenConns int) (*Store, error) {
	db, err := sql.Open(postgresDialect.driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	return newStore(ctx, db, postgresDialect)
}

func newStore(ctx context.Context, db *sql.DB, d *dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", d.name, err)
	}
	if err := runMigrations(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return wrap(db, d), nil
}

func wrap(db *sql.DB, d *dialect) *Store {
	return &Store{executor: executor{q: db, d: d, now: time.Now}, db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RunInTx runs fn in a transaction. The transaction is rolled back if fn
// returns an error or panics.
func (s *Store) RunInTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txn{executor: executor{q: sqlTx, d: s.d, now: s.now}}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateBill persists a new bill to the database.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := s.now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = bill.CreatedAt
	if bill.Status == "" {
		bill.Status = models.BillEditing
	}

	_, err := s.exec(ctx, `
		INSERT INTO bills (id, creator_token, share_token, status, venue, image_key, image_content_type,
			subtotal, tax, tip, venmo, zelle, cashapp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.CreatorToken, bill.ShareToken, string(bill.Status), bill.Venue,
		bill.ImageKey, bill.ImageContentType, bill.Subtotal, bill.Tax, bill.Tip,
		bill.Payment.Venmo, bill.Payment.Zelle, bill.Payment.CashApp, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// ResolveToken maps a bearer token to the bill or participant it belongs to.
func (s *Store) ResolveToken(ctx context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error) {
	ref := &models.ResourceRef{Kind: kind}

	var err error
	switch kind {
	case models.TokenCreator:
		err = s.queryRow(ctx, "SELECT id FROM bills WHERE creator_token = ?", token).Scan(&ref.BillID)
	case models.TokenShare:
		err = s.queryRow(ctx, "SELECT id FROM bills WHERE share_token = ?", token).Scan(&ref.BillID)
	case models.TokenParticipant:
		err = s.queryRow(ctx, "SELECT id, bill_id FROM participants WHERE token = ?", token).
			Scan(&ref.ParticipantID, &ref.BillID)
	default:
		return nil, storage.ErrNotFound
	}

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s token: %w", kind, err)
	}
	return ref, nil
}

// txn implements storage.Tx on a *sql.Tx.
type txn struct {
	executor
}

var _ storage.Tx = (*txn)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor holds the queries shared by Store and txn.
type executor struct {
	q   queryer
	d   *dialect
	now func() time.Time
}

func (e *executor) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := e.q.ExecContext(ctx, e.d.rebind(query), args...)
	return res, e.d.translate(err)
}

func (e *executor) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return e.q.QueryContext(ctx, e.d.rebind(query), args...)
}

func (e *executor) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return e.q.QueryRowContext(ctx, e.d.rebind(query), args...)
}

// expectOne returns storage.ErrNotFound when res affected no rows.
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
