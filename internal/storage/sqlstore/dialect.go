package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/tabsplit/internal/storage"
)

// dialect captures the differences between the supported databases.
// Queries are written with ? placeholders and rebound per dialect.
type dialect struct {
	name       string
	driver     string
	schema     string
	numbered   bool
	rowLocking bool
	isUnique   func(error) bool
}

var sqliteDialect = &dialect{
	name:     "sqlite",
	driver:   "sqlite",
	schema:   sqliteSchema,
	isUnique: isSQLiteUnique,
}

var postgresDialect = &dialect{
	name:       "postgres",
	driver:     "pgx",
	schema:     postgresSchema,
	numbered:   true,
	rowLocking: true,
	isUnique:   isPostgresUnique,
}

// rebind rewrites ? placeholders to $1, $2, ... for numbered dialects.
func (d *dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lockClause returns the row locking suffix for mode. SQLite takes the
// database write lock when an immediate transaction begins, so it needs none.
func (d *dialect) lockClause(mode storage.LockMode) string {
	if !d.rowLocking {
		return ""
	}
	if mode == storage.LockExclusive {
		return " FOR UPDATE"
	}
	return " FOR SHARE"
}

// translate maps driver errors onto storage sentinels.
func (d *dialect) translate(err error) error {
	if err != nil && d.isUnique(err) {
		return errors.Join(storage.ErrConflict, err)
	}
	return err
}

func isSQLiteUnique(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary result code only; the message names the constraint type.
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

func isPostgresUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
