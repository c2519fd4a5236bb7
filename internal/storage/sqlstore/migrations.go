package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Money is stored as decimal text in SQLite and NUMERIC in Postgres.
// Timestamps are Unix seconds, except participants.joined_at which is
// nanoseconds so join order is stable.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    creator_token TEXT NOT NULL UNIQUE,
    share_token TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL,
    venue TEXT NOT NULL DEFAULT '',
    image_key TEXT NOT NULL DEFAULT '',
    image_content_type TEXT NOT NULL DEFAULT '',
    subtotal TEXT,
    tax TEXT,
    tip TEXT,
    venmo TEXT NOT NULL DEFAULT '',
    zelle TEXT NOT NULL DEFAULT '',
    cashapp TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    name TEXT NOT NULL,
    price TEXT NOT NULL,
    position INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    phone_verified INTEGER NOT NULL DEFAULT 0,
    is_creator INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_claims (
    item_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    bill_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (item_id, participant_id),
    FOREIGN KEY (item_id) REFERENCES bill_items(id) ON DELETE CASCADE,
    FOREIGN KEY (participant_id) REFERENCES participants(id) ON DELETE CASCADE,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items(bill_id);
CREATE INDEX IF NOT EXISTS idx_participants_bill_id ON participants(bill_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_one_creator ON participants(bill_id) WHERE is_creator = 1;
CREATE INDEX IF NOT EXISTS idx_item_claims_bill_id ON item_claims(bill_id);
CREATE INDEX IF NOT EXISTS idx_item_claims_participant_id ON item_claims(participant_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    creator_token TEXT NOT NULL UNIQUE,
    share_token TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL,
    venue TEXT NOT NULL DEFAULT '',
    image_key TEXT NOT NULL DEFAULT '',
    image_content_type TEXT NOT NULL DEFAULT '',
    subtotal NUMERIC,
    tax NUMERIC,
    tip NUMERIC,
    venmo TEXT NOT NULL DEFAULT '',
    zelle TEXT NOT NULL DEFAULT '',
    cashapp TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price NUMERIC NOT NULL CHECK (price >= 0),
    position INTEGER NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    token TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    phone_verified BOOLEAN NOT NULL DEFAULT FALSE,
    is_creator BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL,
    joined_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS item_claims (
    item_id TEXT NOT NULL REFERENCES bill_items(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    bill_id TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    created_at BIGINT NOT NULL,
    PRIMARY KEY (item_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items(bill_id);
CREATE INDEX IF NOT EXISTS idx_participants_bill_id ON participants(bill_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_one_creator ON participants(bill_id) WHERE is_creator;
CREATE INDEX IF NOT EXISTS idx_item_claims_bill_id ON item_claims(bill_id);
CREATE INDEX IF NOT EXISTS idx_item_claims_participant_id ON item_claims(participant_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB, d *dialect) error {
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		return fmt.Errorf("failed to apply %s schema: %w", d.name, err)
	}
	return nil
}
