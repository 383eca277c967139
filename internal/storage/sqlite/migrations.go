package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// people.position keeps registration order; transactions.seq keeps history
// order (higher = newer).
const schema = `
CREATE TABLE IF NOT EXISTS people (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    balance REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL,
    payer TEXT NOT NULL,
    amount REAL NOT NULL,
    split_mode TEXT NOT NULL,
    recorded_at INTEGER NOT NULL, -- unix nanoseconds
    description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transaction_beneficiaries (
    transaction_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    share REAL,
    exact REAL,
    PRIMARY KEY (transaction_id, position),
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transaction_beneficiaries_transaction_id ON transaction_beneficiaries(transaction_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
