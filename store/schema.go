package store

import (
	"context"
	"database/sql"
)

const entriesSchema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    embedding BLOB NOT NULL,
    dim INTEGER NOT NULL,
    metadata TEXT,
    options TEXT,
    correct_answer TEXT
);
`

// EnsureSchema creates the entries table if it does not already exist.
// Insertion order is the table rowid.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, entriesSchema)
	return err
}
