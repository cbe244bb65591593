package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// ─── Transaction Numbering ──────────────────────────────────────────────────
// One counter row per prefix, bumped and read in a single statement.
// Because the bump runs inside the same transaction as the header
// insert, two callers can never observe the same value.

// nextNumber increments the counter for prefix and returns the
// formatted transaction number, e.g. INV000042.
func nextNumber(tx *sql.Tx, prefix string) (string, error) {
	var n int64
	err := tx.QueryRow(`
		INSERT INTO sequences (prefix, next) VALUES (?, 1)
		ON CONFLICT(prefix) DO UPDATE SET next = next + 1
		RETURNING next
	`, prefix).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", prefix, n), nil
}

// NextNumber issues a transaction number in its own transaction. The
// writer paths bump the counter together with their header insert; this
// entry point exists for callers that only need a number.
func (db *DB) NextNumber(ctx context.Context, prefix string) (string, error) {
	var number string
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		number, err = nextNumber(tx, prefix)
		return err
	})
	return number, err
}
