// Package db holds small database/sql helpers shared by the SQLite stores.
package db

import (
	"database/sql"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullStringValue returns the string value or empty string if not valid.
func NullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// NullInt64Value returns the int64 value or 0 if not valid.
func NullInt64Value(n sql.NullInt64) int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}

// BoolToInt converts a flag to SQLite's integer boolean.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
