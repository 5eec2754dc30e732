package state

import (
	"database/sql"

	dbutil "github.com/llehouerou/cardview/internal/db"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS stack_positions (
				path TEXT PRIMARY KEY,
				card_index INTEGER NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL
			);

			CREATE TABLE IF NOT EXISTS session (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				last_stack TEXT
			);
		`)
		if err != nil {
			return err
		}

		// Set initial version if not exists
		if _, err := tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return err
		}

		// Migration: background_only was added in version 2
		_, _ = tx.Exec(`ALTER TABLE stack_positions ADD COLUMN background_only INTEGER NOT NULL DEFAULT 0`)

		return nil
	})
}
