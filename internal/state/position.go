package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/cardview/internal/db"
)

// Position is where the user left a stack.
type Position struct {
	StackPath      string
	CardIndex      int
	BackgroundOnly bool
	UpdatedAt      time.Time
}

func getPosition(db *sql.DB, stackPath string) (*Position, error) {
	row := db.QueryRow(`
		SELECT card_index, background_only, updated_at
		FROM stack_positions WHERE path = ?
	`, stackPath)

	var (
		pos       = Position{StackPath: stackPath}
		bgOnly    int
		updatedAt sql.NullInt64
	)
	err := row.Scan(&pos.CardIndex, &bgOnly, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved position is valid for a new stack
	}
	if err != nil {
		return nil, err
	}

	pos.BackgroundOnly = bgOnly != 0
	if ts := dbutil.NullInt64Value(updatedAt); ts > 0 {
		pos.UpdatedAt = time.Unix(ts, 0)
	}
	return &pos, nil
}

func savePosition(db *sql.DB, pos Position) error {
	updatedAt := pos.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO stack_positions (path, card_index, background_only, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			card_index = excluded.card_index,
			background_only = excluded.background_only,
			updated_at = excluded.updated_at
	`, pos.StackPath, pos.CardIndex, dbutil.BoolToInt(pos.BackgroundOnly), updatedAt.Unix())

	return err
}

func getLastStack(db *sql.DB) (string, error) {
	var path sql.NullString
	err := db.QueryRow(`SELECT last_stack FROM session WHERE id = 1`).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dbutil.NullStringValue(path), nil
}

func setLastStack(db *sql.DB, path string) error {
	_, err := db.Exec(`
		INSERT INTO session (id, last_stack) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET last_stack = excluded.last_stack
	`, path)
	return err
}
