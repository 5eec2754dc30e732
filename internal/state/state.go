package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cardview/internal/logging"
)

const (
	appName      = "cardview"
	dbFileName   = "cardview.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Position
}

// Open opens the state database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (creating if needed) the state database at dbPath.
func OpenPath(dbPath string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		if err := savePosition(m.db, *pending); err != nil {
			logging.Logger().Warn("flush position", "path", pending.StackPath, "err", err)
		}
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetPosition returns the saved position for a stack, or nil if none.
func (m *Manager) GetPosition(stackPath string) (*Position, error) {
	m.saveMu.Lock()
	if m.pending != nil && m.pending.StackPath == stackPath {
		p := *m.pending
		m.saveMu.Unlock()
		return &p, nil
	}
	m.saveMu.Unlock()
	return getPosition(m.db, stackPath)
}

// SavePosition records a stack position. Writes are debounced so that
// rapid paging only hits the database once.
func (m *Manager) SavePosition(pos Position) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	// A pending position for another stack is written right away.
	if m.pending != nil && m.pending.StackPath != pos.StackPath {
		if err := savePosition(m.db, *m.pending); err != nil {
			logging.Logger().Warn("save position", "path", m.pending.StackPath, "err", err)
		}
	}

	m.pending = &pos

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := savePosition(m.db, *pending); err != nil {
				logging.Logger().Warn("save position", "path", pending.StackPath, "err", err)
			}
		}
	})
}

// LastStack returns the most recently opened stack path, or "" if none.
func (m *Manager) LastStack() (string, error) {
	return getLastStack(m.db)
}

// SetLastStack records the most recently opened stack path.
func (m *Manager) SetLastStack(path string) error {
	return setLastStack(m.db, path)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
