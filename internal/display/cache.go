package display

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheDirName  = "cardview/frames"
	pruneInterval = 24 * time.Hour
)

// DefaultMaxAge is how long an unused frame stays in the cache.
const DefaultMaxAge = 30 * 24 * time.Hour

// FrameKey identifies a rendered card. ModTime invalidates entries when the
// manifest or any layer image of the stack is edited.
type FrameKey struct {
	Stack          string
	ModTime        time.Time
	Card           int
	BackgroundOnly bool
	Scale          int
}

// Cache keeps fitted frames as PNG files on disk.
type Cache struct {
	dir string

	mu         sync.Mutex
	lastPruned time.Time
}

// NewCache creates a disk cache under baseDir, or under the XDG cache
// directory when baseDir is empty. Old entries are pruned in the background.
func NewCache(baseDir string) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}

	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir}
	go c.autoPrune()

	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func cacheKey(key FrameKey, width, height int) string {
	data := fmt.Sprintf("%s:%d:%d:%t:%d:%d:%d",
		key.Stack, key.ModTime.UnixNano(), key.Card, key.BackgroundOnly, key.Scale, width, height)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(key FrameKey, width, height int) string {
	return filepath.Join(c.dir, cacheKey(key, width, height)+".png")
}

// Get returns the cached PNG for a frame fitted to width x height pixels,
// or nil when absent. A nil Cache always misses.
func (c *Cache) Get(key FrameKey, width, height int) []byte {
	if c == nil {
		return nil
	}

	path := c.path(key, width, height)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// keep frequently viewed cards fresh
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores the PNG for a frame fitted to width x height pixels.
func (c *Cache) Put(key FrameKey, width, height int, data []byte) error {
	if c == nil || len(data) == 0 {
		return nil
	}

	// Write then rename so readers never see a partial file.
	path := c.path(key, width, height)
	tmp, err := os.CreateTemp(c.dir, "frame-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Clear removes every cached frame.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// autoPrune runs Prune with DefaultMaxAge at most once per pruneInterval.
func (c *Cache) autoPrune() {
	c.mu.Lock()
	if time.Since(c.lastPruned) < pruneInterval {
		c.mu.Unlock()
		return
	}
	c.lastPruned = time.Now()
	c.mu.Unlock()

	_ = c.Prune(DefaultMaxAge) //nolint:errcheck // best-effort cleanup
}

// Prune removes entries not used within maxAge.
func (c *Cache) Prune(maxAge time.Duration) error {
	if c == nil {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
	return nil
}
