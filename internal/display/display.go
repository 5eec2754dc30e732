package display

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // PNG config decoding for cached frames
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/llehouerou/cardview/internal/logging"
)

var nextImageID uint32

func getNextImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// Display holds the card image currently shown in the terminal.
// Show prepares a frame; View code then emits the returned transmit command
// once and Placement on every redraw.
type Display struct {
	proto Protocol
	cache *Cache
	log   *slog.Logger

	mu      sync.RWMutex
	cols    int // pane size in cells
	rows    int
	id      uint32
	key     FrameKey
	imgCols int // image size in cells
	imgRows int
}

// New creates a Display. A nil protocol disables image output; a nil cache
// disables frame caching.
func New(proto Protocol, cache *Cache) *Display {
	return &Display{
		proto: proto,
		cache: cache,
		log:   logging.Logger(),
	}
}

// Enabled reports whether an image protocol is available.
func (d *Display) Enabled() bool {
	return d.proto != nil
}

// ProtocolName returns the active protocol name, or "none".
func (d *Display) ProtocolName() string {
	if d.proto == nil {
		return NameNone
	}
	return d.proto.Name()
}

// SetSize sets the pane size in cells. It reports whether the size changed,
// in which case the current frame must be shown again.
func (d *Display) SetSize(cols, rows int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cols == cols && d.rows == rows {
		return false
	}
	d.cols, d.rows = cols, rows
	return true
}

// Size returns the pane size in cells.
func (d *Display) Size() (cols, rows int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cols, d.rows
}

// CellSize returns the terminal cell size in pixels.
func (d *Display) CellSize() (width, height int) {
	if d.proto == nil {
		return defaultCellW, defaultCellH
	}
	return d.proto.CellSize()
}

// TargetPixelSize returns the pixel area of the pane.
func (d *Display) TargetPixelSize() (width, height int) {
	d.mu.RLock()
	cols, rows := d.cols, d.rows
	d.mu.RUnlock()

	cw, ch := d.CellSize()
	return cols * cw, rows * ch
}

// Show prepares img for display and returns the terminal commands that
// delete the previous image and transmit the new one. The fitted PNG is
// read from or written to the cache under key.
func (d *Display) Show(key FrameKey, img image.Image) (string, error) {
	if d.proto == nil {
		return "", nil
	}

	pxW, pxH := d.TargetPixelSize()
	if pxW <= 0 || pxH <= 0 {
		return "", nil
	}

	data := d.cache.Get(key, pxW, pxH)
	if data == nil {
		var err error
		data, err = EncodePNG(Fit(img, pxW, pxH))
		if err != nil {
			return "", err
		}
		if err := d.cache.Put(key, pxW, pxH, data); err != nil {
			d.log.Warn("cache frame", "card", key.Card, "err", err)
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read frame size: %w", err)
	}

	id := getNextImageID()
	transmit, err := d.proto.PrepareFromPNG(data, id)
	if err != nil {
		return "", err
	}

	cw, ch := d.proto.CellSize()
	imgCols, imgRows := cellsFor(cfg.Width, cfg.Height, cw, ch)

	d.mu.Lock()
	defer d.mu.Unlock()

	var del string
	if d.id != 0 {
		del = d.proto.Delete(d.id)
	}
	d.id = id
	d.key = key
	d.imgCols = min(imgCols, d.cols)
	d.imgRows = min(imgRows, d.rows)

	return del + transmit, nil
}

// Placement returns the command drawing the current image with its top-left
// corner at row, col (1-based), or "" when nothing is shown.
func (d *Display) Placement(row, col int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.proto == nil || d.id == 0 {
		return ""
	}
	return d.proto.Place(d.id, row, col, d.imgCols, d.imgRows)
}

// ImageCells returns the size of the current image in cells.
func (d *Display) ImageCells() (cols, rows int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.imgCols, d.imgRows
}

// Current returns the key of the frame being shown and whether there is one.
func (d *Display) Current() (FrameKey, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.key, d.id != 0
}

// Placeholder returns blank space covering the pane.
func (d *Display) Placeholder() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return BlankPlaceholder(d.cols, d.rows)
}

// Clear removes the current image and returns the delete command.
func (d *Display) Clear() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var cmd string
	if d.proto != nil && d.id != 0 {
		cmd = d.proto.Delete(d.id)
	}
	d.id = 0
	d.key = FrameKey{}
	d.imgCols, d.imgRows = 0, 0
	return cmd
}
