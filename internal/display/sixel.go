package display

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Place output unique, so Bubble Tea's diff
// renderer never skips re-emitting the sixel data.
var placeCounter uint64

// SixelProtocol implements Protocol with Sixel graphics. Sixel has no image
// memory in the terminal, so encoded data is kept here and emitted on Place.
type SixelProtocol struct {
	mu     sync.RWMutex
	images map[uint32]string
	cellW  int
	cellH  int
}

// NewSixelProtocol creates a SixelProtocol using the terminal's cell size.
func NewSixelProtocol() *SixelProtocol {
	cellW, cellH := getCellSize()
	return &SixelProtocol{
		images: make(map[uint32]string),
		cellW:  cellW,
		cellH:  cellH,
	}
}

func (s *SixelProtocol) Name() string { return "sixel" }

func (s *SixelProtocol) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	// Cards are pure black and white; dithering would only add noise.
	enc.Dither = false

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()

	return "", nil
}

func (s *SixelProtocol) PrepareFromPNG(pngData []byte, id uint32) (string, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return "", fmt.Errorf("decode png: %w", err)
	}
	return s.Prepare(img, id)
}

func (s *SixelProtocol) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()

	if !ok {
		return ""
	}

	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	// no-op SGR carrying the counter
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)

	return sb.String()
}

func (s *SixelProtocol) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()

	return ""
}

func (s *SixelProtocol) CellSize() (width, height int) {
	if s.cellW <= 0 || s.cellH <= 0 {
		return defaultCellW, defaultCellH
	}
	return s.cellW, s.cellH
}

// has reports whether an encoded image is held for id.
func (s *SixelProtocol) has(id uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[id]
	return ok
}
