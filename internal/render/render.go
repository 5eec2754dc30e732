// Package render expands monochrome card bitmaps into scaled 32-bit pixel buffers.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/llehouerou/cardview/internal/bitmap"
	"github.com/llehouerou/cardview/internal/logging"
)

// DefaultScale doubles every source pixel, matching high-density displays.
const DefaultScale = 2

// minParallelPixels is the output size below which rendering stays on the
// calling goroutine.
const minParallelPixels = 64 * 1024

var (
	// ErrDimensionMismatch is returned when an image does not have the size
	// the renderer was created for.
	ErrDimensionMismatch = errors.New("image dimensions do not match renderer")
	// ErrInvalidScale is returned for scale factors below 1.
	ErrInvalidScale = errors.New("invalid scale factor")
	// ErrInvalidSize is returned for negative renderer dimensions.
	ErrInvalidSize = errors.New("invalid renderer size")
)

// Renderer turns card bitmaps of a fixed size into pixel buffers.
// It holds no per-render state and may be shared between goroutines.
type Renderer struct {
	width   int
	height  int
	scale   int
	workers int
	log     *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScale sets the integer upscale factor.
func WithScale(scale int) Option {
	return func(r *Renderer) { r.scale = scale }
}

// WithWorkers sets how many goroutines share a render. Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New creates a renderer for width x height source images.
func New(width, height int, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		width:  width,
		height: height,
		scale:  DefaultScale,
		log:    logging.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if r.scale < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, r.scale)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.log == nil {
		r.log = logging.Logger()
	}
	return r, nil
}

// Width returns the expected source width.
func (r *Renderer) Width() int { return r.width }

// Height returns the expected source height.
func (r *Renderer) Height() int { return r.height }

// Scale returns the upscale factor.
func (r *Renderer) Scale() int { return r.scale }

// OutputSize returns the pixel size of rendered buffers.
func (r *Renderer) OutputSize() (width, height int) {
	return r.width * r.scale, r.height * r.scale
}

// Render expands img into a new pixel buffer.
func (r *Renderer) Render(img *bitmap.Image) (*PixelBuffer, error) {
	w, h := r.OutputSize()
	buf := NewPixelBuffer(w, h, r.scale)
	if err := r.RenderInto(buf, img); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderInto expands img into dst, reallocating its pixels if the size is
// wrong. The caller must own dst exclusively: no display may be reading it.
func (r *Renderer) RenderInto(dst *PixelBuffer, img *bitmap.Image) error {
	if dst == nil {
		return errors.New("nil destination buffer")
	}
	if err := r.check(img); err != nil {
		return err
	}
	w, h := r.OutputSize()
	if dst.Width != w || dst.Height != h || len(dst.Pix) != w*h*BytesPerPixel {
		*dst = *NewPixelBuffer(w, h, r.scale)
	}
	dst.Scale = r.scale
	r.fill(dst, img)
	return nil
}

func (r *Renderer) check(img *bitmap.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrDimensionMismatch)
	}
	if img.Width() != r.width || img.Height() != r.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrDimensionMismatch,
			img.Width(), img.Height(), r.width, r.height)
	}
	return nil
}

func (r *Renderer) fill(buf *PixelBuffer, img *bitmap.Image) {
	if buf.IsEmpty() {
		return
	}
	start := time.Now()

	workers := min(r.workers, r.height)
	if buf.Len() < minParallelPixels {
		workers = 1
	}

	if workers <= 1 {
		r.fillRows(buf, img, 0, r.height)
	} else {
		// Each band owns a disjoint range of output rows.
		band := (r.height + workers - 1) / workers
		var wg sync.WaitGroup
		for y0 := 0; y0 < r.height; y0 += band {
			y1 := min(y0+band, r.height)
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.fillRows(buf, img, y0, y1)
			}()
		}
		wg.Wait()
	}

	r.log.Debug("card rendered",
		"width", buf.Width,
		"height", buf.Height,
		"scale", r.scale,
		"workers", workers,
		"elapsed", time.Since(start))
}

// fillRows renders source rows [y0, y1). The first output row of each source
// row is written pixel by pixel, the remaining scale-1 rows are copies.
func (r *Renderer) fillRows(buf *PixelBuffer, img *bitmap.Image, y0, y1 int) {
	s := r.scale
	rowBytes := buf.Width * BytesPerPixel
	for y := y0; y < y1; y++ {
		first := y * s * buf.Stride
		i := first
		for x := range r.width {
			c := White
			if img.Ink(x, y) {
				c = Black
			}
			for range s {
				buf.set(i, c)
				i += BytesPerPixel
			}
		}
		row := buf.Pix[first : first+rowBytes]
		for dy := 1; dy < s; dy++ {
			off := first + dy*buf.Stride
			copy(buf.Pix[off:off+rowBytes], row)
		}
	}
}
