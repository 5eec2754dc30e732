// Package bitmap provides the packed 1-bit images that card layers are drawn from.
package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// ErrSizeMismatch is returned when two images of different sizes are combined.
var ErrSizeMismatch = errors.New("bitmap size mismatch")

// Image is a monochrome image. A set bit is ink (black), a clear bit is paper.
// Rows are packed MSB-first, one bit per pixel.
type Image struct {
	width  int
	height int
	stride int // bytes per row
	bits   []byte
}

// New creates a blank (all paper) image. Negative sizes are treated as zero.
func New(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	stride := (width + 7) / 8
	return &Image{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]byte, stride*height),
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Bounds returns the image rectangle anchored at the origin.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Empty reports whether the image has no pixels.
func (m *Image) Empty() bool {
	return m.width == 0 || m.height == 0
}

func (m *Image) maskIndex(x, y int) (byte, int) {
	return 0x80 >> uint(x&7), y*m.stride + x>>3
}

func (m *Image) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// Ink reports whether the pixel at (x, y) is black.
// Points outside the image are paper.
func (m *Image) Ink(x, y int) bool {
	if !m.inside(x, y) {
		return false
	}
	mask, i := m.maskIndex(x, y)
	return m.bits[i]&mask != 0
}

// SetInk sets or clears the pixel at (x, y). Points outside the image are ignored.
func (m *Image) SetInk(x, y int, ink bool) {
	if !m.inside(x, y) {
		return
	}
	mask, i := m.maskIndex(x, y)
	if ink {
		m.bits[i] |= mask
	} else {
		m.bits[i] &^= mask
	}
}

// Row returns the packed bytes of row y. The slice aliases the image.
func (m *Image) Row(y int) []byte {
	if y < 0 || y >= m.height {
		return nil
	}
	return m.bits[y*m.stride : (y+1)*m.stride]
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	c := *m
	c.bits = bytes.Clone(m.bits)
	return &c
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(other *Image) bool {
	if other == nil {
		return false
	}
	return m.width == other.width && m.height == other.height && bytes.Equal(m.bits, other.bits)
}

// Or returns a new image holding the ink of both images.
// Used to draw a card layer over its background.
func (m *Image) Or(other *Image) (*Image, error) {
	if m.width != other.width || m.height != other.height {
		return nil, fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch,
			m.width, m.height, other.width, other.height)
	}
	out := m.Clone()
	for i, b := range other.bits {
		out.bits[i] |= b
	}
	return out, nil
}

// InkCount returns the number of black pixels.
func (m *Image) InkCount() int {
	n := 0
	for y := range m.height {
		for x := range m.width {
			if m.Ink(x, y) {
				n++
			}
		}
	}
	return n
}
