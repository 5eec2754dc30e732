package render

import (
	"image"
	"image/color"
)

// BytesPerPixel is the size of one pixel in a PixelBuffer.
const BytesPerPixel = 4

// Color is an opaque 8-bit ARGB color.
type Color struct {
	A, R, G, B uint8
}

// The two colors the renderer ever writes.
var (
	White = Color{A: 255, R: 255, G: 255, B: 255}
	Black = Color{A: 255, R: 0, G: 0, B: 0}
)

// RGBA implements color.Color. Values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * uint32(c.A) / 0xff
	g = uint32(c.G) * uint32(c.A) / 0xff
	b = uint32(c.B) * uint32(c.A) / 0xff
	a = uint32(c.A)
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Word returns the color as a 32-bit value with alpha in the top byte.
func (c Color) Word() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// PixelBuffer is a rendered card. Each pixel is a little-endian 32-bit word
// with alpha in the most significant byte, so bytes run B, G, R, A from low
// to high address (premultiplied alpha, 8 bits per channel). Rows are
// Stride bytes apart.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Scale  int
}

// NewPixelBuffer allocates a zeroed buffer of the given size.
func NewPixelBuffer(width, height, scale int) *PixelBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &PixelBuffer{
		Pix:    make([]byte, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
		Stride: width * BytesPerPixel,
		Scale:  scale,
	}
}

// Len returns the number of pixels.
func (p *PixelBuffer) Len() int {
	return p.Width * p.Height
}

// IsEmpty reports whether the buffer holds no pixels.
func (p *PixelBuffer) IsEmpty() bool {
	return p.Len() == 0
}

func (p *PixelBuffer) offset(x, y int) int {
	return y*p.Stride + x*BytesPerPixel
}

// PixelAt returns the color at (x, y). Points outside the buffer are zero.
func (p *PixelBuffer) PixelAt(x, y int) Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return Color{}
	}
	i := p.offset(x, y)
	s := p.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return Color{B: s[0], G: s[1], R: s[2], A: s[3]}
}

// Word returns the pixel at (x, y) as a 32-bit ARGB word.
func (p *PixelBuffer) Word(x, y int) uint32 {
	return p.PixelAt(x, y).Word()
}

func (p *PixelBuffer) set(i int, c Color) {
	s := p.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	s[0] = c.B
	s[1] = c.G
	s[2] = c.R
	s[3] = c.A
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At implements image.Image.
func (p *PixelBuffer) At(x, y int) color.Color {
	return p.PixelAt(x, y)
}

// RGBA converts the buffer to Go's RGBA byte order.
func (p *PixelBuffer) RGBA() *image.RGBA {
	out := image.NewRGBA(p.Bounds())
	for y := range p.Height {
		src := p.Pix[y*p.Stride : y*p.Stride+p.Width*BytesPerPixel]
		dst := out.Pix[y*out.Stride : y*out.Stride+p.Width*BytesPerPixel]
		for i := 0; i < len(src); i += BytesPerPixel {
			dst[i] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i]
			dst[i+3] = src[i+3]
		}
	}
	return out
}
