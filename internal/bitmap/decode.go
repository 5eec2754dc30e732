package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder for layer images
	_ "image/jpeg" // JPEG decoder for layer images
	_ "image/png"  // PNG decoder for layer images
	"io"

	"github.com/lucasb-eyer/go-colorful"
	_ "github.com/spakin/netpbm" // PBM, PGM, PPM and PAM decoders for layer images
	_ "golang.org/x/image/bmp"   // BMP decoder for layer images
	_ "golang.org/x/image/tiff"  // TIFF decoder for layer images
)

// DefaultThreshold is the CIE L* lightness (0-1) below which a pixel becomes ink.
const DefaultThreshold = 0.5

// ErrUnsupportedFormat is returned when a layer file is not a known image format.
var ErrUnsupportedFormat = errors.New("unsupported bitmap format")

// FromImage converts img to a monochrome image. Pixels darker than threshold
// become ink; fully transparent pixels are paper.
func FromImage(img image.Image, threshold float64) *Image {
	b := img.Bounds()
	out := New(b.Dx(), b.Dy())

	// Paletted sources are converted once per palette entry.
	if p, ok := img.(*image.Paletted); ok {
		inks := make([]bool, len(p.Palette))
		for i, c := range p.Palette {
			inks[i] = isInk(c, threshold)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				idx := p.ColorIndexAt(x, y)
				if int(idx) < len(inks) && inks[idx] {
					out.SetInk(x-b.Min.X, y-b.Min.Y, true)
				}
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isInk(img.At(x, y), threshold) {
				out.SetInk(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}
	return out
}

func isInk(c color.Color, threshold float64) bool {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// zero alpha
		return false
	}
	l, _, _ := cf.Lab()
	return l < threshold
}

// Decode reads a layer bitmap in any registered format and thresholds it
// with DefaultThreshold. Netpbm bitmaps (P1, P4) carry no gray levels, so
// their bits come through unchanged.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, err
	}
	return FromImage(img, DefaultThreshold), nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) (*Image, error) {
	return Decode(bytes.NewReader(data))
}
