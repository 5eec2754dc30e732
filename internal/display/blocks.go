package display

import (
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Half-block glyphs indexed by (top ink << 1 | bottom ink).
var blockGlyphs = [4]rune{' ', '▄', '▀', '█'}

// Blocks draws img as text for terminals without an image protocol.
// Each cell covers two pixel rows of the image scaled to cols x rows*2;
// dark pixels become ink.
func Blocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	// Fit into the cell grid, keeping the aspect ratio of square pixels.
	pxW, pxH := cols, rows*2
	if b.Dx()*pxH > b.Dy()*pxW {
		pxH = max(b.Dy()*pxW/b.Dx(), 1)
	} else {
		pxW = max(b.Dx()*pxH/b.Dy(), 1)
	}

	ink := func(x, y int) bool {
		if y >= pxH {
			return false
		}
		sx := b.Min.X + x*b.Dx()/pxW
		sy := b.Min.Y + y*b.Dy()/pxH
		c, ok := colorful.MakeColor(img.At(sx, sy))
		if !ok {
			return false
		}
		l, _, _ := c.Lab()
		return l < 0.5
	}

	lines := make([]string, 0, (pxH+1)/2)
	var sb strings.Builder
	for y := 0; y < pxH; y += 2 {
		sb.Reset()
		for x := range pxW {
			i := 0
			if ink(x, y) {
				i |= 2
			}
			if ink(x, y+1) {
				i |= 1
			}
			sb.WriteRune(blockGlyphs[i])
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
