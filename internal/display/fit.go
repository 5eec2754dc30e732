package display

import (
	"image"

	"github.com/nfnt/resize"
)

const (
	defaultCellW = 8
	defaultCellH = 16
)

// rgbaConverter is implemented by render.PixelBuffer.
type rgbaConverter interface {
	RGBA() *image.RGBA
}

// Fit shrinks img to fit within maxW x maxH pixels, keeping its aspect
// ratio. Nearest-neighbor sampling keeps edges sharp.
// Images that already fit are returned unchanged; Fit never enlarges.
func Fit(img image.Image, maxW, maxH int) image.Image {
	if c, ok := img.(rgbaConverter); ok {
		img = c.RGBA()
	}

	b := img.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img
	}
	//nolint:gosec // pane sizes are small and positive
	return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.NearestNeighbor)
}

// cellsFor returns the number of cells covered by an image of the given
// pixel size, rounding up.
func cellsFor(pxW, pxH, cellW, cellH int) (cols, rows int) {
	if pxW <= 0 || pxH <= 0 {
		return 0, 0
	}
	return (pxW + cellW - 1) / cellW, (pxH + cellH - 1) / cellH
}
