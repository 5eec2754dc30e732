// Package display shows rendered cards in the terminal through an inline
// image protocol (Kitty or Sixel).
package display

import "image"

// Protocol abstracts the terminal image display protocol.
type Protocol interface {
	// Name identifies the protocol ("kitty", "sixel").
	Name() string

	// Prepare encodes the image and returns any one-time terminal command.
	// Kitty: transmits to terminal memory, returns escape sequences.
	// Sixel: encodes and caches internally, returns empty string.
	Prepare(img image.Image, id uint32) (string, error)

	// PrepareFromPNG same but from pre-encoded PNG data.
	PrepareFromPNG(pngData []byte, id uint32) (string, error)

	// Place returns the escape sequence to display the image at (row, col),
	// 1-based, spanning width x height cells.
	Place(id uint32, row, col, width, height int) string

	// Delete returns the escape sequence to remove the image.
	Delete(id uint32) string

	// CellSize returns the pixel size of one terminal cell.
	CellSize() (width, height int)
}
