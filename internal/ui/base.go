// Package ui provides shared UI building blocks.
package ui

// Base provides size management for component models.
// Embed this in component models to get standard methods automatically.
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Size returns the component dimensions.
func (b Base) Size() (width, height int) {
	return b.width, b.height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}
