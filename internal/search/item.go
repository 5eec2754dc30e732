package search

// Item represents a searchable item.
type Item interface {
	// FilterValue returns the string to match against.
	FilterValue() string
	// DisplayText returns the string to display in results.
	DisplayText() string
}

// TwoColumnItem is an optional interface for items shown with a
// right-aligned detail column.
type TwoColumnItem interface {
	Item
	LeftColumn() string
	RightColumn() string
}
