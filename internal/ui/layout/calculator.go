// Package layout provides pure functions for UI dimension calculations.
package layout

const (
	// StatusBarHeight is the single status line at the top.
	StatusBarHeight = 1

	// FooterHeight is the message / short help line at the bottom.
	FooterHeight = 1

	// InfoPanelWidth is the width of the info panel beside the card.
	InfoPanelWidth = 44

	// NarrowThreshold is the terminal width below which the info panel is
	// stacked under the card instead of beside it.
	NarrowThreshold = 100
)

// Layout is the placement of the screen regions for one window size.
// Rows and columns are 1-based terminal coordinates.
type Layout struct {
	Width, Height int

	// Card pane
	PaneRow, PaneCol   int
	PaneCols, PaneRows int

	// Info panel, zero sized when hidden
	InfoCols, InfoRows int
	Narrow             bool
}

// Compute splits a window between the card pane and the info panel.
func Compute(width, height int, infoVisible bool) Layout {
	l := Layout{
		Width:   width,
		Height:  height,
		PaneRow: StatusBarHeight + 1,
		PaneCol: 1,
		Narrow:  IsNarrowMode(width),
	}

	content := ContentHeight(height)
	l.PaneCols, l.PaneRows = max(width, 0), content

	if !infoVisible {
		return l
	}

	if l.Narrow {
		l.PaneRows = content * 2 / 3
		l.InfoCols = max(width, 0)
		l.InfoRows = content - l.PaneRows
		return l
	}

	l.InfoCols = min(InfoPanelWidth, width/2)
	l.InfoRows = content
	l.PaneCols = width - l.InfoCols
	return l
}

// ContentHeight is the window height left between status bar and footer.
func ContentHeight(windowHeight int) int {
	return max(windowHeight-StatusBarHeight-FooterHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// CardCells returns the pane size to request for a card of pxW x pxH pixels:
// the cells the card covers at its native size, capped by the available
// cells. Small stacks get a small pane instead of a stretched one.
func CardCells(pxW, pxH, cellW, cellH, maxCols, maxRows int) (cols, rows int) {
	if pxW <= 0 || pxH <= 0 || cellW <= 0 || cellH <= 0 {
		return 0, 0
	}
	cols = (pxW + cellW - 1) / cellW
	rows = (pxH + cellH - 1) / cellH
	return max(min(cols, maxCols), 0), max(min(rows, maxRows), 0)
}

// CenterOffset returns the offset that centers inner within outer.
func CenterOffset(outer, inner int) int {
	return max((outer-inner)/2, 0)
}
