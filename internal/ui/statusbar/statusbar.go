// Package statusbar renders the single status line above the card.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cardview/internal/ui/render"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

// Height is the fixed height of the status bar (single line).
const Height = 1

// Status is what the status bar shows.
type Status struct {
	StackName      string
	CardName       string
	Index          int // 0-based
	CardCount      int
	BackgroundOnly bool
	Loading        bool
}

// Render returns the status bar string for the given width:
// the stack name on the left, mode and card position on the right.
func Render(s Status, width int) string {
	if width <= 0 {
		return ""
	}
	st := styles.T().S()

	left := styles.Gradient(render.Sanitize(s.StackName), styles.T().Primary, styles.T().Secondary)
	if s.CardName != "" {
		left += st.Muted.Render(" › " + render.Sanitize(s.CardName))
	}

	right := make([]string, 0, 3)
	if s.Loading {
		right = append(right, st.Subtle.Render("rendering…"))
	}
	if s.BackgroundOnly {
		right = append(right, st.Badge.Render("background"))
	}
	right = append(right, st.Title.Render(Position(s.Index, s.CardCount)))

	line := render.Row(left, strings.Join(right, " "), width)
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// Position formats a 0-based index as "card N / M", or "no cards".
func Position(index, count int) string {
	if count == 0 {
		return "no cards"
	}
	return fmt.Sprintf("card %d / %d", index+1, count)
}
