package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cardview/internal/ui/render"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

const maxVisibleResults = 20

func (m Model) popupWidth() int {
	w := m.width * 60 / 100
	if w < 40 {
		w = min(40, m.width-4)
	}
	return w
}

func (m Model) popupHeight() int {
	h := m.height * 50 / 100
	if h < 10 {
		h = min(10, m.height-2)
	}
	return h
}

func (m Model) visibleHeight() int {
	// border (2) + title (1) + input line (1) + separator (1)
	h := max(m.popupHeight()-5, 1)
	return min(h, maxVisibleResults)
}

func (m Model) emptyMessage() string {
	if m.query != "" {
		return "No matches"
	}
	return "Nothing to search"
}

func formatResultLine(item Item, innerW int, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	availW := innerW - 2

	twoCol, ok := item.(TwoColumnItem)
	if !ok || twoCol.RightColumn() == "" {
		return prefix + render.Truncate(render.Sanitize(item.DisplayText()), availW)
	}

	right := render.Truncate(render.Sanitize(twoCol.RightColumn()), availW/2)
	left := render.Truncate(render.Sanitize(twoCol.LeftColumn()), max(availW-lipgloss.Width(right)-2, 1))
	return prefix + render.Row(left, styles.T().S().Subtle.Render(right), availW)
}

// View renders the popup centered in its area.
func (m Model) View() string {
	if m.width <= 4 || m.height <= 4 {
		return ""
	}
	st := styles.T().S()

	popupW := m.popupWidth()
	innerW := popupW - 2

	title := st.Title.Render(m.title)
	input := st.Base.Render("/ " + m.query)
	separator := st.Subtle.Render(strings.Repeat("─", innerW))

	visible := m.visibleHeight()
	resultLines := make([]string, 0, visible)

	if len(m.matches) == 0 {
		resultLines = append(resultLines, st.Subtle.Render(m.emptyMessage()))
	} else {
		end := min(m.offset+visible, len(m.matches))
		for i := m.offset; i < end; i++ {
			item := m.items[m.matches[i].Index]
			line := formatResultLine(item, innerW, i == m.cursor)
			if i == m.cursor {
				resultLines = append(resultLines, st.Title.Render(line))
			} else {
				resultLines = append(resultLines, st.Base.Render(line))
			}
		}
	}

	for len(resultLines) < visible {
		resultLines = append(resultLines, "")
	}

	content := title + "\n" + input + "\n" + separator + "\n" + strings.Join(resultLines, "\n")
	box := styles.PanelStyle(true).Width(innerW).Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
