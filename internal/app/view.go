// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cardview/internal/ui/layout"
	"github.com/llehouerou/cardview/internal/ui/render"
	"github.com/llehouerou/cardview/internal/ui/statusbar"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

// View renders the entire application UI.
func (m Model) View() string {
	if m.Layout.Width == 0 || m.Layout.Height == 0 {
		return ""
	}

	view := m.renderStatus() + "\n" + m.renderBody() + "\n" + m.renderFooter()

	// Ensure view is exactly terminal height (pad or truncate if needed)
	view = enforceHeight(view, m.Layout.Height)

	if m.pendingTransmit != "" {
		view = m.pendingTransmit + view
	}
	return view + m.placement()
}

func (m Model) renderStatus() string {
	st := m.Viewer.State()
	s := statusbar.Status{
		StackName:      m.Stack.Name(),
		Index:          st.Index,
		CardCount:      st.CardCount,
		BackgroundOnly: st.BackgroundOnly,
		Loading:        m.Loading,
	}
	if st.CardCount > 0 && !st.BackgroundOnly {
		if card, err := m.Stack.Card(st.Index); err == nil {
			s.CardName = card.Name
		}
	}
	return statusbar.Render(s, m.Layout.Width)
}

func (m Model) renderBody() string {
	pane := m.renderPane()
	if !m.InfoVisible || m.Layout.InfoCols == 0 {
		return pane
	}
	info := m.InfoPanel.View()
	if m.Layout.Narrow {
		return lipgloss.JoinVertical(lipgloss.Left, pane, info)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pane, info)
}

// renderPane fills the card pane. With an image protocol the pane is blank
// and the image is placed over it.
func (m Model) renderPane() string {
	cols, rows := m.Layout.PaneCols, m.Layout.PaneRows
	st := styles.T().S()

	var content string
	switch {
	case m.HelpVisible:
		content = m.Help.Popup(cols, rows)
	case m.SearchVisible:
		content = m.Search.View()
	case m.Viewer.State().CardCount == 0:
		content = st.Muted.Render("this stack has no cards")
	case m.Display.Enabled():
		// the image is placed over the blank pane
	case m.fallback != "":
		content = m.fallback
	case m.Loading:
		content = st.Subtle.Render("rendering…")
	}

	return lipgloss.NewStyle().MaxWidth(cols).MaxHeight(rows).
		Render(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, content))
}

func (m Model) renderFooter() string {
	if m.ErrorMsg != "" {
		return styles.T().S().Error.Render(render.Truncate(m.ErrorMsg, m.Layout.Width))
	}
	return m.Help.Short(m.Layout.Width)
}

// placement returns the command drawing the card image centered in the pane.
func (m Model) placement() string {
	if m.overlayVisible() || !m.Display.Enabled() {
		return ""
	}
	cols, rows := m.Display.ImageCells()
	if cols == 0 || rows == 0 {
		return ""
	}
	row := m.Layout.PaneRow + layout.CenterOffset(m.Layout.PaneRows, rows)
	col := m.Layout.PaneCol + layout.CenterOffset(m.Layout.PaneCols, cols)
	return m.Display.Placement(row, col)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	if len(lines) == targetHeight {
		return view
	}
	if len(lines) < targetHeight {
		for len(lines) < targetHeight {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}
