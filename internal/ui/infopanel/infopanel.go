// Package infopanel shows stack, background and card details beside the card.
package infopanel

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cardview/internal/ui"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

// Model is a scrollable, bordered panel.
type Model struct {
	ui.Base
	vp      viewport.Model
	content string
}

// New creates an empty panel.
func New() Model {
	return Model{vp: viewport.New(0, 0)}
}

// SetSize sets the outer size of the panel including its border.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	fw, fh := styles.PanelFrame()
	m.vp.Width = max(width-fw, 0)
	m.vp.Height = max(height-fh, 0)
	m.vp.SetContent(m.content)
}

// InnerWidth is the text width available inside the border.
func (m Model) InnerWidth() int {
	return m.vp.Width
}

// SetContent replaces the panel text, keeping the scroll position when possible.
func (m *Model) SetContent(content string) {
	m.content = content
	m.vp.SetContent(content)
}

// ScrollUp scrolls one line up.
func (m *Model) ScrollUp() {
	m.vp.ScrollUp(1)
}

// ScrollDown scrolls one line down.
func (m *Model) ScrollDown() {
	m.vp.ScrollDown(1)
}

// YOffset returns the current scroll offset.
func (m Model) YOffset() int {
	return m.vp.YOffset
}

// Update forwards mouse wheel messages to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(tea.MouseMsg); !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the panel with its border.
func (m Model) View() string {
	if m.Width() <= 2 || m.Height() <= 2 {
		return ""
	}
	return styles.PanelStyle(false).
		Width(m.vp.Width).
		Height(m.vp.Height).
		Render(lipgloss.NewStyle().MaxWidth(m.vp.Width).Render(m.vp.View()))
}
