// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/search"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.InfoVisible {
			return m, nil
		}
		var cmd tea.Cmd
		m.InfoPanel, cmd = m.InfoPanel.Update(msg)
		return m, cmd

	case search.ResultMsg:
		return m.handleFindResult(msg)

	case RenderedMsg:
		return m.handleRendered(msg)

	case transmitFlushedMsg:
		return m.handleTransmitFlushed(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Layout.Width = msg.Width
	m.Layout.Height = msg.Height
	return m, m.resize()
}
