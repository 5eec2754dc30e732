// internal/app/handlers.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/app/handler"
	"github.com/llehouerou/cardview/internal/errmsg"
	"github.com/llehouerou/cardview/internal/keymap"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.ErrorMsg = ""

	if m.SearchVisible {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	if m.HelpVisible {
		return m.handleHelpKey(key, m.Keys.ResolveIn(key, "global"))
	}
	action := m.Keys.Resolve(key)

	_, cmd := handler.Chain(action,
		m.handleQuitKeys,
		m.handleCardKeys,
		m.handleViewKeys,
		m.handleInfoKeys,
	)
	return m, cmd
}

// handleHelpKey handles keys while the help popup covers the card.
// Only global bindings reach it.
func (m Model) handleHelpKey(key string, action keymap.Action) (tea.Model, tea.Cmd) {
	switch {
	case action == keymap.ActionQuit:
		return m, tea.Quit
	case key == "esc" || action == keymap.ActionHelp:
		m.HelpVisible = false
		return m, m.showFrame()
	}
	return m, nil
}

func (m *Model) handleQuitKeys(a keymap.Action) handler.Result {
	if a != keymap.ActionQuit {
		return handler.NotHandled
	}
	return handler.Handled(tea.Quit)
}

// handleCardKeys moves between cards and switches the display mode.
// Each accepted move saves the position and starts a new render.
func (m *Model) handleCardKeys(a keymap.Action) handler.Result {
	var err error
	switch a {
	case keymap.ActionFirstCard:
		err = m.Viewer.First()
	case keymap.ActionLastCard:
		err = m.Viewer.Last()
	case keymap.ActionNextCard:
		err = m.Viewer.Next()
	case keymap.ActionPrevCard:
		err = m.Viewer.Previous()
	case keymap.ActionToggleBackground:
		if m.Viewer.State().CardCount == 0 {
			return handler.HandledNoCmd
		}
		m.Viewer.ToggleBackgroundOnly()
	default:
		return handler.NotHandled
	}

	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpNavigate, err)
		return handler.HandledNoCmd
	}

	m.SavePosition()
	m.refreshInfo()
	return handler.Handled(m.requestRender())
}

func (m *Model) handleViewKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionHelp:
		m.HelpVisible = true
		return handler.Handled(m.hideFrame())
	case keymap.ActionFindCard:
		if m.Viewer.State().CardCount == 0 {
			return handler.HandledNoCmd
		}
		m.openFind()
		return handler.Handled(m.hideFrame())
	case keymap.ActionInfo:
		m.InfoVisible = !m.InfoVisible
		return handler.Handled(m.resize())
	case keymap.ActionRefresh:
		del := m.hideFrame()
		return handler.Handled(tea.Batch(del, m.showFrame(), tea.ClearScreen))
	}
	return handler.NotHandled
}

func (m *Model) handleInfoKeys(a keymap.Action) handler.Result {
	if !m.InfoVisible {
		return handler.NotHandled
	}
	switch a {
	case keymap.ActionScrollUp:
		m.InfoPanel.ScrollUp()
		return handler.HandledNoCmd
	case keymap.ActionScrollDown:
		m.InfoPanel.ScrollDown()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}
