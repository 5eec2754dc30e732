// Package help renders key binding help: a one-line footer and a full popup.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cardview/internal/keymap"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

// Model wraps the bubbles help view with the application key map.
type Model struct {
	help help.Model
	keys keymap.HelpMap
}

// New creates a help model for the given bindings.
func New(bindings []keymap.Binding) Model {
	h := help.New()
	st := styles.T().S()
	h.Styles.ShortKey = st.Key
	h.Styles.ShortDesc = st.Muted
	h.Styles.ShortSeparator = st.Subtle
	h.Styles.FullKey = st.Key
	h.Styles.FullDesc = st.Base
	h.Styles.FullSeparator = st.Subtle
	h.Styles.Ellipsis = st.Subtle
	h.FullSeparator = "   "

	return Model{help: h, keys: keymap.NewHelpMap(bindings)}
}

// Short renders the single-line help, cut to width.
func (m Model) Short(width int) string {
	m.help.Width = width
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// Popup renders the full help in a bordered box, centered in width x height.
func (m Model) Popup(width, height int) string {
	title := styles.T().S().Title.Render("Keys")
	footer := styles.T().S().Subtle.Render("? or esc to close")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title, "", m.help.FullHelpView(m.keys.FullHelp()), "", footer)

	box := styles.PanelStyle(true).Padding(0, 1).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
