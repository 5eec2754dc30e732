package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns a rounded panel, highlighted when focused.
func PanelStyle(focused bool) lipgloss.Style {
	color := T().Border
	if focused {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// PanelFrame returns the horizontal and vertical space taken by a panel border.
func PanelFrame() (width, height int) {
	return PanelStyle(false).GetFrameSize()
}
