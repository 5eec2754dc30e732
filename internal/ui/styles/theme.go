package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // titles, current card counter
	Secondary lipgloss.Color // section headers, mode badge

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Card paper shown around the image when the terminal has no image support
	Paper lipgloss.Color
	Ink   lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Header  lipgloss.Style // info panel section header
	Key     lipgloss.Style // key names in help
	Label   lipgloss.Style // field labels in info panel
	Badge   lipgloss.Style // mode indicator in status bar
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Paper: lipgloss.Color("#ffffff"),
	Ink:   lipgloss.Color("#000000"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Key:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Badge: lipgloss.NewStyle().
			Foreground(t.Ink).
			Background(t.Secondary).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
