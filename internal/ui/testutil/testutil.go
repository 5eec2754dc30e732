// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes every escape sequence (styles, cursor moves, image
// protocol commands) so rendered output can be compared as text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the visual width of a string, ignoring escape codes.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// FindLine returns the first line containing the given substring, or empty string.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// SplitLines splits output into lines, removing trailing empty lines.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Key builds a key message the way bubbletea reports a key press.
// Named keys ("left", "home", "ctrl+c", "space") map to their key types;
// anything else is sent as runes.
func Key(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
