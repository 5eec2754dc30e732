// Package render provides text rendering utilities for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and invalid UTF-8 bytes,
// and turns non-breaking spaces into spaces. Stack manifests are user
// written and field text may contain anything.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
			continue
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return true
		}
		if b >= 0x80 && b <= 0x9f {
			return true
		}
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return true
		}
	}
	return false
}

// Truncate shortens plain text to maxWidth columns, ending with "…" when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateStyled shortens styled text to maxWidth columns, keeping escape
// sequences intact.
func TruncateStyled(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// Pad fills plain text with spaces to reach width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad truncates if necessary, then pads to exactly width columns.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row joins left and right with spaces so the result is width columns wide.
// The left side is cut when both do not fit.
func Row(left, right string, width int) string {
	rightWidth := lipgloss.Width(right)
	if lipgloss.Width(left)+rightWidth+1 > width {
		left = TruncateStyled(left, max(width-rightWidth-1, 0))
	}
	gap := max(width-lipgloss.Width(left)-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Center pads s on the left so it sits in the middle of width columns.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// Separator creates a horizontal line of width columns.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
