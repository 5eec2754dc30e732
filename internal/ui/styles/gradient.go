package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders bold text with a horizontal color gradient, one color per
// grapheme cluster.
func Gradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	colors := blendColors(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorToHex(colors[i])))
		b.WriteString(style.Render(cluster))
	}

	return b.String()
}

// blendColors blends from to to in HCL space.
func blendColors(size int, from, to lipgloss.Color) []color.Color {
	if size < 2 {
		return []color.Color{from}
	}

	c1, _ := colorful.MakeColor(lipglossToColor(from))
	c2, _ := colorful.MakeColor(lipglossToColor(to))

	colors := make([]color.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = c1.BlendHcl(c2, t)
	}

	return colors
}

func lipglossToColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		col, err := colorful.Hex(hex)
		if err == nil {
			return col
		}
	}
	// ANSI color numbers blend as gray
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func colorToHex(c color.Color) string {
	cf, ok := c.(colorful.Color)
	if ok {
		return cf.Hex()
	}
	r, g, b, _ := c.RGBA()
	return colorful.Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}.Hex()
}
