// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/viewer"
)

// transmitHold is how long a transmit command stays in the view. It spans
// several renderer frames so the terminal receives it at least once.
const transmitHold = 150 * time.Millisecond

// renderCmd renders the viewer's current card off the update loop.
func renderCmd(v *viewer.Viewer, gen int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		frame, err := v.Render()
		return RenderedMsg{Gen: gen, Frame: frame, Took: time.Since(start), Err: err}
	}
}

// flushTransmitCmd returns a command that sends transmitFlushedMsg after
// transmitHold.
func flushTransmitCmd(seq int) tea.Cmd {
	return tea.Tick(transmitHold, func(_ time.Time) tea.Msg {
		return transmitFlushedMsg{Seq: seq}
	})
}
