package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/display"
	"github.com/llehouerou/cardview/internal/errmsg"
	"github.com/llehouerou/cardview/internal/logging"
	"github.com/llehouerou/cardview/internal/ui/infopanel"
	"github.com/llehouerou/cardview/internal/ui/layout"
)

// requestRender starts a render of the current card. Any render still in
// flight becomes stale.
func (m *Model) requestRender() tea.Cmd {
	if m.Viewer.State().CardCount == 0 {
		return nil
	}
	m.renderGen++
	m.Loading = true
	return renderCmd(m.Viewer, m.renderGen)
}

func (m Model) handleRendered(msg RenderedMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.renderGen {
		logging.Logger().Debug("dropped stale render", "gen", msg.Gen, "want", m.renderGen)
		return m, nil
	}
	m.Loading = false

	if msg.Err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpRender, msg.Err)
		logging.Logger().Warn("render card", "index", msg.Frame.State.Index, "err", msg.Err)
		return m, nil
	}

	f := msg.Frame
	m.frame = &f
	m.frameInfo = infopanel.Frame{
		Width:    f.Buffer.Width,
		Height:   f.Buffer.Height,
		Scale:    f.Buffer.Scale,
		Bytes:    f.Buffer.Len(),
		Protocol: m.Display.ProtocolName(),
		Took:     msg.Took,
	}
	logging.Logger().Debug("rendered card", "index", f.State.Index, "took", msg.Took)
	m.refreshInfo()

	if m.overlayVisible() {
		return m, nil
	}
	return m, m.showFrame()
}

// showFrame hands the last rendered frame to the display.
func (m *Model) showFrame() tea.Cmd {
	if m.frame == nil || m.frame.Buffer == nil {
		return nil
	}

	if !m.Display.Enabled() {
		buf := m.frame.Buffer
		cols := min(m.Layout.PaneCols, buf.Width)
		rows := min(m.Layout.PaneRows, (buf.Height+1)/2)
		m.fallback = display.Blocks(buf, cols, rows)
		return nil
	}

	st := m.frame.State
	key := display.FrameKey{
		Stack:          m.Stack.Path(),
		ModTime:        m.Stack.ModTime(),
		Card:           st.Index,
		BackgroundOnly: st.BackgroundOnly,
		Scale:          m.Viewer.Scale(),
	}
	tx, err := m.Display.Show(key, m.frame.Buffer)
	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpDisplay, err)
		logging.Logger().Warn("display card", "index", st.Index, "err", err)
		return nil
	}
	return m.queueTransmit(tx)
}

// overlayVisible reports whether a popup covers the card pane.
func (m Model) overlayVisible() bool {
	return m.HelpVisible || m.SearchVisible
}

// hideFrame removes the image from the terminal.
func (m *Model) hideFrame() tea.Cmd {
	return m.queueTransmit(m.Display.Clear())
}

// queueTransmit adds terminal commands to the next views.
func (m *Model) queueTransmit(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	m.pendingTransmit += s
	m.transmitSeq++
	return flushTransmitCmd(m.transmitSeq)
}

func (m Model) handleTransmitFlushed(msg transmitFlushedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq == m.transmitSeq {
		m.pendingTransmit = ""
	}
	return m, nil
}

// resize lays out the window and sizes the card pane from the stack size.
func (m *Model) resize() tea.Cmd {
	m.Layout = layout.Compute(m.Layout.Width, m.Layout.Height, m.InfoVisible)
	m.InfoPanel.SetSize(m.Layout.InfoCols, m.Layout.InfoRows)
	m.refreshInfo()

	outW, outH := m.Viewer.OutputSize()
	cellW, cellH := m.Display.CellSize()
	cols, rows := layout.CardCells(outW, outH, cellW, cellH, m.Layout.PaneCols, m.Layout.PaneRows)
	changed := m.Display.SetSize(cols, rows)
	m.Search.SetSize(m.Layout.PaneCols, m.Layout.PaneRows)

	if m.overlayVisible() {
		return nil
	}
	if changed || !m.Display.Enabled() {
		return m.showFrame()
	}
	return nil
}

// refreshInfo rebuilds the info panel text for the current card.
func (m *Model) refreshInfo() {
	if !m.InfoVisible {
		return
	}
	m.InfoPanel.SetContent(infopanel.Build(m.Stack, m.Viewer.State(), m.frameInfo, m.InfoPanel.InnerWidth()))
}
