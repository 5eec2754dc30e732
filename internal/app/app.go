// internal/app/app.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/display"
	"github.com/llehouerou/cardview/internal/keymap"
	"github.com/llehouerou/cardview/internal/search"
	"github.com/llehouerou/cardview/internal/stack"
	"github.com/llehouerou/cardview/internal/state"
	"github.com/llehouerou/cardview/internal/ui/help"
	"github.com/llehouerou/cardview/internal/ui/infopanel"
	"github.com/llehouerou/cardview/internal/ui/layout"
	"github.com/llehouerou/cardview/internal/viewer"
)

// Stack is the card stack shown by the app.
type Stack interface {
	stack.Document
	infopanel.Source
}

var _ Stack = (*stack.Stack)(nil)

// Model is the root application model.
type Model struct {
	Stack    Stack
	Viewer   *viewer.Viewer
	Display  *display.Display
	StateMgr state.Interface
	Keys     *keymap.Resolver

	Layout    layout.Layout
	InfoPanel infopanel.Model
	Help      help.Model
	Search    search.Model

	InfoVisible   bool
	HelpVisible   bool
	SearchVisible bool
	Loading       bool
	ErrorMsg      string

	// renderGen is the generation of the newest render request.
	// Results carrying an older generation are dropped.
	renderGen int
	frame     *viewer.Frame
	frameInfo infopanel.Frame
	// fallback is the text rendition of the frame when no image
	// protocol is available.
	fallback string

	pendingTransmit string
	transmitSeq     int
}

// New creates the application model for a stack. The viewer must show st.
// The saved position for the stack is restored and the stack is recorded
// as the last one opened.
func New(st Stack, v *viewer.Viewer, disp *display.Display, stateMgr state.Interface) Model {
	if disp == nil {
		disp = display.New(nil, nil)
	}
	m := Model{
		Stack:     st,
		Viewer:    v,
		Display:   disp,
		StateMgr:  stateMgr,
		Keys:      keymap.NewResolver(keymap.All),
		InfoPanel: infopanel.New(),
		Help:      help.New(keymap.All),
		Search:    search.New("Find card"),
	}

	m.restorePosition()
	m.rememberStack()

	if v.State().CardCount > 0 {
		m.renderGen = 1
		m.Loading = true
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	title := tea.SetWindowTitle("cardview · " + m.Stack.Name())
	if !m.Loading {
		return title
	}
	return tea.Batch(title, renderCmd(m.Viewer, m.renderGen))
}
