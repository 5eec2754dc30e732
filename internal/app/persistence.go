// internal/app/persistence.go
package app

import (
	"github.com/llehouerou/cardview/internal/errmsg"
	"github.com/llehouerou/cardview/internal/logging"
	"github.com/llehouerou/cardview/internal/state"
)

// SavePosition persists the current card and mode for the stack.
func (m *Model) SavePosition() {
	st := m.Viewer.State()
	m.StateMgr.SavePosition(state.Position{
		StackPath:      m.Stack.Path(),
		CardIndex:      st.Index,
		BackgroundOnly: st.BackgroundOnly,
	})
}

// restorePosition moves the viewer to the saved card and mode.
// A saved card past the end of the stack is ignored.
func (m *Model) restorePosition() {
	pos, err := m.StateMgr.GetPosition(m.Stack.Path())
	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpStateLoad, err)
		logging.Logger().Warn("load position", "stack", m.Stack.Path(), "err", err)
		return
	}
	if pos == nil {
		return
	}

	if err := m.Viewer.JumpTo(pos.CardIndex); err != nil {
		logging.Logger().Info("saved card not restored",
			"stack", m.Stack.Path(), "index", pos.CardIndex, "err", err)
	}
	m.Viewer.Navigator().SetBackgroundOnly(pos.BackgroundOnly)
}

func (m *Model) rememberStack() {
	if err := m.StateMgr.SetLastStack(m.Stack.Path()); err != nil {
		logging.Logger().Warn("save last stack", "stack", m.Stack.Path(), "err", err)
		if m.ErrorMsg == "" {
			m.ErrorMsg = errmsg.Format(errmsg.OpStateSave, err)
		}
	}
}
