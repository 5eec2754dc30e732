// Package handler provides the result type and dispatch chain for key actions.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/keymap"
)

// Result is the outcome of handling one action.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler ignores the action.
var NotHandled = Result{}

// HandledNoCmd is returned when an action was handled without a command.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result for a handled action with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler attempts to handle an action.
type Handler func(action keymap.Action) Result

// Chain offers action to each handler in order until one handles it.
// An empty action is never offered.
func Chain(action keymap.Action, handlers ...Handler) (bool, tea.Cmd) {
	if action == "" {
		return false, nil
	}
	for _, h := range handlers {
		if r := h(action); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
