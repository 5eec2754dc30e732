// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"
	ActionInfo Action = "info"

	// Card navigation
	ActionFirstCard Action = "first_card"
	ActionLastCard  Action = "last_card"
	ActionNextCard  Action = "next_card"
	ActionPrevCard  Action = "prev_card"
	ActionFindCard  Action = "find_card"

	// Display
	ActionToggleBackground Action = "toggle_background"
	ActionRefresh          Action = "refresh"

	// Info panel scrolling
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
)
