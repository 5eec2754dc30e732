// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "card", "info"
}

// All contains all key bindings, used both for dispatch and help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionInfo, []string{"i"}, "Toggle card info", "global"},
	{ActionRefresh, []string{"ctrl+l"}, "Redraw card", "global"},

	// Card navigation
	{ActionFirstCard, []string{"g", "home"}, "First card", "card"},
	{ActionLastCard, []string{"G", "end"}, "Last card", "card"},
	{ActionNextCard, []string{"l", "right", "n", " ", "pgdown"}, "Next card", "card"},
	{ActionPrevCard, []string{"h", "left", "p", "backspace", "pgup"}, "Previous card", "card"},
	{ActionToggleBackground, []string{"b"}, "Toggle background only", "card"},
	{ActionFindCard, []string{"/"}, "Find card", "card"},

	// Info panel
	{ActionScrollDown, []string{"j", "down"}, "Scroll down", "info"},
	{ActionScrollUp, []string{"k", "up"}, "Scroll up", "info"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"global", "card", "info"}
