// Package search provides a trigram matcher and a popup to pick an item
// by typing part of its text.
package search

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ResultMsg is emitted when the search completes: Enter selects the item
// under the cursor, Escape cancels.
type ResultMsg struct {
	Item     Item // nil if canceled or nothing matched
	Canceled bool
}

// Model is a trigram search popup.
type Model struct {
	title   string
	items   []Item
	matcher *TrigramMatcher
	matches []Match
	query   string
	cursor  int
	offset  int
	width   int
	height  int
}

// New creates a new search model with a popup title.
func New(title string) Model {
	return Model{title: title}
}

// SetItems updates the items to search.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.matcher = NewTrigramMatcher(items)
	m.updateMatches()
}

// SetSize sets the area the popup is centered in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustOffset()
}

// Query returns the current query.
func (m Model) Query() string {
	return m.query
}

// Matches returns the current matches, best first.
func (m Model) Matches() []Match {
	return m.matches
}

// Selected returns the item under the cursor, or nil.
func (m Model) Selected() Item {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return nil
	}
	return m.items[m.matches[m.cursor].Index]
}

// Reset clears the query and the items.
func (m *Model) Reset() {
	m.query = ""
	m.cursor = 0
	m.offset = 0
	m.items = nil
	m.matcher = nil
	m.matches = nil
}

func (m *Model) updateMatches() {
	if m.matcher == nil {
		m.matches = nil
		return
	}
	m.matches = m.matcher.Search(m.query)

	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
	m.adjustOffset()
}

func (m *Model) adjustOffset() {
	visible := m.visibleHeight()
	if visible <= 0 {
		return
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.cursor = 0
	m.offset = 0
	m.updateMatches()
}

// Update handles keys while the popup is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg {
			return ResultMsg{Canceled: true}
		}

	case "enter":
		selected := m.Selected()
		return m, func() tea.Msg {
			return ResultMsg{Item: selected}
		}

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
			m.adjustOffset()
		}

	case "down", "ctrl+n":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
			m.adjustOffset()
		}

	case "backspace":
		if q := []rune(m.query); len(q) > 0 {
			m.setQuery(string(q[:len(q)-1]))
		}

	case "ctrl+u":
		m.setQuery("")

	default:
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.setQuery(m.query + string(key.Runes))
		}
	}

	return m, nil
}
