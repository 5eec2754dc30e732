package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/errmsg"
	"github.com/llehouerou/cardview/internal/search"
	"github.com/llehouerou/cardview/internal/stack"
)

// cardItem is a card offered by the find popup. It matches on the card
// name and the text shown on the card.
type cardItem struct {
	index      int
	name       string
	background string
	text       string
}

func (c cardItem) FilterValue() string { return c.name + " " + c.text }

func (c cardItem) DisplayText() string {
	name := c.name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%d  %s", c.index+1, name)
}

func (c cardItem) LeftColumn() string  { return c.DisplayText() }
func (c cardItem) RightColumn() string { return c.background }

// cardItems lists every card with the text of its parts and of the
// background parts it fills in.
func cardItems(st Stack) []search.Item {
	items := make([]search.Item, 0, st.CardCount())
	for i := range st.CardCount() {
		card, err := st.Card(i)
		if err != nil {
			continue
		}

		var text []string
		bgName := ""
		if bg, err := st.BackgroundOf(i); err == nil {
			bgName = bg.Name
			for _, p := range bg.Parts {
				text = appendNonEmpty(text, stack.PartContent(p, card.Contents))
			}
		}
		for _, p := range card.Parts {
			text = appendNonEmpty(text, stack.PartContent(p, nil))
		}

		items = append(items, cardItem{
			index:      i,
			name:       card.Name,
			background: bgName,
			text:       strings.Join(text, " "),
		})
	}
	return items
}

func appendNonEmpty(s []string, v string) []string {
	if v = strings.TrimSpace(v); v != "" {
		return append(s, v)
	}
	return s
}

func (m *Model) openFind() {
	m.Search.Reset()
	m.Search.SetItems(cardItems(m.Stack))
	m.Search.SetSize(m.Layout.PaneCols, m.Layout.PaneRows)
	m.SearchVisible = true
}

// handleFindResult closes the find popup and jumps to the chosen card.
func (m Model) handleFindResult(msg search.ResultMsg) (tea.Model, tea.Cmd) {
	m.SearchVisible = false
	m.Search.Reset()

	item, ok := msg.Item.(cardItem)
	if msg.Canceled || !ok {
		return m, m.showFrame()
	}

	if err := m.Viewer.JumpTo(item.index); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpNavigate, err)
		return m, m.showFrame()
	}
	m.SavePosition()
	m.refreshInfo()
	return m, m.requestRender()
}
