package search

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// testItem implements Item for testing.
type testItem struct {
	filter  string
	display string
}

func (t testItem) FilterValue() string { return t.filter }

func (t testItem) DisplayText() string { return t.display }

type twoColItem struct {
	testItem
	right string
}

func (t twoColItem) LeftColumn() string  { return t.display }
func (t twoColItem) RightColumn() string { return t.right }

func cardItems() []Item {
	return []Item{
		testItem{filter: "Intro welcome to the address book", display: "1 Intro"},
		testItem{filter: "Alice Liddell rabbit hole", display: "2 Alice"},
		testItem{filter: "Bob Builder", display: "3 Bob"},
		testItem{filter: "Café Müller", display: "4 Café"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "hello"},
		{"UPPERCASE", "uppercase"},
		{"", ""},
		{"Café", "cafe"},
		{"Über Größe", "uber große"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalize(tt.input); got != tt.expected {
				t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerateTrigrams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"simple word", "cat", []string{"  c", " ca", "cat", "at ", "t  "}},
		{"short word", "ab", []string{"  a", " ab", "ab ", "b  "}},
		{"multibyte", "né", []string{" né", "né ", "é  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := generateTrigrams(tt.input)
			for _, tri := range tt.contains {
				if _, ok := result[tri]; !ok {
					t.Errorf("generateTrigrams(%q) missing trigram %q", tt.input, tri)
				}
			}
			if _, ok := result["   "]; ok {
				t.Error("all-whitespace trigram should be skipped")
			}
		})
	}

	if generateTrigrams("") != nil {
		t.Error("generateTrigrams(\"\") should be nil")
	}
}

func TestTrigramCoverage(t *testing.T) {
	query := map[string]struct{}{"abc": {}, "bcd": {}, "xyz": {}, "zzz": {}}
	item := map[string]struct{}{"abc": {}, "bcd": {}}

	if got := trigramCoverage(query, item); got != 0.5 {
		t.Errorf("trigramCoverage() = %f, want 0.5", got)
	}
	if got := trigramCoverage(map[string]struct{}{}, item); got != 0 {
		t.Errorf("empty query coverage = %f, want 0", got)
	}
}

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"", ""},
		{"café", "cafe"},
		{"naïve résumé", "naive resume"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RemoveDiacritics(tt.input); got != tt.expected {
				t.Errorf("RemoveDiacritics(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrigramMatcher_Search(t *testing.T) {
	matcher := NewTrigramMatcher(cardItems())

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2, 3}},
		{"alice", []int{1}},
		{"ALICE rabbit", []int{1}},
		{"cafe", []int{3}},
		{"bo", []int{0, 2}},
		{"zebra", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches := matcher.Search(tt.query)
			got := make([]int, 0, len(matches))
			for _, m := range matches {
				got = append(got, m.Index)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
					break
				}
			}
		})
	}
}

func TestTrigramMatcher_SortedByScore(t *testing.T) {
	items := []Item{
		testItem{filter: "something else"},
		testItem{filter: "notes"},
		testItem{filter: "noted later"},
		testItem{filter: "my notes here"},
	}

	matches := NewTrigramMatcher(items).Search("notes")
	if len(matches) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted by score at %d", i)
		}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(key(string(r)))
	}
	return m
}

func TestModel_Typing(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	m.SetSize(80, 30)

	m = typeText(m, "bob")
	if m.Query() != "bob" {
		t.Errorf("query = %q, want bob", m.Query())
	}
	if len(m.Matches()) != 1 || m.Selected().DisplayText() != "3 Bob" {
		t.Errorf("expected Bob selected, got %v", m.Selected())
	}

	m, _ = m.Update(key("backspace"))
	if m.Query() != "bo" {
		t.Errorf("after backspace query = %q, want bo", m.Query())
	}

	m, _ = m.Update(key("ctrl+u"))
	if m.Query() != "" || len(m.Matches()) != 4 {
		t.Errorf("ctrl+u should clear the query, got %q with %d matches", m.Query(), len(m.Matches()))
	}
}

func TestModel_BackspaceMultibyte(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	m = typeText(m, "café")
	m, _ = m.Update(key("backspace"))
	if m.Query() != "caf" {
		t.Errorf("query = %q, want caf", m.Query())
	}
}

func TestModel_Navigation(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	m.SetSize(80, 30)

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if got := m.Selected().DisplayText(); got != "3 Bob" {
		t.Errorf("after two downs selected %q", got)
	}
	m, _ = m.Update(key("up"))
	if got := m.Selected().DisplayText(); got != "2 Alice" {
		t.Errorf("after up selected %q", got)
	}

	// cursor stops at the ends
	for range 10 {
		m, _ = m.Update(key("down"))
	}
	if got := m.Selected().DisplayText(); got != "4 Café" {
		t.Errorf("cursor should stop at the last item, got %q", got)
	}
}

func TestModel_EnterAndEscape(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	m = typeText(m, "alice")

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	res, ok := cmd().(ResultMsg)
	if !ok || res.Canceled || res.Item == nil || res.Item.DisplayText() != "2 Alice" {
		t.Errorf("enter result = %+v", res)
	}

	_, cmd = m.Update(key("esc"))
	res, ok = cmd().(ResultMsg)
	if !ok || !res.Canceled || res.Item != nil {
		t.Errorf("esc result = %+v", res)
	}

	m, _ = m.Update(key("ctrl+u"))
	m = typeText(m, "zzz")
	_, cmd = m.Update(key("enter"))
	if res := cmd().(ResultMsg); res.Item != nil { //nolint:forcetypeassert // always ResultMsg
		t.Error("enter without matches should select nothing")
	}
}

func TestModel_Reset(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	m = typeText(m, "bob")
	m.Reset()

	if m.Query() != "" || m.Matches() != nil || m.Selected() != nil {
		t.Error("Reset should clear query, matches and selection")
	}
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := New("Find card")
	m.SetItems(cardItems())
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	if cmd != nil || next.Query() != "" {
		t.Error("non-key messages should be ignored")
	}
}

func TestView(t *testing.T) {
	m := New("Find card")
	m.SetItems([]Item{
		twoColItem{testItem{filter: "alice", display: "2 Alice"}, "Entries"},
		testItem{filter: "bob", display: "3 Bob"},
	})
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Find card") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "2 Alice") || !strings.Contains(view, "Entries") {
		t.Error("view should list items with their detail column")
	}

	m = typeText(m, "zzz")
	if !strings.Contains(m.View(), "No matches") {
		t.Error("view should say when nothing matches")
	}

	m.SetSize(0, 0)
	if m.View() != "" {
		t.Error("view should be empty before sizing")
	}
}
