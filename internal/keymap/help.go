package keymap

import "github.com/charmbracelet/bubbles/key"

// HelpMap adapts bindings to the bubbles help component.
// Short help shows the card context, full help groups by context.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelpMap builds a help map from bindings, grouped in Contexts order.
func NewHelpMap(bindings []Binding) HelpMap {
	var hm HelpMap
	for _, ctx := range Contexts {
		var group []key.Binding
		for _, b := range bindings {
			if b.Context != ctx {
				continue
			}
			kb := toKeyBinding(b)
			group = append(group, kb)
			if ctx == "card" {
				hm.short = append(hm.short, kb)
			}
		}
		if len(group) > 0 {
			hm.full = append(hm.full, group)
		}
	}
	return hm
}

func (h HelpMap) ShortHelp() []key.Binding  { return h.short }
func (h HelpMap) FullHelp() [][]key.Binding { return h.full }

func toKeyBinding(b Binding) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(displayKey(b.Keys[0]), b.Description),
	)
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
