package keymap

import "slices"

// Resolver maps key strings to the bindings that own them.
type Resolver struct {
	byKey    map[string]Binding
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings. When a key appears in
// several bindings the last one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string]Binding),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" if none is.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key].Action
}

// ResolveIn is Resolve limited to bindings of the given contexts. Popups
// use it so that card keys do nothing while they are open.
func (r *Resolver) ResolveIn(key string, contexts ...string) Action {
	b, ok := r.byKey[key]
	if !ok || !slices.Contains(contexts, b.Context) {
		return ""
	}
	return b.Action
}

// KeysFor returns the keys bound to an action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
