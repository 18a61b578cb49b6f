package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/outreach/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Label       string
	Description string
	Handler     func()
	Visible     bool
	Numeric     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Hint returns the menu entry of the action.
func (a *Action) Hint() ui.MenuHint {
	label := a.Label
	if label == "" {
		if a.Key == tcell.KeyRune {
			label = string(a.Rune)
		} else {
			label = tcell.KeyNames[a.Key]
		}
	}
	return ui.MenuHint{Key: label, Description: a.Description, Numeric: a.Numeric}
}

// Registry holds keybindings organized by scope, in registration order.
type Registry struct {
	global []*Action
	views  map[string][]*Action
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string][]*Action),
	}
}

// AddGlobal registers a global keybinding.
func (r *Registry) AddGlobal(action *Action) {
	r.global = append(r.global, action)
}

// AddView registers a view-specific keybinding.
func (r *Registry) AddView(view string, action *Action) {
	r.views[view] = append(r.views[view], action)
}

// Hints returns the visible bindings of view followed by the global ones.
func (r *Registry) Hints(view string) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, a := range r.views[view] {
		if a.Visible {
			hints = append(hints, a.Hint())
		}
	}
	for _, a := range r.global {
		if a.Visible {
			hints = append(hints, a.Hint())
		}
	}
	return hints
}

// HandleEvent dispatches a key event to the first matching action, view
// bindings before global ones. It reports whether a handler ran.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	for _, a := range r.views[view] {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	for _, a := range r.global {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	return false
}
