package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages is a stack-based page manager wrapping tview.Pages.
// It provides push/pop semantics and notifies on stack changes.
// Overlays (loader, confirm) are shown on top without entering the stack.
type Pages struct {
	*tview.Pages
	stack    []string
	overlays []string
	onChange func(stack []string)
}

// NewPages creates a new stack-based page manager.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push adds a page to the top of the stack and shows it. Pushing the
// current top is a no-op.
func (p *Pages) Push(name string) {
	if p.Current() == name {
		return
	}
	if len(p.stack) > 0 {
		p.HidePage(p.stack[len(p.stack)-1])
	}
	p.stack = append(p.stack, name)
	p.ShowPage(name)
	p.raiseOverlays(name)
	p.notify()
}

// Pop removes the top page and shows the previous one.
// Returns the name of the popped page, or empty if stack is empty.
func (p *Pages) Pop() string {
	if len(p.stack) == 0 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) > 0 {
		current := p.stack[len(p.stack)-1]
		p.ShowPage(current)
		p.raiseOverlays(current)
	}
	p.notify()
	return top
}

// PopTo pops pages until name is on top. It does nothing when name is
// not on the stack.
func (p *Pages) PopTo(name string) {
	if !slices.Contains(p.stack, name) {
		return
	}
	for p.Current() != name {
		p.Pop()
	}
}

// Current returns the name of the current (top) page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.ShowPage(name)
	p.raiseOverlays(name)
	p.notify()
}

// ShowOverlay displays name above the stack.
func (p *Pages) ShowOverlay(name string) {
	if !slices.Contains(p.overlays, name) {
		p.overlays = append(p.overlays, name)
	}
	p.ShowPage(name)
	p.SendToFront(name)
}

// HideOverlay hides an overlay shown by ShowOverlay.
func (p *Pages) HideOverlay(name string) {
	p.overlays = slices.DeleteFunc(p.overlays, func(n string) bool { return n == name })
	p.HidePage(name)
}

// OverlayShown reports whether name is currently displayed as an overlay.
func (p *Pages) OverlayShown(name string) bool {
	return slices.Contains(p.overlays, name)
}

func (p *Pages) raiseOverlays(current string) {
	p.SendToFront(current)
	for _, o := range p.overlays {
		p.SendToFront(o)
	}
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
