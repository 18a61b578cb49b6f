package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs shows the page trail followed by the scope being browsed: the
// active status filter and, inside the detail page, the company name.
type Crumbs struct {
	*tview.TextView
	theme  *Theme
	labels []string
	scope  []string
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView: tv,
		theme:    theme,
	}
}

// Update replaces the page trail. Labels are plain text.
func (c *Crumbs) Update(labels []string) {
	c.labels = slices.Clone(labels)
	c.render()
}

// SetScope replaces the scope segments. Empty segments are skipped.
func (c *Crumbs) SetScope(parts ...string) {
	parts = slices.DeleteFunc(slices.Clone(parts), func(p string) bool { return p == "" })
	if slices.Equal(parts, c.scope) {
		return
	}
	c.scope = parts
	c.render()
}

func (c *Crumbs) render() {
	c.Clear()
	if len(c.labels) == 0 {
		return
	}

	active := fmt.Sprintf("[%s:%s:b]", colorName(c.theme.CrumbActiveFg), colorName(c.theme.CrumbActiveBg))
	inactive := fmt.Sprintf("[%s:%s:]", colorName(c.theme.CrumbInactiveFg), colorName(c.theme.CrumbInactiveBg))
	parts := make([]string, 0, len(c.labels))
	for i, name := range c.labels {
		tag := inactive
		if i == len(c.labels)-1 {
			tag = active
		}
		parts = append(parts, tag+" "+tview.Escape(name)+" [-:-:-]")
	}
	line := strings.Join(parts, " > ")

	if len(c.scope) > 0 {
		escaped := make([]string, len(c.scope))
		for i, p := range c.scope {
			escaped[i] = tview.Escape(p)
		}
		line += fmt.Sprintf("  [%s]%s[-]", colorName(c.theme.MutedColor), strings.Join(escaped, " / "))
	}
	_, _ = fmt.Fprint(c, line)
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
