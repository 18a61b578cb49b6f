package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints in a vertical list.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders menu hints in columns of rows lines each.
func (m *Menu) Update(hints []MenuHint, rows int) {
	m.Clear()
	if rows < 1 {
		rows = 1
	}

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	lines := make([]string, rows)
	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		lines[i%rows] += fmt.Sprintf("[%s::b]%-9s[-:-:-] %-18s", kc, "<"+h.Key+">", h.Description)
	}
	for _, l := range lines {
		_, _ = fmt.Fprintln(m, l)
	}
}
