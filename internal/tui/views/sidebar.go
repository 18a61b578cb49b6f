package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

// Sidebar lists "all" plus the seven statuses with their counts. Row 0 is
// "all", row n is status.At(n).
type Sidebar struct {
	*tview.Table
	theme    *ui.Theme
	onFilter func(s *status.Status)
}

// NewSidebar creates the status navigation.
func NewSidebar(theme *ui.Theme) *Sidebar {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	sb := &Sidebar{Table: table, theme: theme}
	table.SetSelectedFunc(func(row, _ int) {
		if sb.onFilter != nil {
			sb.onFilter(FilterForRow(row))
		}
	})
	return sb
}

// SetOnFilter sets the callback fired when a row is chosen.
func (sb *Sidebar) SetOnFilter(fn func(s *status.Status)) {
	sb.onFilter = fn
}

// FilterForRow maps a sidebar row to a filter; row 0 and out-of-range
// rows mean "all".
func FilterForRow(row int) *status.Status {
	s, ok := status.At(row)
	if !ok {
		return nil
	}
	return &s
}

// Update renders counts and marks the active filter.
func (sb *Sidebar) Update(counts model.StatusCounts, filter *status.Status, cat *i18n.Catalog) {
	sb.Clear()
	sb.SetTitle(" " + cat.Text(i18n.LabelStatus) + " ")
	active := 0
	sb.setRow(0, "0", "◆", cat.AllLabel, counts.All, sb.theme.FgColor)
	for i, s := range status.All() {
		sb.setRow(i+1, fmt.Sprint(i+1), s.Icon(), cat.StatusLabel(s), counts.ByStatus[s], sb.theme.StatusColor(s))
		if filter != nil && *filter == s {
			active = i + 1
		}
	}
	sb.Select(active, 0)
}

func (sb *Sidebar) setRow(row int, key, icon, label string, count int, color tcell.Color) {
	sb.SetCell(row, 0, tview.NewTableCell(" "+key).SetTextColor(sb.theme.NumericKeyColor))
	sb.SetCell(row, 1, tview.NewTableCell(icon+" "+tview.Escape(label)).SetExpansion(1).SetTextColor(color))
	sb.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d ", count)).SetAlign(tview.AlignRight).SetTextColor(sb.theme.CounterColor))
}
