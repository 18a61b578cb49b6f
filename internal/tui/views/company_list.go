package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

// CompanyList is the main table of company cards.
type CompanyList struct {
	*tview.Table
	theme *ui.Theme
	cards []model.Card
	title string
}

// NewCompanyList creates the company table.
func NewCompanyList(theme *ui.Theme) *CompanyList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	return &CompanyList{
		Table: table,
		theme: theme,
	}
}

// Name implements ui.Component.
func (cl *CompanyList) Name() string {
	if cl.title == "" {
		return "Companies"
	}
	return cl.title
}

// Hints implements ui.Component.
func (cl *CompanyList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "0-7", Description: "Status filter", Numeric: true},
	}
}

// Update renders cards under the given title.
func (cl *CompanyList) Update(cards []model.Card, title string, cat *i18n.Catalog) {
	selected := cl.SelectedID()
	cl.cards = cards
	cl.title = title
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" #", 0},
		{" NAME", 2},
		{" " + strings.ToUpper(cat.Text(i18n.LabelCategory)), 1},
		{" CONTACTS", 2},
		{" " + strings.ToUpper(cat.Text(i18n.LabelStatus)), 1},
		{" ✉", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		cl.SetCell(0, col, cell)
	}

	if len(cards) == 0 {
		cl.SetCell(1, 1, tview.NewTableCell(" "+cat.Text(i18n.NoCompanies)).
			SetSelectable(false).
			SetTextColor(cl.theme.MutedColor))
	}

	row := 1
	for _, c := range cards {
		for col, cell := range cardCells(c, cl.theme, cat) {
			cl.SetCell(row, col, cell)
		}
		row++
	}

	cl.SetTitle(fmt.Sprintf(" %s (%d) ", tview.Escape(title), len(cards)))
	cl.restoreSelection(selected)
}

func cardCells(c model.Card, theme *ui.Theme, cat *i18n.Catalog) []*tview.TableCell {
	co := c.Company
	name := escape(oneLine(co.Name))
	if co.Description != "" {
		name += fmt.Sprintf(" [%s]%s[-]", ui.ColorTag(theme.MutedColor), escape(truncate(oneLine(co.Description), 40)))
	}
	messages := ""
	if c.ShowMessages {
		messages = fmt.Sprintf("%d", co.MessagesCount)
	}
	badge := fmt.Sprintf("%s %s", co.Status.Icon(), cat.StatusLabel(co.Status))
	return []*tview.TableCell{
		tview.NewTableCell(fmt.Sprintf(" %d", c.Number)).SetTextColor(theme.CounterColor),
		tview.NewTableCell(" " + name).SetExpansion(2).SetTextColor(theme.FgColor),
		tview.NewTableCell(" " + escape(oneLine(co.Category))).SetExpansion(1).SetTextColor(theme.FgColor),
		tview.NewTableCell(" " + escape(strings.Join(c.Contacts, " · "))).SetExpansion(2).SetTextColor(theme.FgColor),
		tview.NewTableCell(" " + escape(badge)).SetExpansion(1).SetTextColor(theme.StatusColor(co.Status)),
		tview.NewTableCell(messages).SetAlign(tview.AlignRight).SetTextColor(theme.CounterColor),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SelectedID returns the company id under the cursor, 0 when none.
func (cl *CompanyList) SelectedID() int64 {
	row, _ := cl.GetSelection()
	return cl.IDByNumber(row)
}

// IDByNumber returns the company id of the Nth visible card (1-based).
func (cl *CompanyList) IDByNumber(n int) int64 {
	if n < 1 || n > len(cl.cards) {
		return 0
	}
	return cl.cards[n-1].Company.ID
}

func (cl *CompanyList) restoreSelection(id int64) {
	if len(cl.cards) == 0 {
		return
	}
	for i, c := range cl.cards {
		if c.Company.ID == id {
			cl.Select(i+1, 0)
			return
		}
	}
	cl.Select(1, 0)
}
