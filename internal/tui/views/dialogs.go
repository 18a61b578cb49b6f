package views

import (
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/term"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

// Loader is the blocking overlay shown during search and bulk send.
type Loader struct {
	*tview.Modal
}

// NewLoader creates the loader overlay.
func NewLoader(theme *ui.Theme) *Loader {
	m := tview.NewModal()
	m.SetBackgroundColor(theme.BgColor)
	m.SetTextColor(theme.FgColor)
	m.SetBorderColor(theme.BorderFocusColor)
	return &Loader{Modal: m}
}

// SetMessage replaces the loader text.
func (l *Loader) SetMessage(text string) {
	l.SetText("⏳ " + term.Sanitize(text))
}

// Confirm asks a yes/no question. Only one question is pending at a time.
type Confirm struct {
	*tview.Modal
	answer func(yes bool)
}

// NewConfirm creates the confirmation overlay.
func NewConfirm(theme *ui.Theme, cat *i18n.Catalog) *Confirm {
	m := tview.NewModal().
		AddButtons([]string{cat.Text(i18n.ButtonYes), cat.Text(i18n.ButtonNo)})
	m.SetBackgroundColor(theme.BgColor)
	m.SetTextColor(theme.FgColor)
	m.SetBorderColor(theme.BorderFocusColor)
	m.SetButtonBackgroundColor(theme.BorderColor)
	m.SetButtonTextColor(theme.BgColor)

	c := &Confirm{Modal: m}
	m.SetDoneFunc(func(index int, _ string) {
		c.resolve(index == 0)
	})
	return c
}

// Ask shows question and arranges for answer to be called once.
func (c *Confirm) Ask(question string, answer func(yes bool)) {
	c.resolve(false)
	c.answer = answer
	c.SetText(term.Sanitize(question))
	c.SetFocus(1)
}

// Cancel answers a pending question with no.
func (c *Confirm) Cancel() {
	c.resolve(false)
}

// Pending reports whether a question awaits an answer.
func (c *Confirm) Pending() bool {
	return c.answer != nil
}

func (c *Confirm) resolve(yes bool) {
	fn := c.answer
	c.answer = nil
	if fn != nil {
		fn(yes)
	}
}
