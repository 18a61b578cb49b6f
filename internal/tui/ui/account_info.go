package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// AccountData is what the header shows about the signed-in user.
type AccountData struct {
	Profile   string
	Name      string
	Email     string
	SendEmail string
	Backend   string
	Companies int
}

// AccountInfo displays account metadata in the header.
type AccountInfo struct {
	*tview.TextView
	theme *Theme
}

// NewAccountInfo creates a new account info panel.
func NewAccountInfo(theme *Theme) *AccountInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &AccountInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the account info. User rows are skipped while signed out.
func (ai *AccountInfo) Update(data AccountData) {
	ai.Clear()

	fg := colorName(ai.theme.FgColor)
	ct := colorName(ai.theme.CounterColor)
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		_, _ = fmt.Fprintf(ai, "[%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, label, ct, tview.Escape(value))
	}

	row("Profile:", data.Profile)
	row("Backend:", data.Backend)
	if data.Name == "" {
		return
	}
	row("User:", data.Name)
	row("Login:", data.Email)
	row("Sender:", data.SendEmail)
	row("Total:", fmt.Sprint(data.Companies))
}
