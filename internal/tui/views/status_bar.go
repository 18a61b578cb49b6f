package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the persistent account and activity line.
type StatusBar struct {
	*tview.TextView
	profile string
	account string
	view    string
	busy    bool
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, now: time.Now}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetAccount updates the signed-in account display; empty when signed out.
func (sb *StatusBar) SetAccount(email string) {
	sb.account = email
	sb.render()
}

// SetView updates the current view label, such as the active filter.
func (sb *StatusBar) SetView(label string) {
	sb.view = label
	sb.render()
}

// SetBusy updates the activity indicator.
func (sb *StatusBar) SetBusy(busy bool) {
	sb.busy = busy
	sb.render()
}

// Refresh redraws the clock.
func (sb *StatusBar) Refresh() {
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()
	_, _ = fmt.Fprint(sb, sb.line())
}

func (sb *StatusBar) line() string {
	busyIcon := " "
	if sb.busy {
		busyIcon = "[green]~[-]"
	}
	account := sb.account
	if account == "" {
		account = "-"
	}
	return fmt.Sprintf(" [::b]%s[-:-:-] | %s | %s %s | %s",
		tview.Escape(sb.profile), tview.Escape(account), tview.Escape(sb.view), busyIcon, sb.now().Format("15:04"))
}
