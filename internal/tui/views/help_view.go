package views

import (
	"fmt"

	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	k := func(key string) string {
		return fmt.Sprintf("[%s]%s[-:-:-]", ui.ColorTag(hv.theme.MenuKeyColor), tview.Escape(key))
	}

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  %s      Command mode         %s    Cancel / Go back
  %s      AI search            %s      Help
  %s      Quit / Back          %s Quit immediately

  [::b]Company List[-:-:-]

  %s  Open company         %s      Show all (clear filter)
  %s    Filter by status     %s      Reload companies
  %s      Send to all new      %s Move

  [::b]Company Detail[-:-:-]

  %s    Letter / Chat        %s      Generate letter
  %s      Send letter          %s      Change status
  %s      Simulate reply       %s      Focus composer
  %s  Send message (in composer)

  [::b]Commands (: mode)[-:-:-]

  %s    AI search for a category
  %s              Generate and send to all new companies
  %s   Filter the list
  %s              Reload companies
  %s              Sign out
  %s / %s         Show this help
  %s / %s         Quit application
`,
		k(":"), k("Esc"),
		k("/"), k("?"),
		k("q"), k("Ctrl-C"),
		k("Enter"), k("0"),
		k("1-7"), k("r"),
		k("S"), k("j/k"),
		k("Tab"), k("g"),
		k("s"), k("t"),
		k("R"), k("i"),
		k("Enter"),
		k(":search <category>"),
		k(":sendall"),
		k(":filter <status|all>"),
		k(":reload"),
		k(":logout"),
		k(":help"), k(":h"),
		k(":quit"), k(":q"),
	)

	_, _ = fmt.Fprint(hv, help)
}
