package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
	"github.com/matheus3301/outreach/internal/tui/model"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

const (
	detailPageLetter = "letter"
	detailPageChat   = "chat"
)

// CompanyDetail shows one company with its letter and chat tabs.
type CompanyDetail struct {
	*tview.Flex
	theme   *ui.Theme
	cat     *i18n.Catalog
	info    *tview.TextView
	statusD *tview.DropDown
	tabs    *tview.TextView
	body    *tview.Pages
	letter  *tview.TextView
	actions *tview.Form
	thread  *MessageThread

	// syncing suppresses the dropdown callback while Update moves it.
	syncing bool
	view    model.DetailView

	onGenerate func()
	onSend     func()
	onSimulate func()
	onStatus   func(status.Status)
}

// NewCompanyDetail creates the detail page.
func NewCompanyDetail(theme *ui.Theme, cat *i18n.Catalog) *CompanyDetail {
	info := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	info.SetBorder(true)
	info.SetBorderColor(theme.BorderColor)
	info.SetBackgroundColor(theme.BgColor)
	info.SetTextColor(theme.FgColor)
	info.SetTitleColor(theme.TitleColor)

	statusD := tview.NewDropDown().
		SetLabel(" " + cat.Text(i18n.LabelStatus) + ": ")
	statusD.SetBackgroundColor(theme.BgColor)
	statusD.SetLabelColor(theme.MenuKeyColor)
	statusD.SetFieldBackgroundColor(theme.BgColor)
	statusD.SetFieldTextColor(theme.FgColor)

	tabs := tview.NewTextView().SetDynamicColors(true)
	tabs.SetBackgroundColor(theme.BgColor)

	letter := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	letter.SetBorder(true)
	letter.SetBorderColor(theme.BorderColor)
	letter.SetBackgroundColor(theme.BgColor)
	letter.SetTextColor(theme.FgColor)

	actions := tview.NewForm().
		SetHorizontal(true).
		SetButtonsAlign(tview.AlignLeft)
	actions.SetBackgroundColor(theme.BgColor)
	actions.SetButtonBackgroundColor(theme.BorderColor)
	actions.SetButtonTextColor(theme.BgColor)

	letterPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(letter, 0, 1, false).
		AddItem(actions, 3, 0, true)

	thread := NewMessageThread(theme, cat)

	body := tview.NewPages().
		AddPage(detailPageLetter, letterPage, true, true).
		AddPage(detailPageChat, thread, true, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(info, 9, 0, false).
		AddItem(statusD, 1, 0, false).
		AddItem(tabs, 1, 0, false).
		AddItem(body, 0, 1, true)

	cd := &CompanyDetail{
		Flex:    flex,
		theme:   theme,
		cat:     cat,
		info:    info,
		statusD: statusD,
		tabs:    tabs,
		body:    body,
		letter:  letter,
		actions: actions,
		thread:  thread,
	}

	options := make([]string, 0, len(status.All()))
	for _, s := range status.All() {
		options = append(options, s.Icon()+" "+cat.StatusLabel(s))
	}
	statusD.SetOptions(options, func(_ string, index int) {
		if cd.syncing || cd.onStatus == nil {
			return
		}
		s, ok := status.At(index + 1)
		if ok && s != cd.view.Company.Status {
			cd.onStatus(s)
		}
	})

	return cd
}

// Name implements ui.Component.
func (cd *CompanyDetail) Name() string {
	if cd.view.Company.Name == "" {
		return "Company"
	}
	return cd.view.Company.Name
}

// Hints implements ui.Component.
func (cd *CompanyDetail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Letter/Chat"},
		{Key: "g", Description: "Generate"},
		{Key: "s", Description: "Send letter"},
		{Key: "t", Description: "Status"},
		{Key: "R", Description: "Simulate reply"},
		{Key: "i", Description: "Compose"},
		{Key: "Esc", Description: "Back"},
	}
}

// SetOnGenerate sets the generate callback.
func (cd *CompanyDetail) SetOnGenerate(fn func()) { cd.onGenerate = fn }

// SetOnSend sets the send-letter callback.
func (cd *CompanyDetail) SetOnSend(fn func()) { cd.onSend = fn }

// SetOnSimulate sets the simulate-reply callback.
func (cd *CompanyDetail) SetOnSimulate(fn func()) { cd.onSimulate = fn }

// SetOnStatus sets the callback fired when the user picks a new status.
func (cd *CompanyDetail) SetOnStatus(fn func(status.Status)) { cd.onStatus = fn }

// Thread returns the embedded chat view.
func (cd *CompanyDetail) Thread() *MessageThread { return cd.thread }

// StatusDropDown returns the status selector (for focus management).
func (cd *CompanyDetail) StatusDropDown() *tview.DropDown { return cd.statusD }

// Actions returns the letter action buttons (for focus management).
func (cd *CompanyDetail) Actions() *tview.Form { return cd.actions }

// View returns the last rendered detail.
func (cd *CompanyDetail) View() model.DetailView { return cd.view }

// Update renders v. Buttons are rebuilt so only the applicable ones show.
func (cd *CompanyDetail) Update(v model.DetailView) {
	cd.view = v
	c := v.Company

	cd.info.SetTitle(" " + escape(oneLine(c.Name)) + " ")
	cd.info.Clear()
	_, _ = fmt.Fprint(cd.info, renderCompanyInfo(v, cd.theme, cd.cat))

	cd.syncing = true
	cd.statusD.SetCurrentOption(c.Status.Index())
	cd.syncing = false

	cd.tabs.Clear()
	_, _ = fmt.Fprint(cd.tabs, renderTabs(v.Tab, cd.theme, cd.cat))

	cd.letter.SetTitle(" " + cd.cat.Text(i18n.TabLetter) + " ")
	cd.letter.Clear()
	_, _ = fmt.Fprint(cd.letter, renderLetter(c.EmailSubject, c.EmailBody, cd.theme, cd.cat))
	cd.letter.ScrollToBeginning()

	cd.actions.ClearButtons()
	if v.ShowGenerate {
		label := cd.cat.Text(i18n.ButtonGenerate)
		if v.Generating {
			label = cd.cat.Text(i18n.ButtonGenerating)
		}
		cd.actions.AddButton(label, func() { call(cd.onGenerate) })
		cd.actions.GetButton(cd.actions.GetButtonCount() - 1).SetDisabled(v.Generating)
	}
	if v.ShowSend {
		label := cd.cat.Text(i18n.ButtonSend)
		if v.Sending {
			label = cd.cat.Text(i18n.ButtonSending)
		}
		cd.actions.AddButton(label, func() { call(cd.onSend) })
		cd.actions.GetButton(cd.actions.GetButtonCount() - 1).SetDisabled(v.Sending)
	}
	cd.actions.AddButton(cd.cat.Text(i18n.ButtonSimulateReply), func() { call(cd.onSimulate) })

	var lines []model.ChatLine
	if v.Chat != nil {
		lines = model.ChatLines(v.Chat, cd.cat)
	}
	cd.thread.Update(cd.cat.Text(i18n.TabChat), lines, v.Chat != nil)

	if v.Tab == model.TabChat {
		cd.body.SwitchToPage(detailPageChat)
	} else {
		cd.body.SwitchToPage(detailPageLetter)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func renderCompanyInfo(v model.DetailView, theme *ui.Theme, cat *i18n.Catalog) string {
	c := v.Company
	muted := ui.ColorTag(theme.MutedColor)
	var b strings.Builder
	fmt.Fprintf(&b, " [%s]%s %s[-]\n", ui.ColorTag(theme.StatusColor(c.Status)), c.Status.Icon(), tview.Escape(cat.StatusLabel(c.Status)))
	field := func(label, value string) {
		fmt.Fprintf(&b, " [%s]%s:[-] %s\n", muted, label, escape(oneLine(value)))
	}
	field(cat.Text(i18n.LabelCategory), c.Category)
	field(cat.Text(i18n.FieldEmail), v.Email)
	field(cat.Text(i18n.LabelPhone), v.Phone)
	field(cat.Text(i18n.LabelWebsite), v.Website)
	if c.Address != "" {
		field(cat.Text(i18n.LabelAddress), c.Address)
	}
	if created := cat.FormatTime(c.CreatedAt.Time); created != "" {
		field(cat.Text(i18n.LabelCreated), created)
	}
	if sent := cat.FormatTime(c.EmailSentAt.Time); sent != "" {
		field(cat.Text(i18n.LabelSentAt), sent)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "\n %s\n", escape(c.Description))
	}
	return b.String()
}

func renderTabs(active model.Tab, theme *ui.Theme, cat *i18n.Catalog) string {
	tab := func(t model.Tab, label string) string {
		if t == active {
			return fmt.Sprintf("[%s:%s:b] %s [-:-:-]", ui.ColorTag(theme.CrumbActiveFg), ui.ColorTag(theme.CrumbActiveBg), label)
		}
		return fmt.Sprintf("[%s:%s:-] %s [-:-:-]", ui.ColorTag(theme.CrumbInactiveFg), ui.ColorTag(theme.CrumbInactiveBg), label)
	}
	return " " + tab(model.TabLetter, cat.Text(i18n.TabLetter)) + " " + tab(model.TabChat, cat.Text(i18n.TabChat))
}

func renderLetter(subject, body string, theme *ui.Theme, cat *i18n.Catalog) string {
	if body == "" {
		return fmt.Sprintf("\n [%s]%s[-]", ui.ColorTag(theme.MutedColor), cat.Text(i18n.NoLetter))
	}
	var b strings.Builder
	if subject != "" {
		fmt.Fprintf(&b, " [%s::b]%s:[-:-:-] %s\n\n", ui.ColorTag(theme.MenuKeyColor), cat.Text(i18n.LabelSubject), escape(oneLine(subject)))
	}
	for _, line := range strings.Split(escape(body), "\n") {
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}
