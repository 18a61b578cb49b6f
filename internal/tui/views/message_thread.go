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

// MessageThread displays a company's chat and the composer.
type MessageThread struct {
	*tview.Flex
	theme    *ui.Theme
	cat      *i18n.Catalog
	messages *tview.TextView
	composer *tview.InputField
	onSend   func()
	onDraft  func(text string)
}

// NewMessageThread creates a new message thread view.
func NewMessageThread(theme *ui.Theme, cat *i18n.Catalog) *MessageThread {
	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)
	messages.SetBorderColor(theme.BorderColor)
	messages.SetBackgroundColor(theme.BgColor)
	messages.SetTextColor(theme.FgColor)
	messages.SetTitleColor(theme.TitleColor)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	composer.SetBorder(true)
	composer.SetBorderColor(theme.BorderColor)
	composer.SetBackgroundColor(theme.BgColor)
	composer.SetFieldBackgroundColor(theme.BgColor)
	composer.SetFieldTextColor(theme.FgColor)
	composer.SetLabelColor(theme.MenuKeyColor)
	composer.SetTitle(" " + cat.Text(i18n.ComposerHint) + " ")
	composer.SetTitleColor(theme.MutedColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(messages, 0, 1, false).
		AddItem(composer, 3, 0, true)

	mt := &MessageThread{
		Flex:     flex,
		theme:    theme,
		cat:      cat,
		messages: messages,
		composer: composer,
	}

	composer.SetChangedFunc(func(text string) {
		if mt.onDraft != nil {
			mt.onDraft(text)
		}
	})
	composer.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && mt.onSend != nil {
			mt.onSend()
		}
	})

	return mt
}

// SetOnSend sets the callback fired on Enter in the composer. The text
// itself is read from the draft.
func (mt *MessageThread) SetOnSend(fn func()) {
	mt.onSend = fn
}

// SetOnDraft sets the callback fired on every composer edit.
func (mt *MessageThread) SetOnDraft(fn func(text string)) {
	mt.onDraft = fn
}

// SetDraft replaces the composer text when it differs.
func (mt *MessageThread) SetDraft(text string) {
	if mt.composer.GetText() != text {
		mt.composer.SetText(text)
	}
}

// Update renders the thread and scrolls to the newest message. A nil
// slice means the thread is still loading.
func (mt *MessageThread) Update(title string, msgs []model.ChatLine, loaded bool) {
	mt.messages.SetTitle(" " + tview.Escape(title) + " ")
	mt.messages.Clear()
	switch {
	case !loaded:
		_, _ = fmt.Fprintf(mt.messages, "\n [%s]%s[-]", ui.ColorTag(mt.theme.MutedColor), mt.cat.Text(i18n.Working))
	case len(msgs) == 0:
		_, _ = fmt.Fprintf(mt.messages, "\n [%s]%s[-]", ui.ColorTag(mt.theme.MutedColor), mt.cat.Text(i18n.NoMessages))
	default:
		_, _ = fmt.Fprint(mt.messages, renderChat(msgs, mt.theme))
	}
	mt.messages.ScrollToEnd()
}

// renderChat turns chat lines into tview markup. Backend text is escaped,
// so it is never interpreted as tags.
func renderChat(lines []model.ChatLine, theme *ui.Theme) string {
	var b strings.Builder
	for _, l := range lines {
		color, marker, indent := theme.IncomingColor, "↩", ""
		if l.Outgoing {
			color, marker, indent = theme.OutgoingColor, "➤", "    "
		}
		fmt.Fprintf(&b, "%s[%s::b]%s %s[-:-:-]", indent, ui.ColorTag(color), marker, escape(l.Author))
		if l.Time != "" {
			fmt.Fprintf(&b, " [%s]· %s[-]", ui.ColorTag(theme.MutedColor), l.Time)
		}
		b.WriteString("\n")
		for _, line := range strings.Split(escape(l.Text), "\n") {
			b.WriteString(indent + line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Composer returns the composer input field (for focus management).
func (mt *MessageThread) Composer() *tview.InputField {
	return mt.composer
}

// Messages returns the messages text view (for focus management).
func (mt *MessageThread) Messages() *tview.TextView {
	return mt.messages
}
