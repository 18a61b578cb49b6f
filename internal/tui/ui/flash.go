package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// FlashLevel is the severity of a notification.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashErr
)

// FlashBar shows the current notification on one line.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates a flash notification bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders msg, clearing the bar when msg is empty.
func (fb *FlashBar) Update(msg string, level FlashLevel) {
	fb.Clear()
	if msg == "" {
		return
	}
	color := colorName(fb.theme.FlashInfoColor)
	if level == FlashErr {
		color = colorName(fb.theme.FlashErrColor)
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s[-]", color, tview.Escape(msg))
}
