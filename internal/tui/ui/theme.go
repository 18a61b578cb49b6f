package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/outreach/internal/status"
)

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor           tcell.Color
	FgColor           tcell.Color
	MutedColor        tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
	OutgoingColor     tcell.Color
	IncomingColor     tcell.Color
	ErrorColor        tcell.Color
	StatusColors      map[status.Status]tcell.Color
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorCadetBlue,
		MutedColor:        tcell.ColorGray,
		BorderColor:       tcell.ColorDodgerBlue,
		BorderFocusColor:  tcell.ColorLightSkyBlue,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorAqua,
		CrumbActiveFg:     tcell.ColorBlack,
		CrumbActiveBg:     tcell.ColorOrange,
		CrumbInactiveFg:   tcell.ColorBlack,
		CrumbInactiveBg:   tcell.ColorAqua,
		MenuKeyColor:      tcell.ColorDodgerBlue,
		NumericKeyColor:   tcell.ColorFuchsia,
		TitleColor:        tcell.ColorFuchsia,
		CounterColor:      tcell.ColorPapayaWhip,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorDodgerBlue,
		OutgoingColor:     tcell.ColorMediumSeaGreen,
		IncomingColor:     tcell.ColorLightSkyBlue,
		ErrorColor:        tcell.ColorOrangeRed,
		StatusColors: map[status.Status]tcell.Color{
			status.New:        tcell.ColorSilver,
			status.EmailSent:  tcell.ColorDodgerBlue,
			status.Replied:    tcell.ColorMediumPurple,
			status.InProgress: tcell.ColorGold,
			status.Interested: tcell.ColorMediumSeaGreen,
			status.Rejected:   tcell.ColorOrangeRed,
			status.Closed:     tcell.ColorGray,
		},
	}
}

// StatusColor returns the badge color of s.
func (t *Theme) StatusColor(s status.Status) tcell.Color {
	if c, ok := t.StatusColors[s]; ok {
		return c
	}
	return t.FgColor
}

// ColorTag returns c as a tview color tag value.
func ColorTag(c tcell.Color) string {
	return colorName(c)
}
