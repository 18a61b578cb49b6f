package views

import (
	"github.com/matheus3301/outreach/internal/term"
	"github.com/rivo/tview"
)

// escape makes backend text safe to embed in tview markup. Newlines are
// kept as line breaks.
func escape(s string) string {
	return tview.Escape(term.Sanitize(s))
}

// oneLine collapses s for table cells.
func oneLine(s string) string {
	return term.Line(s)
}
