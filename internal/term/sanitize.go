// Package term cleans backend text before it reaches a terminal.
package term

import (
	"strings"
	"unicode/utf8"
)

// Sanitize removes codepoints that break terminal rendering or could drive
// the terminal itself:
//   - C0 and C1 control characters other than newline and tab, ESC included
//   - skin tone modifiers (U+1F3FB..U+1F3FF)
//   - the zero width joiner (U+200D)
//   - variation selectors (U+FE00..U+FE0F, U+E0100..U+E01EF)
//
// Carriage returns are dropped so CRLF bodies keep their line breaks.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if !dropped(r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

// Line sanitizes s and collapses all whitespace, newlines and tabs
// included, into single spaces. It is meant for table cells.
func Line(s string) string {
	return strings.Join(strings.Fields(Sanitize(s)), " ")
}

func dropped(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	case r == 0x200D:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	default:
		return false
	}
}
