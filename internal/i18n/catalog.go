package i18n

import (
	"time"

	"github.com/matheus3301/outreach/internal/status"
	"golang.org/x/text/language"
)

// Catalog holds the user-facing labels for one language.
type Catalog struct {
	Tag        language.Tag
	AllLabel   string
	timeLayout string
	statuses   map[status.Status]string
	texts      map[Key]string
}

var russian = &Catalog{
	Tag:        language.Russian,
	AllLabel:   "Все диалоги",
	timeLayout: "02.01.06, 15:04",
	texts:      russianTexts,
	statuses: map[status.Status]string{
		status.New:        "Новые",
		status.EmailSent:  "Письмо отправлено",
		status.Replied:    "Ответили",
		status.InProgress: "В работе",
		status.Interested: "Заинтересованы",
		status.Rejected:   "Отказ",
		status.Closed:     "Закрыто",
	},
}

var english = &Catalog{
	Tag:        language.English,
	AllLabel:   "All conversations",
	timeLayout: "01/02/06, 15:04",
	texts:      englishTexts,
	statuses: map[status.Status]string{
		status.New:        "New",
		status.EmailSent:  "Email sent",
		status.Replied:    "Replied",
		status.InProgress: "In progress",
		status.Interested: "Interested",
		status.Rejected:   "Rejected",
		status.Closed:     "Closed",
	},
}

// The first entry is the fallback when nothing matches.
var supported = []*Catalog{russian, english}

var matcher = language.NewMatcher([]language.Tag{russian.Tag, english.Tag})

// For returns the catalog best matching a BCP 47 locale string such as
// "ru", "en-US" or "ru_RU". Unknown or malformed locales get Russian.
func For(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return russian
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return russian
	}
	return supported[idx]
}

// StatusLabel returns the localized label for s, or the raw value if the
// status is unknown.
func (c *Catalog) StatusLabel(s status.Status) string {
	if l, ok := c.statuses[s]; ok {
		return l
	}
	return string(s)
}

// FormatTime renders t in local time using the catalog's layout. The zero
// time renders as an empty string.
func (c *Catalog) FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(c.timeLayout)
}
