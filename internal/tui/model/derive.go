package model

import (
	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/status"
)

// Placeholder stands in for an absent contact field in the detail view.
const Placeholder = "—"

// Card is one row of the company list.
type Card struct {
	// Number is 1-based within the filtered view.
	Number  int
	Company api.Company
	// Contacts holds the present fields among email, phone and website.
	Contacts     []string
	ShowMessages bool
}

// VisibleCards filters the store by the current filter, keeping store order.
func VisibleCards(s State) []Card {
	cards := make([]Card, 0, len(s.Companies))
	for _, c := range s.Companies {
		if s.Filter != nil && c.Status != *s.Filter {
			continue
		}
		var contacts []string
		for _, v := range []string{c.Email, c.Phone, c.Website} {
			if v != "" {
				contacts = append(contacts, v)
			}
		}
		cards = append(cards, Card{
			Number:       len(cards) + 1,
			Company:      c,
			Contacts:     contacts,
			ShowMessages: c.MessagesCount > 0,
		})
	}
	return cards
}

// StatusCounts holds the sidebar numbers.
type StatusCounts struct {
	All      int
	ByStatus map[status.Status]int
}

// Counts tallies companies per status. Every pipeline status is present
// in ByStatus, zero when unused.
func Counts(companies []api.Company) StatusCounts {
	out := StatusCounts{All: len(companies), ByStatus: make(map[status.Status]int, 7)}
	for _, s := range status.All() {
		out.ByStatus[s] = 0
	}
	for _, c := range companies {
		out.ByStatus[c.Status]++
	}
	return out
}

// DetailView is the derived content of the detail modal.
type DetailView struct {
	Company api.Company
	Tab     Tab

	Email   string
	Phone   string
	Website string

	HasLetter    bool
	ShowGenerate bool
	ShowSend     bool

	Generating bool
	Sending    bool

	// Chat is the thread of this company, nil until loaded.
	Chat []api.Message
}

// ViewDetail derives the modal content. ok is false when no modal is open
// or the company left the store.
func ViewDetail(s State) (v DetailView, ok bool) {
	if s.Detail == nil {
		return DetailView{}, false
	}
	c, found := s.Company(s.Detail.CompanyID)
	if !found {
		return DetailView{}, false
	}
	v = DetailView{
		Company:    c,
		Tab:        s.Detail.Tab,
		Email:      orPlaceholder(c.Email),
		Phone:      orPlaceholder(c.Phone),
		Website:    orPlaceholder(c.Website),
		HasLetter:  c.HasLetter(),
		Generating: s.Busy[ActGenerate],
		Sending:    s.Busy[ActSendEmail],
	}
	v.ShowGenerate = !v.HasLetter
	v.ShowSend = v.HasLetter && c.Status == status.New
	if s.Chat.CompanyID == c.ID && s.Chat.Loaded {
		v.Chat = s.Chat.Messages
		if v.Chat == nil {
			v.Chat = []api.Message{}
		}
	}
	return v, true
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}

// ChatLine is one rendered message. Text is raw; views escape it.
type ChatLine struct {
	Outgoing bool
	Author   string
	Time     string
	Text     string
}

// ChatLines renders msgs in server order.
func ChatLines(msgs []api.Message, cat *i18n.Catalog) []ChatLine {
	lines := make([]ChatLine, len(msgs))
	for i, m := range msgs {
		lines[i] = ChatLine{
			Outgoing: m.Direction == api.Outgoing,
			Author:   m.Author,
			Time:     cat.FormatTime(m.CreatedAt.Time),
			Text:     m.Text,
		}
	}
	return lines
}
