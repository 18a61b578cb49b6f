package model

import (
	"maps"
	"slices"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/status"
)

// Tab is the visible half of the detail modal.
type Tab int

const (
	TabLetter Tab = iota
	TabChat
)

func (t Tab) String() string {
	if t == TabChat {
		return "chat"
	}
	return "letter"
}

// Action identifies a user-triggered operation. It keys both the busy set
// and the consistency policy table.
type Action string

const (
	ActLogin         Action = "login"
	ActRegister      Action = "register"
	ActGenerate      Action = "generate"
	ActSendEmail     Action = "send_email"
	ActSetStatus     Action = "set_status"
	ActSendChat      Action = "send_chat"
	ActSimulateReply Action = "simulate_reply"
	ActSearch        Action = "search"
	ActSendAll       Action = "send_all"
)

// OpenDetail is the company shown in the detail modal.
type OpenDetail struct {
	CompanyID int64
	Tab       Tab
}

// Chat is the last loaded thread.
type Chat struct {
	CompanyID int64
	Messages  []api.Message
	Loaded    bool
}

// State is everything the client knows. Views render from a Snapshot of
// it and never hold on to entries between renders.
type State struct {
	User      *api.User
	Companies []api.Company
	// Loaded is false until the first successful company load.
	Loaded bool
	// Filter is nil for "all".
	Filter    *status.Status
	Detail    *OpenDetail
	Chat      Chat
	Draft     string
	AuthError string
	Busy      map[Action]bool
	// Loader is the text of the blocking progress indicator, empty when
	// none is shown.
	Loader string
}

// SignedIn reports whether a user is resolved.
func (s State) SignedIn() bool {
	return s.User != nil
}

// Company looks an entry up by id.
func (s State) Company(id int64) (api.Company, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return api.Company{}, false
	}
	return s.Companies[i], true
}

func (s *State) indexOf(id int64) int {
	return slices.IndexFunc(s.Companies, func(c api.Company) bool { return c.ID == id })
}

func (s *State) clone() State {
	out := *s
	out.Companies = slices.Clone(s.Companies)
	out.Chat.Messages = slices.Clone(s.Chat.Messages)
	out.Busy = maps.Clone(s.Busy)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Filter != nil {
		f := *s.Filter
		out.Filter = &f
	}
	if s.Detail != nil {
		d := *s.Detail
		out.Detail = &d
	}
	return out
}
