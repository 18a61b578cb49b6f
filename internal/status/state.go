package status

import (
	"fmt"
	"slices"
)

// Status is a company's position in the outreach pipeline.
type Status string

const (
	New        Status = "new"
	EmailSent  Status = "email_sent"
	Replied    Status = "replied"
	InProgress Status = "in_progress"
	Interested Status = "interested"
	Rejected   Status = "rejected"
	Closed     Status = "closed"
)

// order is the fixed navigation order of the pipeline.
var order = []Status{New, EmailSent, Replied, InProgress, Interested, Rejected, Closed}

var icons = map[Status]string{
	New:        "○",
	EmailSent:  "➤",
	Replied:    "↩",
	InProgress: "◷",
	Interested: "★",
	Rejected:   "✗",
	Closed:     "▣",
}

// All returns every status in navigation order. The slice is a copy.
func All() []Status {
	return slices.Clone(order)
}

// Valid reports whether s is one of the seven pipeline members.
func (s Status) Valid() bool {
	return slices.Contains(order, s)
}

// Index returns the navigation position of s, or -1 when s is unknown.
func (s Status) Index() int {
	return slices.Index(order, s)
}

// Icon returns the badge glyph for s.
func (s Status) Icon() string {
	if icon, ok := icons[s]; ok {
		return icon
	}
	return "?"
}

func (s Status) String() string { return string(s) }

// Parse converts a wire value into a Status.
func Parse(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// UnmarshalText accepts only pipeline members, so a decoded company always
// carries one of the seven statuses.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// At returns the status at a 1-based navigation position, as used by the
// numeric filter keys.
func At(n int) (Status, bool) {
	if n < 1 || n > len(order) {
		return "", false
	}
	return order[n-1], true
}
