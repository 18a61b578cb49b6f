package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matheus3301/outreach/internal/status"
)

// User is the signed-in account.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	SendEmail string `json:"send_email"`
}

// Company is an outreach prospect. Optional fields are empty strings when
// the backend sends null.
type Company struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Website       string        `json:"website,omitempty"`
	Address       string        `json:"address,omitempty"`
	Description   string        `json:"description,omitempty"`
	Status        status.Status `json:"status"`
	EmailSubject  string        `json:"email_subject,omitempty"`
	EmailBody     string        `json:"email_body,omitempty"`
	ReplyText     string        `json:"reply_text,omitempty"`
	MessagesCount int           `json:"messages_count"`
	CreatedAt     Timestamp     `json:"created_at"`
	EmailSentAt   Timestamp     `json:"email_sent_at"`
}

// HasLetter reports whether a letter has been generated for the company.
func (c *Company) HasLetter() bool {
	return c.EmailBody != ""
}

// Direction tells which side of the conversation wrote a message.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Message is one entry of a company's chat thread.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Direction Direction `json:"direction"`
	Author    string    `json:"author"`
	CreatedAt Timestamp `json:"created_at"`
}

// Letter is a generated email draft.
type Letter struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AuthResult is returned by login and registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Registration holds the fields of a new account.
type Registration struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	SendEmail string `json:"send_email"`
	Password  string `json:"password"`
}

// SearchResult is the summary of an AI discovery run.
type SearchResult struct {
	Message    string `json:"message"`
	TotalFound int    `json:"total_found"`
}

// ReplyResult is the outcome of a simulated inbound reply.
type ReplyResult struct {
	Message string `json:"message"`
	Reply   string `json:"reply"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Timestamp accepts both RFC 3339 and the zone-less ISO 8601 form the
// backend emits. Zone-less values are taken as UTC.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
