package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`null`, time.Time{}},
		{`""`, time.Time{}},
		{`"2024-03-05T14:07:09"`, time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)},
		{`"2024-03-05T14:07:09.123456"`, time.Date(2024, 3, 5, 14, 7, 9, 123456000, time.UTC)},
		{`"2024-03-05T14:07:09Z"`, time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)},
		{`"2024-03-05 14:07:09"`, time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if !ts.Equal(tt.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, ts.Time, tt.want)
		}
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompanyNullFields(t *testing.T) {
	raw := `{"id":7,"name":"Acme","category":"cafes","email":null,"phone":null,
		"status":"new","email_body":null,"messages_count":0,"created_at":"2024-01-01T10:00:00","email_sent_at":null}`
	var c Company
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatal(err)
	}
	if c.Email != "" || c.HasLetter() || !c.EmailSentAt.IsZero() {
		t.Errorf("unexpected %+v", c)
	}
}

func TestParseDetail(t *testing.T) {
	tests := map[string]string{
		`{"detail":"Company not found"}`: "Company not found",
		`{"detail":[{"msg":"bad"}]}`:     "",
		`Internal Server Error`:          "",
		``:                               "",
	}
	for body, want := range tests {
		if got := parseDetail([]byte(body)); got != want {
			t.Errorf("parseDetail(%q) = %q, want %q", body, got, want)
		}
	}
}

func TestCompanyRejectsUnknownStatus(t *testing.T) {
	var list []Company
	raw := `[{"id":1,"name":"Acme","status":"new"},{"id":2,"name":"Globex","status":"archived"}]`
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		t.Fatal("expected error for status outside the pipeline")
	}
}
