package i18n

import (
	"testing"
	"time"

	"github.com/matheus3301/outreach/internal/status"
)

func TestFor(t *testing.T) {
	tests := []struct {
		locale string
		want   *Catalog
	}{
		{"ru", russian},
		{"ru-RU", russian},
		{"en", english},
		{"en-US", english},
		{"en-GB", english},
		{"", russian},
		{"!!", russian},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := For(tt.locale); got != tt.want {
				t.Errorf("For(%q) = %v, want %v", tt.locale, got.Tag, tt.want.Tag)
			}
		})
	}
}

func TestEveryStatusHasLabel(t *testing.T) {
	for _, c := range supported {
		for _, s := range status.All() {
			if got := c.StatusLabel(s); got == string(s) || got == "" {
				t.Errorf("%v: no label for %s", c.Tag, s)
			}
		}
	}
}

func TestUnknownStatusLabel(t *testing.T) {
	if got := For("en").StatusLabel("archived"); got != "archived" {
		t.Errorf("StatusLabel(archived) = %q, want raw value", got)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 0, 0, time.Local)
	if got := For("ru").FormatTime(ts); got != "09.03.26, 14:05" {
		t.Errorf("ru FormatTime = %q", got)
	}
	if got := For("en").FormatTime(ts); got != "03/09/26, 14:05" {
		t.Errorf("en FormatTime = %q", got)
	}
	if got := For("ru").FormatTime(time.Time{}); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
}

func TestEveryKeyHasText(t *testing.T) {
	for _, c := range supported {
		for k := FillAllFields; k <= Working; k++ {
			if _, ok := c.texts[k]; !ok {
				t.Errorf("%v: no text for key %d", c.Tag, k)
			}
		}
	}
}

func TestTextFormatting(t *testing.T) {
	if got := For("ru").Text(Searching, "кафе"); got != "Ищем «кафе» через AI..." {
		t.Errorf("Text(Searching) = %q", got)
	}
	if got := For("en").Text(ActionFailed, "boom"); got != "Error: boom" {
		t.Errorf("Text(ActionFailed) = %q", got)
	}
	if got := For("en").Text(Key(9999)); got != "!(9999)" {
		t.Errorf("unknown key = %q", got)
	}
}
