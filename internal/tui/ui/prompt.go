package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode indicates what the prompt input is for.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptSearch
)

// Prompt is a command/search input bar.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	history  []string
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := p.GetText()
			p.SetText("")
			if text != "" && p.mode == PromptSearch {
				p.remember(text)
			}
			if p.onSubmit != nil {
				p.onSubmit(p.mode, text)
			}
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})
	input.SetAutocompleteFunc(func(current string) []string {
		if p.mode != PromptSearch || current == "" {
			return nil
		}
		return p.Suggest(current)
	})

	return p
}

// SetOnSubmit sets the callback when the prompt is submitted. Search
// prompts submit empty text too, so the caller can tell the user.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback when the prompt is cancelled.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate shows the prompt in the specified mode.
func (p *Prompt) Activate(mode PromptMode, title string) {
	p.mode = mode
	p.SetText("")
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
	case PromptSearch:
		p.SetLabel("/")
	}
	p.SetTitle(" " + title + " ")
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}

func (p *Prompt) remember(category string) {
	for i, h := range p.history {
		if h == category {
			p.history = append(p.history[:i], p.history[i+1:]...)
			break
		}
	}
	p.history = append([]string{category}, p.history...)
	if len(p.history) > 20 {
		p.history = p.history[:20]
	}
}

// Suggest returns earlier search categories starting with prefix, most
// recent first.
func (p *Prompt) Suggest(prefix string) []string {
	var out []string
	for _, h := range p.history {
		if len(h) >= len(prefix) && h[:len(prefix)] == prefix {
			out = append(out, h)
		}
	}
	return out
}
