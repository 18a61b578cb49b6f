package views

import (
	"fmt"

	"github.com/matheus3301/outreach/internal/api"
	"github.com/matheus3301/outreach/internal/i18n"
	"github.com/matheus3301/outreach/internal/tui/ui"
	"github.com/rivo/tview"
)

// AuthView holds the login and registration forms.
type AuthView struct {
	*tview.Flex
	theme      *ui.Theme
	cat        *i18n.Catalog
	form       *tview.Form
	errView    *tview.TextView
	register   bool
	busy       bool
	onLogin    func(email, password string)
	onRegister func(reg api.Registration)
}

// NewAuthView creates the auth screen in login mode.
func NewAuthView(theme *ui.Theme, cat *i18n.Catalog) *AuthView {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetTitleColor(theme.TitleColor)
	form.SetFieldBackgroundColor(tview.Styles.MoreContrastBackgroundColor)
	form.SetLabelColor(theme.FgColor)
	form.SetButtonsAlign(tview.AlignCenter)

	errView := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	errView.SetBackgroundColor(theme.BgColor)

	column := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(form, 15, 0, true).
		AddItem(errView, 2, 0, false).
		AddItem(nil, 0, 1, false)

	flex := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(column, 60, 0, true).
		AddItem(nil, 0, 1, false)

	av := &AuthView{
		Flex:    flex,
		theme:   theme,
		cat:     cat,
		form:    form,
		errView: errView,
	}
	av.build()
	return av
}

// Name implements ui.Component.
func (av *AuthView) Name() string {
	if av.register {
		return av.cat.Text(i18n.TitleRegister)
	}
	return av.cat.Text(i18n.TitleLogin)
}

// Hints implements ui.Component.
func (av *AuthView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl-C", Description: "Quit"},
	}
}

// SetOnLogin sets the login submit callback.
func (av *AuthView) SetOnLogin(fn func(email, password string)) {
	av.onLogin = fn
}

// SetOnRegister sets the registration submit callback.
func (av *AuthView) SetOnRegister(fn func(reg api.Registration)) {
	av.onRegister = fn
}

// Registering reports whether the registration form is shown.
func (av *AuthView) Registering() bool {
	return av.register
}

// SetMode switches between the login and registration forms, keeping the
// email typed so far.
func (av *AuthView) SetMode(register bool) {
	if av.register == register {
		return
	}
	email := av.field(i18n.FieldEmail)
	av.register = register
	av.build()
	av.setField(i18n.FieldEmail, email)
	av.SetError("")
}

// SetError shows msg under the form; empty hides it.
func (av *AuthView) SetError(msg string) {
	av.errView.Clear()
	if msg != "" {
		_, _ = fmt.Fprintf(av.errView, "[%s]%s[-]", ui.ColorTag(av.theme.ErrorColor), tview.Escape(msg))
	}
}

// SetBusy disables the submit button while a request is in flight.
func (av *AuthView) SetBusy(busy bool) {
	av.busy = busy
	if b := av.form.GetButton(0); b != nil {
		b.SetDisabled(busy)
		label := av.submitLabel()
		if busy {
			label = av.cat.Text(i18n.Working)
		}
		b.SetLabel(label)
	}
}

// Reset clears every field and the error line.
func (av *AuthView) Reset() {
	av.build()
	av.SetError("")
}

func (av *AuthView) submitLabel() string {
	if av.register {
		return av.cat.Text(i18n.ButtonRegister)
	}
	return av.cat.Text(i18n.ButtonLogin)
}

func (av *AuthView) build() {
	av.form.Clear(true)
	av.form.SetTitle(" " + av.Name() + " ")
	if av.register {
		av.form.AddInputField(av.cat.Text(i18n.FieldName), "", 36, nil, nil)
	}
	av.form.AddInputField(av.cat.Text(i18n.FieldEmail), "", 36, nil, nil)
	if av.register {
		av.form.AddInputField(av.cat.Text(i18n.FieldSendEmail), "", 36, nil, nil)
	}
	av.form.AddPasswordField(av.cat.Text(i18n.FieldPassword), "", 36, '*', nil)

	av.form.AddButton(av.submitLabel(), av.submit)
	if av.register {
		av.form.AddButton(av.cat.Text(i18n.ButtonSwitchToLogin), func() { av.SetMode(false) })
	} else {
		av.form.AddButton(av.cat.Text(i18n.ButtonSwitchToRegister), func() { av.SetMode(true) })
	}
	av.form.SetFocus(0)
	if av.busy {
		av.SetBusy(true)
	}
}

func (av *AuthView) submit() {
	if av.busy {
		return
	}
	if av.register {
		if av.onRegister != nil {
			av.onRegister(api.Registration{
				Name:      av.field(i18n.FieldName),
				Email:     av.field(i18n.FieldEmail),
				SendEmail: av.field(i18n.FieldSendEmail),
				Password:  av.field(i18n.FieldPassword),
			})
		}
		return
	}
	if av.onLogin != nil {
		av.onLogin(av.field(i18n.FieldEmail), av.field(i18n.FieldPassword))
	}
}

func (av *AuthView) field(key i18n.Key) string {
	if in, ok := av.form.GetFormItemByLabel(av.cat.Text(key)).(*tview.InputField); ok {
		return in.GetText()
	}
	return ""
}

func (av *AuthView) setField(key i18n.Key, v string) {
	if in, ok := av.form.GetFormItemByLabel(av.cat.Text(key)).(*tview.InputField); ok {
		in.SetText(v)
	}
}
