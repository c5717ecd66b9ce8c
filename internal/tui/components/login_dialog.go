package components

import (
	"github.com/rivo/tview"

	"redline/internal/auth"
	"redline/internal/game"
	"redline/internal/theme"
)

// LoginCallbacks are invoked by the login dialog buttons.
type LoginCallbacks struct {
	Login    func(username, password string, fresh bool)
	Register func(username, password, confirm string)
	Quit     func()
}

// LoginDialog is the account screen shown before a session starts.
type LoginDialog struct {
	form     *tview.Form
	strength *tview.TextView
	message  *tview.TextView
	view     tview.Primitive

	username *tview.InputField
	password *tview.InputField
	confirm  *tview.InputField
	fresh    *tview.Checkbox
}

// StrengthText colors a strength rating for the meter.
func StrengthText(t theme.Theme, s auth.Strength) string {
	if s == auth.StrengthNone {
		return ""
	}
	style := game.StyleError
	switch s {
	case auth.StrengthMedium:
		style = game.StyleWarning
	case auth.StrengthStrong, auth.StrengthVeryStrong:
		style = game.StyleSuccess
	}
	return "Strength: " + theme.Tag(t, style) + tview.Escape(s.String()) + "[-]"
}

// NewLoginDialog creates the dialog.
func NewLoginDialog(cb LoginCallbacks) *LoginDialog {
	ld := &LoginDialog{
		form:     theme.NewForm(),
		strength: theme.NewStatusBar(),
		message:  theme.NewStatusBar(),
	}
	ld.form.SetTitle(" CRIMSON REDLINE :: SECURE LOGIN ")
	ld.form.SetTitleAlign(tview.AlignCenter)

	ld.form.AddInputField("Agent ID:", "", 32, nil, nil)
	ld.form.AddPasswordField("Password:", "", 32, '*', func(text string) {
		ld.strength.SetText(StrengthText(theme.Current(), auth.PasswordStrength(text)))
	})
	ld.form.AddPasswordField("Confirm (new agents):", "", 32, '*', nil)
	ld.form.AddCheckbox("Fresh start:", false, nil)

	ld.username = ld.form.GetFormItem(0).(*tview.InputField)
	ld.password = ld.form.GetFormItem(1).(*tview.InputField)
	ld.confirm = ld.form.GetFormItem(2).(*tview.InputField)
	ld.fresh = ld.form.GetFormItem(3).(*tview.Checkbox)

	ld.form.AddButton("Login", func() {
		if cb.Login != nil {
			cb.Login(ld.username.GetText(), ld.password.GetText(), ld.fresh.IsChecked())
		}
	})
	ld.form.AddButton("Register", func() {
		if cb.Register != nil {
			cb.Register(ld.username.GetText(), ld.password.GetText(), ld.confirm.GetText())
		}
	})
	ld.form.AddButton("Quit", func() {
		if cb.Quit != nil {
			cb.Quit()
		}
	})
	ld.form.SetCancelFunc(func() {
		if cb.Quit != nil {
			cb.Quit()
		}
	})

	ld.strength.SetTextAlign(tview.AlignCenter)
	ld.message.SetTextAlign(tview.AlignCenter)

	column := theme.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ld.form, 13, 0, true).
		AddItem(ld.strength, 1, 0, false).
		AddItem(ld.message, 2, 0, false)

	ld.view = theme.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(theme.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(column, 64, 0, true).
			AddItem(nil, 0, 1, false), 16, 0, true).
		AddItem(nil, 0, 1, false)
	return ld
}

// GetView returns the centered dialog.
func (ld *LoginDialog) GetView() tview.Primitive {
	return ld.view
}

// GetForm returns the internal form component
func (ld *LoginDialog) GetForm() *tview.Form {
	return ld.form
}

// SetMessage shows a status or error line under the form.
func (ld *LoginDialog) SetMessage(style game.Style, text string) {
	ld.message.SetText(theme.Tag(theme.Current(), style) + tview.Escape(text) + "[-]")
}

// Reset clears the password fields and the meter, keeping the agent ID.
func (ld *LoginDialog) Reset() {
	ld.password.SetText("")
	ld.confirm.SetText("")
	ld.fresh.SetChecked(false)
	ld.strength.SetText("")
	ld.form.SetFocus(0)
}

// SetFresh presets the fresh start checkbox.
func (ld *LoginDialog) SetFresh(fresh bool) {
	ld.fresh.SetChecked(fresh)
}
