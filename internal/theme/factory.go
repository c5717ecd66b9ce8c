package theme

import (
	"github.com/rivo/tview"
)

// ThemedComponents provides convenience factory functions for creating themed components
// while still allowing manual styling using theme properties
type ThemedComponents struct {
	theme Theme
}

// NewThemedComponents creates a new themed components factory
func NewThemedComponents(theme Theme) *ThemedComponents {
	return &ThemedComponents{theme: theme}
}

// NewModal creates a new modal with theme applied
func (tc *ThemedComponents) NewModal() *tview.Modal {
	modal := tview.NewModal()
	colors := tc.theme.DialogColors()

	modal.SetBackgroundColor(colors.Background)
	modal.SetTextColor(colors.Foreground)
	modal.SetButtonBackgroundColor(colors.ButtonBg)
	modal.SetButtonTextColor(colors.ButtonFg)
	modal.SetBorderColor(colors.Border)

	return modal
}

// NewTerminalView creates the scrolling command output view.
func (tc *ThemedComponents) NewTerminalView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.TerminalColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(border.TitleColor)
	textView.SetDynamicColors(true)
	textView.SetScrollable(true)
	textView.SetBorder(true)

	return textView
}

// NewInputField creates a new input field with theme applied
func (tc *ThemedComponents) NewInputField() *tview.InputField {
	input := tview.NewInputField()
	colors := tc.theme.TerminalColors()

	input.SetBackgroundColor(colors.Background)
	input.SetFieldBackgroundColor(colors.Background)
	input.SetFieldTextColor(colors.Foreground)
	input.SetLabelColor(colors.Prompt)

	return input
}

// NewFlex creates a new flex with theme applied
func (tc *ThemedComponents) NewFlex() *tview.Flex {
	flex := tview.NewFlex()
	flex.SetBackgroundColor(tc.theme.TerminalColors().Background)
	return flex
}

// NewStatusBar creates a new text view styled for status bars
func (tc *ThemedComponents) NewStatusBar() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.StatusColors()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetDynamicColors(true)

	return textView
}

// NewPanelView creates a new text view styled for side panels
func (tc *ThemedComponents) NewPanelView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(colors.Title)
	textView.SetDynamicColors(true)
	textView.SetBorder(true)
	textView.SetBorderPadding(border.Padding, border.Padding, border.Padding+1, border.Padding+1)

	return textView
}

// NewForm creates a new form with theme applied
func (tc *ThemedComponents) NewForm() *tview.Form {
	form := tview.NewForm()
	colors := tc.theme.DialogColors()

	form.SetBackgroundColor(colors.Background)
	form.SetFieldBackgroundColor(colors.FieldBg)
	form.SetFieldTextColor(colors.FieldFg)
	form.SetLabelColor(colors.Foreground)
	form.SetButtonBackgroundColor(colors.ButtonBg)
	form.SetButtonTextColor(colors.ButtonFg)
	form.SetBorderColor(colors.Border)
	form.SetTitleColor(colors.Title)
	form.SetBorder(true)

	return form
}

// Global factory instance using current theme
var defaultFactory = &ThemedComponents{}

func updateDefaultFactory() {
	defaultFactory.theme = defaultThemeManager.Current()
}

// Convenience functions using global theme
func NewModal() *tview.Modal {
	updateDefaultFactory()
	return defaultFactory.NewModal()
}

func NewTerminalView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewTerminalView()
}

func NewInputField() *tview.InputField {
	updateDefaultFactory()
	return defaultFactory.NewInputField()
}

func NewFlex() *tview.Flex {
	updateDefaultFactory()
	return defaultFactory.NewFlex()
}

func NewStatusBar() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewStatusBar()
}

func NewPanelView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewPanelView()
}

func NewForm() *tview.Form {
	updateDefaultFactory()
	return defaultFactory.NewForm()
}
