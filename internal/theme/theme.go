package theme

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"redline/internal/game"
	"redline/internal/netviz"
)

// DialogColors defines color scheme for dialogs and modals
type DialogColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	ButtonBg   tcell.Color
	ButtonFg   tcell.Color
	FieldBg    tcell.Color
	FieldFg    tcell.Color
}

// TerminalColors defines color scheme for the command terminal
type TerminalColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Prompt     tcell.Color
}

// StatusColors defines color scheme for the bottom status line
type StatusColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Highlight  tcell.Color
	Error      tcell.Color
}

// PanelColors defines color scheme for side panels
type PanelColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
}

// BorderStyle defines border styling options
type BorderStyle struct {
	Color      tcell.Color
	TitleColor tcell.Color
	Padding    int
}

// Theme interface defines all theming properties
type Theme interface {
	Name() string

	DialogColors() DialogColors
	TerminalColors() TerminalColors
	StatusColors() StatusColors
	PanelColors() PanelColors
	BorderStyle() BorderStyle

	// Accent is the signature color, used for banners and compromised hosts.
	Accent() tcell.Color
	// StyleColor maps an output style onto a color.
	StyleColor(s game.Style) tcell.Color
}

// Tag returns the tview color tag for an output style, e.g. "[#dc143c]".
func Tag(t Theme, s game.Style) string {
	return "[" + Hex(t.StyleColor(s)) + "]"
}

// Hex formats a color as "#rrggbb".
func Hex(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.TrueColor().Hex())
}

// GraphStyle derives network map colors from a theme.
func GraphStyle(t Theme) netviz.Style {
	p := t.PanelColors()
	return netviz.Style{
		Background:  Hex(p.Background),
		Foreground:  Hex(p.Foreground),
		Edge:        Hex(p.Border),
		Node:        Hex(t.StyleColor(game.StyleDim)),
		Compromised: Hex(t.Accent()),
		Origin:      Hex(t.StyleColor(game.StyleWarning)),
	}
}

// ThemeManager manages theme selection and application
type ThemeManager struct {
	mu           sync.RWMutex
	currentTheme Theme
	themes       map[string]Theme
}

// NewThemeManager creates a manager with the built-in themes, crimson selected.
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}
	for _, p := range builtin {
		tm.RegisterTheme(p.theme())
	}
	tm.currentTheme = tm.themes[DefaultName]
	return tm
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.themes[theme.Name()] = theme
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if theme, exists := tm.themes[strings.ToLower(name)]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found", name)
}

// Current returns the current theme
func (tm *ThemeManager) Current() Theme {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.currentTheme
}

// Available returns the sorted theme names.
func (tm *ThemeManager) Available() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}

// Set selects a theme on the global manager.
func Set(name string) error {
	return defaultThemeManager.SetTheme(name)
}
