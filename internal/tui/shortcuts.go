package tui

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ShortcutManager maps key combinations such as "ctrl+s" or "f1" to actions.
type ShortcutManager struct {
	mu        sync.RWMutex
	shortcuts map[string]func()
}

// NewShortcutManager creates an empty manager.
func NewShortcutManager() *ShortcutManager {
	return &ShortcutManager{shortcuts: make(map[string]func())}
}

// RegisterShortcut binds a shortcut, replacing any previous binding.
func (sm *ShortcutManager) RegisterShortcut(shortcut string, callback func()) {
	if shortcut == "" {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.shortcuts[normalizeShortcut(shortcut)] = callback
}

// HandleKeyEvent runs the bound action and reports whether there was one.
func (sm *ShortcutManager) HandleKeyEvent(event *tcell.EventKey) bool {
	key := keyEventToString(event)
	if key == "" {
		return false
	}
	sm.mu.RLock()
	callback, ok := sm.shortcuts[key]
	sm.mu.RUnlock()
	if !ok {
		return false
	}
	callback()
	return true
}

func normalizeShortcut(shortcut string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(shortcut)), " ", "")
}

var specialKeys = map[tcell.Key]string{
	tcell.KeyF1:     "f1",
	tcell.KeyF2:     "f2",
	tcell.KeyF3:     "f3",
	tcell.KeyF4:     "f4",
	tcell.KeyF5:     "f5",
	tcell.KeyF10:    "f10",
	tcell.KeyEscape: "esc",
	tcell.KeyPgUp:   "pageup",
	tcell.KeyPgDn:   "pagedown",
}

// keyEventToString converts a tcell.EventKey to a shortcut string
func keyEventToString(event *tcell.EventKey) string {
	var parts []string
	mods := event.Modifiers()

	switch k := event.Key(); {
	case k == tcell.KeyTab || k == tcell.KeyEnter || k == tcell.KeyBackspace:
		// typeable without ctrl even though they share the ctrl codes
		return ""
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+k-tcell.KeyCtrlA))
	}
	if mods&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if mods&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}

	if event.Key() == tcell.KeyRune {
		if len(parts) == 0 {
			return ""
		}
		parts = append(parts, strings.ToLower(string(event.Rune())))
	} else if name, ok := specialKeys[event.Key()]; ok {
		parts = append(parts, name)
	} else {
		return ""
	}
	return strings.Join(parts, "+")
}
