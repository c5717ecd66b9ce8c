package components

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"redline/internal/ansi"
	"redline/internal/game"
	"redline/internal/session"
	"redline/internal/theme"
)

// Prompt is the command line label.
const Prompt = "agent@redline:~$ "

const historyLimit = 100

// FormatLine renders one output line with its style color as a tview tag.
func FormatLine(t theme.Theme, l session.Line) string {
	return theme.Tag(t, l.Style) + tview.Escape(l.Text) + "[-]"
}

// TerminalComponent is the scrolling output and the command input below it.
type TerminalComponent struct {
	output  *tview.TextView
	input   *tview.InputField
	wrapper *tview.Flex

	history *History
}

// NewTerminalComponent creates the terminal. onSubmit receives each entered
// command with escape sequences removed.
func NewTerminalComponent(onSubmit func(string)) *TerminalComponent {
	tc := &TerminalComponent{
		output:  theme.NewTerminalView(),
		input:   theme.NewInputField(),
		history: NewHistory(historyLimit),
	}
	tc.output.SetTitle(" Terminal ").SetTitleAlign(tview.AlignLeft)
	tc.output.SetWordWrap(true)
	tc.output.SetMaxLines(2000)
	tc.input.SetLabel(Prompt)

	tc.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := strings.TrimSpace(ansi.StripString(tc.input.GetText()))
		tc.input.SetText("")
		if line == "" {
			return
		}
		tc.history.Add(line)
		if onSubmit != nil {
			onSubmit(line)
		}
	})
	tc.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			tc.input.SetText(tc.history.Prev())
			return nil
		case tcell.KeyDown:
			tc.input.SetText(tc.history.Next())
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			tc.output.InputHandler()(event, nil)
			return nil
		}
		return event
	})

	tc.wrapper = theme.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tc.output, 0, 1, false).
		AddItem(tc.input, 1, 0, true)
	return tc
}

// GetWrapper returns the wrapper component
func (tc *TerminalComponent) GetWrapper() *tview.Flex {
	return tc.wrapper
}

// GetInput returns the command input field.
func (tc *TerminalComponent) GetInput() *tview.InputField {
	return tc.input
}

// Write appends lines to the output and scrolls to the end.
func (tc *TerminalComponent) Write(lines []session.Line) {
	t := theme.Current()
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(FormatLine(t, l))
		b.WriteByte('\n')
	}
	tc.output.Write([]byte(b.String()))
	tc.output.ScrollToEnd()
}

// Echo writes the entered command after the prompt.
func (tc *TerminalComponent) Echo(command string) {
	t := theme.Current()
	tc.output.Write([]byte(theme.Tag(t, game.StyleBright) + tview.Escape(Prompt+command) + "[-]\n"))
}

// Clear empties the output.
func (tc *TerminalComponent) Clear() {
	tc.output.Clear()
}

// SetBusy disables input while a command runs.
func (tc *TerminalComponent) SetBusy(busy bool) {
	tc.input.SetDisabled(busy)
	if busy {
		tc.input.SetLabel("[processing] ")
	} else {
		tc.input.SetLabel(Prompt)
	}
}

// History is a bounded list of entered commands with a browse cursor.
type History struct {
	entries []string
	limit   int
	cursor  int
}

// NewHistory keeps at most limit entries.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends a command and resets the cursor. Repeats of the last entry are dropped.
func (h *History) Add(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.cursor = len(h.entries)
}

// Prev moves to the previous command, stopping at the oldest.
func (h *History) Prev() string {
	if len(h.entries) == 0 {
		return ""
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor]
}

// Next moves towards the newest command; past it the line is empty.
func (h *History) Next() string {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor == len(h.entries) {
		return ""
	}
	return h.entries[h.cursor]
}
