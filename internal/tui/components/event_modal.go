package components

import (
	"strings"
	"time"

	"github.com/rivo/tview"

	"redline/internal/events"
	"redline/internal/session"
	"redline/internal/theme"
)

// IgnoreLabel is the extra button that leaves an event pending.
const IgnoreLabel = "Ignore"

// EventText is the plain body of the event dialog.
func EventText(e events.RandomEvent, now time.Time) string {
	var res session.Result
	session.RenderEvent(e, now, &res)
	var b strings.Builder
	for _, l := range res.Lines {
		b.WriteString(strings.TrimSpace(l.Text))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewEventModal shows an event with one button per choice and an Ignore
// button. onChoice gets the 0-based choice index, or -1 for Ignore.
func NewEventModal(e events.RandomEvent, now time.Time, onChoice func(index int)) *tview.Modal {
	labels := make([]string, 0, len(e.Choices)+1)
	for _, c := range e.Choices {
		labels = append(labels, session.ChoiceLabel(c))
	}
	labels = append(labels, IgnoreLabel)

	modal := theme.NewModal()
	modal.SetTitle(" " + e.Severity.String() + " ")
	modal.SetBorder(true)
	modal.SetText(EventText(e, now))
	modal.AddButtons(labels)
	modal.SetDoneFunc(func(index int, label string) {
		if index >= len(e.Choices) || index < 0 {
			index = -1
		}
		onChoice(index)
	})
	return modal
}
