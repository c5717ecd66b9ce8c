package components

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"redline/internal/game"
	"redline/internal/session"
	"redline/internal/theme"
)

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// StatusText renders the agent sidebar for a session.
func StatusText(t theme.Theme, s *session.Session) string {
	if s == nil {
		return theme.Tag(t, game.StyleDim) + "Not connected[-]"
	}
	st := s.State()
	rep := s.Reputation()
	tag := func(style game.Style) string { return theme.Tag(t, style) }

	var b strings.Builder
	header := func(name string) {
		fmt.Fprintf(&b, "%s%s[-]\n", tag(game.StyleBright), title.String(name))
	}

	header("agent")
	fmt.Fprintf(&b, "%s\n", tview.Escape(s.Player().Username))
	fmt.Fprintf(&b, "Level %d %s\n", st.Level(), st.LevelTitle())
	lvl := rep.Level()
	fmt.Fprintf(&b, "%s%s[-] %.0f%%\n", tag(lvl.Style()), lvl.DisplayName(), rep.LevelProgress())
	fmt.Fprintf(&b, "Rep:     %s\n", printer.Sprintf("%d", st.Reputation()))
	fmt.Fprintf(&b, "Streak:  %s\n", rep.StreakBonusDescription())
	fmt.Fprintf(&b, "Credits: %s\n", printer.Sprintf("%d", st.Credits()))
	fmt.Fprintf(&b, "Heat:    %s%s[-]\n\n", tag(st.HeatBand()), st.HeatBar())

	header("operations")
	fmt.Fprintf(&b, "Hacks:   %d/%d (%.0f%%)\n", st.SuccessfulHacks(), st.SuccessfulHacks()+st.FailedHacks(), st.SuccessRate())
	fmt.Fprintf(&b, "Scans:   %d\n", st.TotalScans())
	fmt.Fprintf(&b, "Files:   %d\n", st.FilesDecrypted())
	fmt.Fprintf(&b, "Owned:   %d\n", st.SystemsCompromised())
	fmt.Fprintf(&b, "Done:    %d missions\n\n", st.MissionsCompleted())

	header("active missions")
	active := s.Missions().Active()
	if len(active) == 0 {
		fmt.Fprintf(&b, "%snone[-]\n", tag(game.StyleDim))
	}
	for _, m := range active {
		fmt.Fprintf(&b, "%s %.0f%%\n", tview.Escape(m.ID), m.CompletionPercentage())
	}
	return b.String()
}

// StatusComponent is the agent sidebar.
type StatusComponent struct {
	view *tview.TextView
}

// NewStatusComponent creates an empty sidebar.
func NewStatusComponent() *StatusComponent {
	view := theme.NewPanelView()
	view.SetTitle(" Status ")
	return &StatusComponent{view: view}
}

// GetView returns the sidebar view.
func (sc *StatusComponent) GetView() *tview.TextView {
	return sc.view
}

// Update redraws the sidebar from the session.
func (sc *StatusComponent) Update(s *session.Session) {
	sc.view.SetText(StatusText(theme.Current(), s))
}
