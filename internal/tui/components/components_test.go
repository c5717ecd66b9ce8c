package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"redline/internal/auth"
	"redline/internal/config"
	"redline/internal/events"
	"redline/internal/game"
	"redline/internal/game/gametest"
	"redline/internal/session"
	"redline/internal/theme"
)

func crimson(t *testing.T) theme.Theme {
	t.Helper()
	tm := theme.NewThemeManager()
	return tm.Current()
}

func TestFormatLine(t *testing.T) {
	th := crimson(t)
	got := FormatLine(th, session.Line{Style: game.StyleError, Text: "[ALERT] trace"})

	assert.Equal(t, theme.Tag(th, game.StyleError)+"[ALERT[] trace[-]", got)
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	assert.Equal(t, "", h.Prev())

	h.Add("scan")
	h.Add("scan")
	h.Add("exploit 10.0.0.1")
	h.Add("status")

	assert.Equal(t, "status", h.Prev())
	assert.Equal(t, "exploit 10.0.0.1", h.Prev())
	assert.Equal(t, "exploit 10.0.0.1", h.Prev(), "stops at the oldest entry")
	assert.Equal(t, "status", h.Next())
	assert.Equal(t, "", h.Next())
	assert.Equal(t, "", h.Next())
}

func TestStatusTextDisconnected(t *testing.T) {
	assert.Contains(t, StatusText(crimson(t), nil), "Not connected")
}

func TestStatusText(t *testing.T) {
	cfg := config.Default().Game
	cfg.EnableRandomEvents = false
	s := session.New(session.Player{Username: "neo"}, session.Deps{
		Rand:    gametest.NewRand(),
		Clock:   gametest.NewClock(gametest.Epoch),
		Sleeper: &events.InstantSleeper{},
		Game:    cfg,
	})

	got := StatusText(crimson(t), s)
	for _, want := range []string{"Agent", "neo", "Level 1", "Operations", "Active Missions", "Heat:", "Credits:"} {
		assert.Contains(t, got, want)
	}
}

func TestStrengthText(t *testing.T) {
	th := crimson(t)
	assert.Empty(t, StrengthText(th, auth.StrengthNone))

	weak := StrengthText(th, auth.StrengthWeak)
	assert.Contains(t, weak, theme.Tag(th, game.StyleError))
	assert.Contains(t, weak, "Strength: ")

	assert.Contains(t, StrengthText(th, auth.StrengthMedium), theme.Tag(th, game.StyleWarning))
	assert.Contains(t, StrengthText(th, auth.StrengthVeryStrong), theme.Tag(th, game.StyleSuccess))
}

func TestEventText(t *testing.T) {
	e := events.RandomEvent{
		ID:          "evt-42",
		Title:       "Honeypot Detected",
		Description: "The target looks too easy.",
		Severity:    events.SeverityHigh,
		Choices:     []events.EventChoice{{Label: "Back off"}, {Label: "Push on"}},
	}

	got := EventText(e, time.Unix(0, 0))

	assert.Contains(t, got, "[!!] Honeypot Detected [!!]")
	assert.Contains(t, got, "id: evt-42")
	assert.Contains(t, got, "[1] Back off")
	assert.Contains(t, got, "[2] Push on")
	assert.NotContains(t, got, "Respond within")
}
