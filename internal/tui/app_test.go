package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"redline/internal/auth"
	"redline/internal/game"
	"redline/internal/session"
)

func stateLine(lines []session.Line) session.Line {
	return lines[len(lines)-2]
}

func TestWelcomeLines(t *testing.T) {
	user := auth.User{Username: "trinity", Reputation: 120}

	fresh := WelcomeLines(Welcome{User: user})
	assert.Contains(t, fresh[1].Text, "trinity")
	assert.Contains(t, fresh[1].Text, "120")
	assert.Equal(t, game.StyleSecondary, stateLine(fresh).Style)

	resumed := WelcomeLines(Welcome{User: user, Resumed: true})
	assert.Equal(t, "Previous session restored.", stateLine(resumed).Text)

	corrupt := WelcomeLines(Welcome{User: user, Corrupt: true})
	assert.Equal(t, game.StyleWarning, stateLine(corrupt).Style)
}
