package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game"
)

func TestBuiltinThemes(t *testing.T) {
	tm := NewThemeManager()
	assert.Equal(t, []string{"blood", "crimson", "neon", "terminal"}, tm.Available())
	assert.Equal(t, "crimson", tm.Current().Name())

	require.NoError(t, tm.SetTheme("Neon"))
	assert.Equal(t, "neon", tm.Current().Name())

	assert.Error(t, tm.SetTheme("solarized"))
	assert.Equal(t, "neon", tm.Current().Name())
}

func TestCrimsonColors(t *testing.T) {
	crimson := NewThemeManager().Current()

	testCases := []struct {
		style game.Style
		hex   string
	}{
		{game.StyleNormal, "#dc143c"},
		{game.StyleBright, "#ff4d6d"},
		{game.StyleDim, "#6b0f1a"},
		{game.StyleSecondary, "#c0c0c0"},
		{game.StyleSuccess, "#00ff41"},
		{game.StyleWarning, "#ffd700"},
		{game.StyleError, "#ff0000"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.hex, Hex(crimson.StyleColor(tc.style)), tc.style.String())
	}
	assert.Equal(t, "[#00ff41]", Tag(crimson, game.StyleSuccess))
}

func TestEveryThemeDistinguishesStyles(t *testing.T) {
	tm := NewThemeManager()
	for _, name := range tm.Available() {
		require.NoError(t, tm.SetTheme(name))
		th := tm.Current()
		assert.NotEqual(t, th.StyleColor(game.StyleSuccess), th.StyleColor(game.StyleError), name)
		assert.NotEqual(t, th.TerminalColors().Background, th.TerminalColors().Foreground, name)
	}
}

func TestGraphStyle(t *testing.T) {
	st := GraphStyle(NewThemeManager().Current())
	assert.Equal(t, "#dc143c", st.Compromised)
	assert.Equal(t, "#0a0000", st.Background)
	assert.Equal(t, "#ffd700", st.Origin)
}
