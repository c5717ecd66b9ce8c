package ansi

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForeground(t *testing.T) {
	assert.Equal(t, "\x1b[38;2;220;20;60m", Foreground(tcell.NewHexColor(0xdc143c)))
	assert.Empty(t, Foreground(tcell.ColorDefault))
}

func TestPainter(t *testing.T) {
	var buf bytes.Buffer
	crimson := tcell.NewHexColor(0xdc143c)

	require.NoError(t, NewPainter(&buf, true).Println(crimson, "BUSTED"))
	assert.Equal(t, "\x1b[38;2;220;20;60mBUSTED\x1b[0m\n", buf.String())

	buf.Reset()
	require.NoError(t, NewPainter(&buf, false).Println(crimson, "BUSTED"))
	assert.Equal(t, "BUSTED\n", buf.String())
	assert.Equal(t, "BUSTED\n", StripString("\x1b[38;2;220;20;60mBUSTED\x1b[0m\n"))
}
