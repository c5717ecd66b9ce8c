package netviz

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game"
	"redline/internal/game/gametest"
)

func sampleMap(t *testing.T) *game.NetworkMap {
	t.Helper()
	m := game.NewNetworkMap()
	m.AddNode(game.NetworkNode{IP: "127.0.0.1", Hostname: "localhost", Type: game.NodeWorkstation, Compromised: true, DiscoveredAt: gametest.Epoch})
	m.AddNode(game.NetworkNode{IP: "10.0.0.1", Hostname: "GW-001", Type: game.NodeRouter, DiscoveredAt: gametest.Epoch})
	m.AddNode(game.NetworkNode{IP: "10.0.0.7", Hostname: "DB-007", Type: game.NodeDatabase, DiscoveredAt: gametest.Epoch})
	require.NoError(t, m.AddConnection("127.0.0.1", "10.0.0.1"))
	require.NoError(t, m.AddConnection("10.0.0.1", "10.0.0.7"))
	_, err := m.MarkCompromised("10.0.0.7")
	require.NoError(t, err)
	return m
}

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 220, G: 20, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	testCases := map[string]Mode{
		"auto":  ModeAuto,
		"kitty": ModeKitty,
		"iTerm": ModeITerm,
		"sixel": ModeSixel,
		"text":  ModeText,
	}
	for in, want := range testCases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("braille")
	assert.Error(t, err)
}

func TestRenderDOT(t *testing.T) {
	dot, err := RenderDOT(sampleMap(t), Options{Origin: "127.0.0.1"})
	require.NoError(t, err)

	assert.Contains(t, dot, "graph {")
	assert.Contains(t, dot, " -- ")
	assert.Contains(t, dot, `"cylinder"`)
	assert.Contains(t, dot, `"diamond"`)
	assert.Contains(t, dot, `"`+DefaultStyle.Compromised+`"`)
	assert.Contains(t, dot, `"`+DefaultStyle.Origin+`"`)
	assert.Contains(t, dot, `"`+DefaultStyle.Background+`"`)
	assert.Contains(t, dot, `"10.0.0.7"`)
}

func TestRenderDOTEmptyMap(t *testing.T) {
	dot, err := RenderDOT(game.NewNetworkMap(), Options{})
	require.NoError(t, err)
	assert.Contains(t, dot, "graph")
}

func TestRenderWritesDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), sampleMap(t), FormatDOT, Options{}, &buf))
	assert.Contains(t, buf.String(), `"127.0.0.1"`)
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), sampleMap(t), FormatSVG, Options{}, &buf))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "DB-007")
}

func TestText(t *testing.T) {
	assert.Equal(t, "No hosts discovered.\n", Text(game.NewNetworkMap()))

	out := Text(sampleMap(t))
	assert.Contains(t, out, "* 127.0.0.1       localhost    Workstation\n")
	assert.Contains(t, out, "  10.0.0.1        GW-001       Router\n")
	assert.Contains(t, out, "    └─ 10.0.0.7 DB-007\n")
}

func TestFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	scaled := Fit(img, 100)
	assert.Equal(t, 100, scaled.Bounds().Dx())
	assert.Equal(t, 50, scaled.Bounds().Dy())

	assert.Same(t, img, Fit(img, 1000))
	assert.Same(t, img, Fit(img, 0))
}

func TestInline(t *testing.T) {
	data := samplePNG(t, 64, 32)

	var kitty bytes.Buffer
	require.NoError(t, Inline(&kitty, data, ModeKitty, DefaultMaxWidth))
	assert.Contains(t, kitty.String(), "\x1b_G")

	var iterm bytes.Buffer
	require.NoError(t, Inline(&iterm, data, ModeITerm, DefaultMaxWidth))
	assert.Contains(t, iterm.String(), "1337;File=")

	var six bytes.Buffer
	require.NoError(t, Inline(&six, data, ModeSixel, 16))
	assert.Contains(t, six.String(), "\x1bP")
}

func TestInlineRejectsTextAndGarbage(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Inline(&buf, samplePNG(t, 4, 4), ModeText, 0), ErrNoGraphics)
	assert.ErrorIs(t, Inline(&buf, samplePNG(t, 4, 4), ModeAuto, 0), ErrNoGraphics)
	assert.Error(t, Inline(&buf, []byte("not a png"), ModeKitty, 0))
	assert.Zero(t, buf.Len())
}

func TestDetectNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, ModeText, Detect(f))
}
