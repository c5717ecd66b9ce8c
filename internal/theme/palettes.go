package theme

import (
	"github.com/gdamore/tcell/v2"

	"redline/internal/game"
)

// DefaultName is the theme used until the config picks another.
const DefaultName = "crimson"

// palette is the handful of base colors a theme is derived from.
type palette struct {
	name       string
	background tcell.Color
	surface    tcell.Color // dialogs and input fields
	foreground tcell.Color
	bright     tcell.Color
	dim        tcell.Color
	accent     tcell.Color
	secondary  tcell.Color
	success    tcell.Color
	warning    tcell.Color
	danger     tcell.Color
}

var builtin = []palette{
	{
		name:       "crimson",
		background: tcell.NewHexColor(0x0a0000),
		surface:    tcell.NewHexColor(0x2a0008),
		foreground: tcell.NewHexColor(0xdc143c),
		bright:     tcell.NewHexColor(0xff4d6d),
		dim:        tcell.NewHexColor(0x6b0f1a),
		accent:     tcell.NewHexColor(0xdc143c),
		secondary:  tcell.NewHexColor(0xc0c0c0),
		success:    tcell.NewHexColor(0x00ff41),
		warning:    tcell.NewHexColor(0xffd700),
		danger:     tcell.NewHexColor(0xff0000),
	},
	{
		name:       "blood",
		background: tcell.NewHexColor(0x000000),
		surface:    tcell.NewHexColor(0x1a0000),
		foreground: tcell.NewHexColor(0x8b0000),
		bright:     tcell.NewHexColor(0xb22222),
		dim:        tcell.NewHexColor(0x4a0000),
		accent:     tcell.NewHexColor(0xb22222),
		secondary:  tcell.NewHexColor(0x808080),
		success:    tcell.NewHexColor(0x32cd32),
		warning:    tcell.NewHexColor(0xff8c00),
		danger:     tcell.NewHexColor(0xff0000),
	},
	{
		name:       "neon",
		background: tcell.NewHexColor(0x0d0221),
		surface:    tcell.NewHexColor(0x241734),
		foreground: tcell.NewHexColor(0xff00ff),
		bright:     tcell.NewHexColor(0xff6ec7),
		dim:        tcell.NewHexColor(0x5a189a),
		accent:     tcell.NewHexColor(0x00ffff),
		secondary:  tcell.NewHexColor(0x00bfff),
		success:    tcell.NewHexColor(0x39ff14),
		warning:    tcell.NewHexColor(0xfff01f),
		danger:     tcell.NewHexColor(0xff073a),
	},
	{
		name:       "terminal",
		background: tcell.NewHexColor(0x000000),
		surface:    tcell.NewHexColor(0x002200),
		foreground: tcell.NewHexColor(0x00ff00),
		bright:     tcell.NewHexColor(0xccffcc),
		dim:        tcell.NewHexColor(0x006400),
		accent:     tcell.NewHexColor(0x00ff00),
		secondary:  tcell.NewHexColor(0x00c000),
		success:    tcell.NewHexColor(0x7fff00),
		warning:    tcell.NewHexColor(0xffff00),
		danger:     tcell.NewHexColor(0xff0000),
	},
}

func (p palette) theme() Theme { return &paletteTheme{p: p} }

// paletteTheme implements Theme from a palette.
type paletteTheme struct {
	p palette
}

func (t *paletteTheme) Name() string { return t.p.name }

func (t *paletteTheme) Accent() tcell.Color { return t.p.accent }

func (t *paletteTheme) DialogColors() DialogColors {
	return DialogColors{
		Background: t.p.surface,
		Foreground: t.p.bright,
		Border:     t.p.accent,
		Title:      t.p.bright,
		ButtonBg:   t.p.accent,
		ButtonFg:   t.p.background,
		FieldBg:    t.p.background,
		FieldFg:    t.p.bright,
	}
}

func (t *paletteTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: t.p.background,
		Foreground: t.p.foreground,
		Border:     t.p.dim,
		Prompt:     t.p.accent,
	}
}

func (t *paletteTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: t.p.surface,
		Foreground: t.p.secondary,
		Highlight:  t.p.bright,
		Error:      t.p.danger,
	}
}

func (t *paletteTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: t.p.background,
		Foreground: t.p.secondary,
		Border:     t.p.dim,
		Title:      t.p.accent,
	}
}

func (t *paletteTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      t.p.dim,
		TitleColor: t.p.accent,
		Padding:    0,
	}
}

func (t *paletteTheme) StyleColor(s game.Style) tcell.Color {
	switch s {
	case game.StyleBright:
		return t.p.bright
	case game.StyleDim:
		return t.p.dim
	case game.StyleSecondary:
		return t.p.secondary
	case game.StyleSuccess:
		return t.p.success
	case game.StyleWarning:
		return t.p.warning
	case game.StyleError:
		return t.p.danger
	default:
		return t.p.foreground
	}
}
