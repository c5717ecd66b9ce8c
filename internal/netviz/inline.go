package netviz

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/BourgeoisBear/rasterm"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-sixel"
	xdraw "golang.org/x/image/draw"
)

// ErrNoGraphics is returned by Inline in text mode.
var ErrNoGraphics = errors.New("terminal has no image support")

// DefaultMaxWidth is the pixel width images are shrunk to before output.
const DefaultMaxWidth = 800

// Mode selects the terminal image protocol.
type Mode int

const (
	ModeAuto Mode = iota
	ModeKitty
	ModeITerm
	ModeSixel
	ModeText
)

var modeNames = map[Mode]string{
	ModeAuto:  "auto",
	ModeKitty: "kitty",
	ModeITerm: "iterm",
	ModeSixel: "sixel",
	ModeText:  "text",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode turns a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return ModeText, fmt.Errorf("unknown display mode %q", s)
}

// Detect picks the best protocol the terminal on f supports. Anything that
// is not a terminal gets ModeText.
func Detect(f *os.File) Mode {
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ModeText
	}
	switch {
	case rasterm.IsKittyCapable():
		return ModeKitty
	case rasterm.IsItermCapable():
		return ModeITerm
	}
	if ok, err := rasterm.IsSixelCapable(); err == nil && ok {
		return ModeSixel
	}
	return ModeText
}

// Inline decodes a PNG, shrinks it to maxWidth and writes it to w using mode.
// ModeAuto must be resolved with Detect first.
func Inline(w io.Writer, data []byte, mode Mode, maxWidth int) error {
	if mode == ModeText || mode == ModeAuto {
		return ErrNoGraphics
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode PNG: %w", err)
	}
	img = Fit(img, maxWidth)

	switch mode {
	case ModeKitty:
		err = rasterm.KittyWriteImage(w, img, rasterm.KittyImgOpts{})
	case ModeITerm:
		err = rasterm.ItermWriteImage(w, img)
	case ModeSixel:
		enc := sixel.NewEncoder(w)
		enc.Dither = true
		err = enc.Encode(img)
	default:
		return fmt.Errorf("unknown display mode %d", mode)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s image: %w", mode, err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Fit scales img down so it is at most maxWidth pixels wide, keeping the
// aspect ratio. Smaller images and non-positive widths are returned as is.
func Fit(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
