package ansi

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// Reset clears all attributes.
const Reset = "\x1b[0m"

// Foreground returns the 24-bit SGR sequence for c. The default color has
// no sequence.
func Foreground(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return ""
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Painter writes colored lines. With color disabled it writes plain text,
// which is what redirected output should get.
type Painter struct {
	w     io.Writer
	color bool
}

// NewPainter wraps w.
func NewPainter(w io.Writer, color bool) *Painter {
	return &Painter{w: w, color: color}
}

// Println writes text in color c followed by a newline.
func (p *Painter) Println(c tcell.Color, text string) error {
	seq := ""
	if p.color {
		seq = Foreground(c)
	}
	var err error
	if seq == "" {
		_, err = fmt.Fprintln(p.w, text)
	} else {
		_, err = fmt.Fprintf(p.w, "%s%s%s\n", seq, text, Reset)
	}
	return err
}
