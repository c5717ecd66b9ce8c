package ansi

import (
	"strings"
)

type stripState int

const (
	stateText stripState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// StreamingStripper removes escape sequences and control characters from
// text that may arrive in pieces. A sequence split across chunks is held
// until it completes.
type StreamingStripper struct {
	state stripState
}

// NewStreamingStripper creates a stripper in the plain text state.
func NewStreamingStripper() *StreamingStripper {
	return &StreamingStripper{}
}

// StripChunk returns chunk with CSI and OSC sequences removed. Tabs and
// newlines are kept; other C0 control characters and DEL are dropped.
func (s *StreamingStripper) StripChunk(chunk string) string {
	var b strings.Builder
	b.Grow(len(chunk))

	for _, r := range chunk {
		switch s.state {
		case stateText:
			switch {
			case r == '\x1b':
				s.state = stateEscape
			case r == '\t' || r == '\n':
				b.WriteRune(r)
			case r < 0x20 || r == 0x7f:
			default:
				b.WriteRune(r)
			}

		case stateEscape:
			switch r {
			case '[':
				s.state = stateCSI
			case ']':
				s.state = stateOSC
			default:
				// two-byte sequence such as ESC c
				s.state = stateText
			}

		case stateCSI:
			// final byte of a control sequence
			if r >= 0x40 && r <= 0x7e {
				s.state = stateText
			}

		case stateOSC:
			switch r {
			case '\a':
				s.state = stateText
			case '\x1b':
				s.state = stateOSCEscape
			}

		case stateOSCEscape:
			if r == '\\' {
				s.state = stateText
			} else {
				s.state = stateOSC
			}
		}
	}
	return b.String()
}

// Reset drops any partial sequence.
func (s *StreamingStripper) Reset() {
	s.state = stateText
}

// StripString strips a complete string.
func StripString(text string) string {
	return NewStreamingStripper().StripChunk(text)
}
