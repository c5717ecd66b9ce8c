package game

// Style tags a piece of output text with how it should be emphasised.
// The UI maps each style onto a theme color.
type Style int

const (
	StyleNormal Style = iota
	StyleBright
	StyleDim
	StyleSecondary
	StyleSuccess
	StyleWarning
	StyleError
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBright:
		return "bright"
	case StyleDim:
		return "dim"
	case StyleSecondary:
		return "secondary"
	case StyleSuccess:
		return "success"
	case StyleWarning:
		return "warning"
	case StyleError:
		return "error"
	default:
		return "unknown"
	}
}
