package components

import (
	"github.com/rivo/tview"

	"redline/internal/game"
	"redline/internal/netviz"
	"redline/internal/theme"
)

// NetworkPanel lists the discovered hosts and their links.
type NetworkPanel struct {
	view *tview.TextView
}

// NewNetworkPanel creates an empty network panel.
func NewNetworkPanel() *NetworkPanel {
	view := theme.NewPanelView()
	view.SetTitle(" Network ")
	view.SetWrap(false)
	return &NetworkPanel{view: view}
}

// GetView returns the panel view.
func (np *NetworkPanel) GetView() *tview.TextView {
	return np.view
}

// Update redraws the panel. Compromised hosts are starred.
func (np *NetworkPanel) Update(m *game.NetworkMap) {
	if m == nil {
		np.view.SetText("")
		return
	}
	t := theme.Current()
	np.view.SetText(theme.Tag(t, game.StyleSecondary) + tview.Escape(netviz.Text(m)) + "[-]")
}
