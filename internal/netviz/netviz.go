// Package netviz draws the discovered network map as DOT, SVG or PNG and
// pushes rendered images straight into the terminal.
package netviz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"redline/internal/game"
)

// Format is an export format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (want dot, svg or png)", s)
}

// Style holds the colors used for a rendered map. Values are graphviz color
// strings such as "#dc143c" or "black".
type Style struct {
	Background  string
	Foreground  string
	Edge        string
	Node        string
	Compromised string
	Origin      string
}

// DefaultStyle is the crimson palette.
var DefaultStyle = Style{
	Background:  "#0a0000",
	Foreground:  "#f5f5f5",
	Edge:        "#8b0000",
	Node:        "#2b2b2b",
	Compromised: "#dc143c",
	Origin:      "#ffd700",
}

// Options controls rendering.
type Options struct {
	Style Style
	// Origin is the IP drawn as the player's foothold. Empty means none.
	Origin string
}

func (o Options) style() Style {
	if o.Style == (Style{}) {
		return DefaultStyle
	}
	return o.Style
}

var shapes = map[game.NodeType]cgraph.Shape{
	game.NodeUnknown:          cgraph.CircleShape,
	game.NodeServer:           cgraph.Box3DShape,
	game.NodeWorkstation:      cgraph.EllipseShape,
	game.NodeRouter:           cgraph.DiamondShape,
	game.NodeFirewall:         cgraph.OctagonShape,
	game.NodeDatabase:         cgraph.CylinderShape,
	game.NodeWebServer:        cgraph.BoxShape,
	game.NodeMailServer:       cgraph.NoteShape,
	game.NodeDomainController: cgraph.DoubleOctagonShape,
}

func shapeOf(t game.NodeType) cgraph.Shape {
	if s, ok := shapes[t]; ok {
		return s
	}
	return cgraph.CircleShape
}

func label(n game.NetworkNode) string {
	return fmt.Sprintf("%s\\n%s", n.Hostname, n.IP)
}

func fillOf(n game.NetworkNode, opts Options) string {
	st := opts.style()
	switch {
	case n.IP == opts.Origin:
		return st.Origin
	case n.Compromised:
		return st.Compromised
	default:
		return st.Node
	}
}

// RenderDOT returns the map as an undirected DOT document. No layout is run.
func RenderDOT(m *game.NetworkMap, opts Options) (string, error) {
	st := opts.style()
	g := graph.New(func(n game.NetworkNode) string { return n.IP })
	for _, n := range m.Nodes() {
		err := g.AddVertex(n,
			graph.VertexAttribute("label", label(n)),
			graph.VertexAttribute("shape", string(shapeOf(n.Type))),
			graph.VertexAttribute("style", "filled"),
			graph.VertexAttribute("fillcolor", fillOf(n, opts)),
			graph.VertexAttribute("fontcolor", st.Foreground),
		)
		if err != nil {
			return "", fmt.Errorf("failed to add node %s: %w", n.IP, err)
		}
	}
	for _, c := range m.Connections() {
		if err := g.AddEdge(c[0], c[1], graph.EdgeAttribute("color", st.Edge)); err != nil {
			return "", fmt.Errorf("failed to add link %s-%s: %w", c[0], c[1], err)
		}
	}

	var buf bytes.Buffer
	if err := draw.DOT(g, &buf, draw.GraphAttribute("bgcolor", st.Background)); err != nil {
		return "", fmt.Errorf("failed to write DOT: %w", err)
	}
	return buf.String(), nil
}

// Render lays the map out with graphviz and writes it to w in the given format.
func Render(ctx context.Context, m *game.NetworkMap, format Format, opts Options, w io.Writer) error {
	if format == FormatDOT {
		dot, err := RenderDOT(m, opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, dot)
		return err
	}

	st := opts.style()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	g, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graphviz graph: %w", err)
	}
	defer g.Close()

	g.SetLayout("neato")
	g.SetOverlap(false)
	g.SetSplines("true")
	g.Set("bgcolor", st.Background)
	g.Set("sep", "0.6")
	g.SetDPI(120.0)
	if _, err := g.Attr(int(cgraph.EDGE), "color", st.Edge); err != nil {
		return fmt.Errorf("failed to set edge color: %w", err)
	}
	if _, err := g.Attr(int(cgraph.NODE), "fontcolor", st.Foreground); err != nil {
		return fmt.Errorf("failed to set font color: %w", err)
	}

	nodes := make(map[string]*graphviz.Node, m.Len())
	for _, n := range m.Nodes() {
		node, err := g.CreateNodeByName(n.IP)
		if err != nil {
			return fmt.Errorf("failed to create node %s: %w", n.IP, err)
		}
		node.SetLabel(label(n))
		node.SetShape(shapeOf(n.Type))
		node.SetStyle("filled")
		node.SetFillColor(fillOf(n, opts))
		node.SetFontSize(12.0)
		nodes[n.IP] = node
	}
	for _, c := range m.Connections() {
		edge, err := g.CreateEdgeByName("", nodes[c[0]], nodes[c[1]])
		if err != nil {
			return fmt.Errorf("failed to create link %s-%s: %w", c[0], c[1], err)
		}
		edge.SetDir("none")
		edge.SetPenWidth(1.5)
	}

	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err := gv.Render(ctx, g, gvFormat, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

// Text is the plain adjacency listing used when no image protocol is available.
func Text(m *game.NetworkMap) string {
	if m.Len() == 0 {
		return "No hosts discovered.\n"
	}
	var b strings.Builder
	for _, n := range m.Nodes() {
		mark := " "
		if n.Compromised {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %-15s %-12s %s\n", mark, n.IP, n.Hostname, n.Type)
		for _, peer := range m.ConnectedNodes(n.IP) {
			fmt.Fprintf(&b, "    └─ %s %s\n", peer.IP, peer.Hostname)
		}
	}
	return b.String()
}
