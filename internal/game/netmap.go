package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dominikbraun/graph"
)

// ErrUnknownNode is returned when an operation names an IP that is not on the map.
var ErrUnknownNode = errors.New("unknown network node")

// NodeType classifies a discovered host.
type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeServer
	NodeWorkstation
	NodeRouter
	NodeFirewall
	NodeDatabase
	NodeWebServer
	NodeMailServer
	NodeDomainController
)

var nodeTypeNames = map[NodeType]string{
	NodeUnknown:          "Unknown",
	NodeServer:           "Server",
	NodeWorkstation:      "Workstation",
	NodeRouter:           "Router",
	NodeFirewall:         "Firewall",
	NodeDatabase:         "Database",
	NodeWebServer:        "WebServer",
	NodeMailServer:       "MailServer",
	NodeDomainController: "DomainController",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t NodeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *NodeType) UnmarshalText(text []byte) error {
	for k, name := range nodeTypeNames {
		if name == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("invalid node type %q", text)
}

// SecurityLevel is how hardened a host is.
type SecurityLevel int

const (
	SecurityNone SecurityLevel = iota
	SecurityLow
	SecurityMedium
	SecurityHigh
	SecurityMaximum
)

var securityLevelNames = [...]string{"None", "Low", "Medium", "High", "Maximum"}

func (s SecurityLevel) String() string {
	if s < SecurityNone || s > SecurityMaximum {
		return "Unknown"
	}
	return securityLevelNames[s]
}

func (s SecurityLevel) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SecurityLevel) UnmarshalText(text []byte) error {
	for i, name := range securityLevelNames {
		if name == string(text) {
			*s = SecurityLevel(i)
			return nil
		}
	}
	return fmt.Errorf("invalid security level %q", text)
}

// NetworkNode is one discovered host.
type NetworkNode struct {
	IP            string        `json:"ip"`
	Hostname      string        `json:"hostname"`
	Type          NodeType      `json:"node_type"`
	Compromised   bool          `json:"is_compromised"`
	SecurityLevel SecurityLevel `json:"security_level"`
	DiscoveredAt  time.Time     `json:"discovered_at"`
}

// Connection is an unordered pair of node IPs.
type Connection [2]string

// NetworkMap is the set of hosts the player has discovered and the links
// between them. Nodes are keyed by IP; connections are undirected.
type NetworkMap struct {
	nodes       map[string]*NetworkNode
	order       []string
	connections []Connection
	g           graph.Graph[string, string]
}

// NewNetworkMap returns an empty map.
func NewNetworkMap() *NetworkMap {
	return &NetworkMap{
		nodes: make(map[string]*NetworkNode),
		g:     graph.New(graph.StringHash),
	}
}

// AddNode records a host. It reports false if the IP is already known,
// in which case the existing node is left untouched.
func (m *NetworkMap) AddNode(node NetworkNode) bool {
	if _, exists := m.nodes[node.IP]; exists {
		return false
	}
	if err := m.g.AddVertex(node.IP); err != nil {
		return false
	}
	n := node
	m.nodes[node.IP] = &n
	m.order = append(m.order, node.IP)
	return true
}

// AddConnection links two known hosts. Adding an existing pair in either
// order is a no-op. Self links are rejected.
func (m *NetworkMap) AddConnection(a, b string) error {
	if a == b {
		return fmt.Errorf("cannot connect %s to itself", a)
	}
	if _, ok := m.nodes[a]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, a)
	}
	if _, ok := m.nodes[b]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, b)
	}
	err := m.g.AddEdge(a, b)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to connect %s to %s: %w", a, b, err)
	}
	m.connections = append(m.connections, Connection{a, b})
	return nil
}

// Node returns a copy of the host with the given IP.
func (m *NetworkMap) Node(ip string) (NetworkNode, bool) {
	n, ok := m.nodes[ip]
	if !ok {
		return NetworkNode{}, false
	}
	return *n, true
}

// Nodes returns all hosts in discovery order.
func (m *NetworkMap) Nodes() []NetworkNode {
	out := make([]NetworkNode, 0, len(m.order))
	for _, ip := range m.order {
		out = append(out, *m.nodes[ip])
	}
	return out
}

// Connections returns all links in the order they were made.
func (m *NetworkMap) Connections() []Connection {
	return append([]Connection(nil), m.connections...)
}

// Len is the number of known hosts.
func (m *NetworkMap) Len() int { return len(m.order) }

// ConnectedNodes returns the direct neighbours of ip in link order.
func (m *NetworkMap) ConnectedNodes(ip string) []NetworkNode {
	adjacency, err := m.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	neighbours := adjacency[ip]
	var out []NetworkNode
	for _, c := range m.connections {
		var other string
		switch ip {
		case c[0]:
			other = c[1]
		case c[1]:
			other = c[0]
		default:
			continue
		}
		if _, ok := neighbours[other]; ok {
			out = append(out, *m.nodes[other])
		}
	}
	return out
}

// MarkCompromised flags a host as owned. It reports whether the flag changed.
func (m *NetworkMap) MarkCompromised(ip string) (bool, error) {
	n, ok := m.nodes[ip]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownNode, ip)
	}
	if n.Compromised {
		return false, nil
	}
	n.Compromised = true
	return true, nil
}

// Route returns the shortest hop path between two hosts, endpoints included.
func (m *NetworkMap) Route(from, to string) ([]string, error) {
	if _, ok := m.nodes[from]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if _, ok := m.nodes[to]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}
	path, err := graph.ShortestPath(m.g, from, to)
	if err != nil {
		return nil, fmt.Errorf("no route from %s to %s: %w", from, to, err)
	}
	return path, nil
}

type networkMapJSON struct {
	Nodes       []NetworkNode `json:"nodes"`
	Connections []Connection  `json:"connections"`
}

// MarshalJSON encodes nodes and connections in insertion order.
func (m *NetworkMap) MarshalJSON() ([]byte, error) {
	doc := networkMapJSON{Nodes: m.Nodes(), Connections: m.Connections()}
	if doc.Connections == nil {
		doc.Connections = []Connection{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON rebuilds the map, including the adjacency graph.
func (m *NetworkMap) UnmarshalJSON(data []byte) error {
	var doc networkMapJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	fresh := NewNetworkMap()
	for _, n := range doc.Nodes {
		if !fresh.AddNode(n) {
			return fmt.Errorf("duplicate node %s", n.IP)
		}
	}
	for _, c := range doc.Connections {
		if err := fresh.AddConnection(c[0], c[1]); err != nil {
			return err
		}
	}
	*m = *fresh
	return nil
}
