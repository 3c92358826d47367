package graph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrEmptyLabel is returned by [Graph.AddNode] when the label is empty.
	ErrEmptyLabel = errors.New("node label must not be empty")

	// ErrDuplicateLabel is returned by [Graph.AddNode] when a node with the
	// same label already exists. Labels are the user-facing handle for
	// connections, so they must be unique within a graph.
	ErrDuplicateLabel = errors.New("duplicate node label")

	// ErrDuplicateNodeID is returned by [Graph.Insert] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.Connect] and [Graph.SetPosition]
	// when a referenced node does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidMatrix is returned by [FromAdjacencyMatrix] when the matrix
	// is not square or the label count does not match its size.
	ErrInvalidMatrix = errors.New("invalid adjacency matrix")
)

// NodeID identifies a node. It is the index rendered into the node<N>,
// label<N> and <A>line<B> class names of an editor document.
type NodeID int

// String returns the decimal form used in class names and export files.
func (id NodeID) String() string { return strconv.Itoa(int(id)) }

// ParseNodeID parses a decimal node index.
func ParseNodeID(s string) (NodeID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse node id %q: %w", s, err)
	}
	return NodeID(n), nil
}

// Node is a vertex with a display label and an optional canvas position.
// Positioned is false until a layout or a reader assigns X and Y.
type Node struct {
	ID         NodeID
	Label      string
	X, Y       float64
	Positioned bool
}

// Connection links two nodes. Directed connections are arcs, the rest are
// edges.
type Connection struct {
	Source   NodeID
	Target   NodeID
	Weight   float64
	Directed bool
}

// Graph is a labeled graph with weighted edges and arcs.
//
// Nodes are owned by the graph and indexed both by ID and by label, so
// lookups never scan. IDs are assigned densely from 0 in insertion order
// by [Graph.AddNode]; [Graph.Insert] accepts caller-chosen IDs.
//
// The zero value is not usable; create graphs with [New].
// Graph is not safe for concurrent use.
type Graph struct {
	nodes       []*Node
	byID        map[NodeID]*Node
	byLabel     map[string]NodeID
	connections []Connection
	nextID      NodeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:    make(map[NodeID]*Node),
		byLabel: make(map[string]NodeID),
	}
}

// AddNode appends an unpositioned node and returns its ID.
func (g *Graph) AddNode(label string) (NodeID, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	if _, exists := g.byLabel[label]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
	}
	id := g.nextID
	if err := g.Insert(Node{ID: id, Label: label}); err != nil {
		return 0, err
	}
	return id, nil
}

// AddNodeAt appends a node positioned at (x, y).
func (g *Graph) AddNodeAt(label string, x, y float64) (NodeID, error) {
	id, err := g.AddNode(label)
	if err != nil {
		return 0, err
	}
	n := g.byID[id]
	n.X, n.Y, n.Positioned = x, y, true
	return id, nil
}

// Insert adds n with its own ID. Labels are indexed when non-empty and not
// already taken; unlike AddNode, Insert tolerates empty and repeated labels
// so documents recovered from an editor round-trip unchanged.
func (g *Graph) Insert(n Node) error {
	if _, exists := g.byID[n.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateNodeID, n.ID)
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.byID[n.ID] = node
	if n.Label != "" {
		if _, taken := g.byLabel[n.Label]; !taken {
			g.byLabel[n.Label] = n.ID
		}
	}
	if n.ID >= g.nextID {
		g.nextID = n.ID + 1
	}
	return nil
}

// Connect links the nodes labeled from and to.
func (g *Graph) Connect(from, to string, weight float64, directed bool) error {
	src, ok := g.byLabel[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, from)
	}
	dst, ok := g.byLabel[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, to)
	}
	return g.ConnectIDs(Connection{Source: src, Target: dst, Weight: weight, Directed: directed})
}

// ConnectIDs adds c after checking that both endpoints exist.
func (g *Graph) ConnectIDs(c Connection) error {
	if _, ok := g.byID[c.Source]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, c.Source)
	}
	if _, ok := g.byID[c.Target]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, c.Target)
	}
	g.connections = append(g.connections, c)
	return nil
}

// SetPosition moves node id to (x, y) and marks it positioned.
func (g *Graph) SetPosition(id NodeID, x, y float64) error {
	n, ok := g.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	n.X, n.Y, n.Positioned = x, y, true
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// NodeByLabel returns the first node inserted with label.
func (g *Graph) NodeByLabel(label string) (*Node, bool) {
	id, ok := g.byLabel[label]
	if !ok {
		return nil, false
	}
	return g.byID[id], true
}

// Nodes returns the nodes in insertion order. The pointers are live: moving
// a returned node moves it in the graph.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Connections returns every connection in insertion order.
func (g *Graph) Connections() []Connection { return slices.Clone(g.connections) }

// Edges returns the undirected connections.
func (g *Graph) Edges() []Connection {
	return slices.DeleteFunc(g.Connections(), func(c Connection) bool { return c.Directed })
}

// Arcs returns the directed connections.
func (g *Graph) Arcs() []Connection {
	return slices.DeleteFunc(g.Connections(), func(c Connection) bool { return !c.Directed })
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ConnectionCount returns the number of edges plus arcs.
func (g *Graph) ConnectionCount() int { return len(g.connections) }

// WeightRange returns the smallest and largest connection weights, or
// (1, 1) for a graph without connections.
func (g *Graph) WeightRange() (lo, hi float64) {
	if len(g.connections) == 0 {
		return 1, 1
	}
	lo, hi = g.connections[0].Weight, g.connections[0].Weight
	for _, c := range g.connections[1:] {
		lo = min(lo, c.Weight)
		hi = max(hi, c.Weight)
	}
	return lo, hi
}

// FromAdjacencyMatrix builds a graph from a square weight matrix. Every
// non-zero cell m[i][j] becomes a connection i -> j. Labels default to the
// row indexes when labels is nil.
func FromAdjacencyMatrix(m [][]float64, directed bool, labels []string) (*Graph, error) {
	for i, row := range m {
		if len(row) != len(m) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMatrix, i, len(row), len(m))
		}
	}
	if labels == nil {
		labels = make([]string, len(m))
		for i := range m {
			labels[i] = strconv.Itoa(i)
		}
	}
	if len(labels) != len(m) {
		return nil, fmt.Errorf("%w: %d labels for %d rows", ErrInvalidMatrix, len(labels), len(m))
	}

	g := New()
	for _, l := range labels {
		if _, err := g.AddNode(l); err != nil {
			return nil, err
		}
	}
	for i, row := range m {
		for j, w := range row {
			if w == 0 {
				continue
			}
			if err := g.ConnectIDs(Connection{Source: NodeID(i), Target: NodeID(j), Weight: w, Directed: directed}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
