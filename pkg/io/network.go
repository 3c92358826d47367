package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/netfog/pkg/graph"
)

// Format is a network file format.
type Format string

const (
	FormatPajek Format = "net"
	FormatJSON  Format = "json"
)

// ParseFormat maps a format name to a Format. "pajek" is accepted as an
// alias for "net".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "net", "pajek":
		return FormatPajek, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Filename is the download name for f, such as "data.net".
func (f Format) Filename() string { return "data." + string(f) }

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/plain"
}

// Vertex is a network node. X and Y are canvas coordinates and are only
// meaningful when Positioned is set. Index, when set, is written instead
// of ID.
type Vertex struct {
	ID         graph.NodeID
	Index      string
	Label      string
	X, Y       float64
	Positioned bool
}

// Name returns the identifier written for v.
func (v Vertex) Name() string {
	if v.Index != "" {
		return v.Index
	}
	return v.ID.String()
}

// Link connects two vertices by ID. SourceIndex and TargetIndex, when set,
// are written instead of the IDs.
type Link struct {
	Source      graph.NodeID
	Target      graph.NodeID
	SourceIndex string
	TargetIndex string
	Weight      float64
}

// Endpoints returns the identifiers written for the source and target.
func (l Link) Endpoints() (src, dst string) {
	src, dst = l.SourceIndex, l.TargetIndex
	if src == "" {
		src = l.Source.String()
	}
	if dst == "" {
		dst = l.Target.String()
	}
	return src, dst
}

// Network is the serializable form of a graph.
//
// Detailed networks carry positions and weights in JSON output and name
// link endpoints by label; the compact form written by the editor keeps
// only labels and vertex IDs.
type Network struct {
	Vertices []Vertex
	Edges    []Link
	Arcs     []Link
	Detailed bool
}

// FromGraph converts g into a detailed network.
func FromGraph(g *graph.Graph) Network {
	nodes := g.Nodes()
	n := Network{
		Vertices: make([]Vertex, len(nodes)),
		Detailed: true,
	}
	for i, nd := range nodes {
		n.Vertices[i] = Vertex{ID: nd.ID, Label: nd.Label, X: nd.X, Y: nd.Y, Positioned: nd.Positioned}
	}
	for _, c := range g.Connections() {
		l := Link{Source: c.Source, Target: c.Target, Weight: c.Weight}
		if c.Directed {
			n.Arcs = append(n.Arcs, l)
		} else {
			n.Edges = append(n.Edges, l)
		}
	}
	return n
}

// Graph builds a graph from n. Vertex IDs are kept; links referencing a
// missing vertex fail with graph.ErrUnknownNode.
func (n Network) Graph() (*graph.Graph, error) {
	g := graph.New()
	for _, v := range n.Vertices {
		nd := graph.Node{ID: v.ID, Label: v.Label, X: v.X, Y: v.Y, Positioned: v.Positioned}
		if err := g.Insert(nd); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	add := func(links []Link, directed bool) error {
		for _, l := range links {
			c := graph.Connection{Source: l.Source, Target: l.Target, Weight: l.Weight, Directed: directed}
			if err := g.ConnectIDs(c); err != nil {
				return fmt.Errorf("link %d->%d: %w", l.Source, l.Target, err)
			}
		}
		return nil
	}
	if err := add(n.Edges, false); err != nil {
		return nil, err
	}
	if err := add(n.Arcs, true); err != nil {
		return nil, err
	}
	return g, nil
}
