package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/netfog/pkg/cache"
	"github.com/matzehuels/netfog/pkg/graph"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/render/static"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// ErrUnknownInput is returned by [Load] for file types it cannot read.
var ErrUnknownInput = errors.New("unknown input type")

// Kind tells what a [Source] was loaded from.
type Kind int

const (
	KindGraph    Kind = iota // Pajek or JSON graph
	KindDocument             // editor SVG or HTML document
	KindStatic               // static node and connection list
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindDocument:
		return "document"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source is a loaded input. Every accessor returns a fresh copy, so one
// Source can feed any number of concurrent renders.
type Source struct {
	Name string
	Kind Kind

	// Hash is the content hash of the input bytes.
	Hash string

	graph  *graph.Graph
	doc    *svgdoc.Document
	static static.Input
}

// Load reads the input file at path. The extension picks the reader:
// .net is Pajek, .svg/.html/.htm an editor document, .yaml/.yml a static
// input, and .json either a static input (when it has a "connections"
// key or a list of plain string nodes) or a JSON graph.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(filepath.Base(path), data)
}

// LoadBytes is [Load] for in-memory input; name only supplies the extension.
func LoadBytes(name string, data []byte) (*Source, error) {
	src := &Source{Name: name, Hash: cache.Hash(data)}
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".svg", ".html", ".htm":
		src.Kind = KindDocument
		src.doc, err = svgdoc.Parse(data)
	case ".yaml", ".yml":
		src.Kind = KindStatic
		src.static, err = static.ReadInput(bytes.NewReader(data))
	case ".json":
		if isStaticJSON(data) {
			src.Kind = KindStatic
			src.static, err = static.ReadInput(bytes.NewReader(data))
			break
		}
		src.Kind = KindGraph
		src.graph, err = readGraph(data, netio.FormatJSON)
	case ".net":
		src.Kind = KindGraph
		src.graph, err = readGraph(data, netio.FormatPajek)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return src, nil
}

func readGraph(data []byte, f netio.Format) (*graph.Graph, error) {
	n, err := netio.Read(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	return n.Graph()
}

// isStaticJSON tells a static input from a JSON graph, whose nodes are
// objects and which has no "connections" key.
func isStaticJSON(data []byte) bool {
	var probe struct {
		Nodes       []json.RawMessage `json:"nodes"`
		Connections json.RawMessage   `json:"connections"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	if probe.Connections != nil {
		return true
	}
	return len(probe.Nodes) > 0 && bytes.HasPrefix(bytes.TrimSpace(probe.Nodes[0]), []byte(`"`))
}

// Graph returns the input as a graph. Documents are extracted, static
// inputs become unpositioned nodes joined by undirected unit-weight edges.
func (s *Source) Graph() (*graph.Graph, error) {
	switch s.Kind {
	case KindDocument:
		return s.doc.Extract().Network().Graph()
	case KindStatic:
		return staticGraph(s.static)
	default:
		return netio.FromGraph(s.graph).Graph()
	}
}

// StaticInput returns the input as a static node and connection list.
func (s *Source) StaticInput() (static.Input, error) {
	if s.Kind == KindStatic {
		return static.Input{
			Nodes:       append([]string(nil), s.static.Nodes...),
			Connections: append([]static.Connection(nil), s.static.Connections...),
		}, nil
	}
	g, err := s.Graph()
	if err != nil {
		return static.Input{}, err
	}
	return static.InputFromGraph(g), nil
}

func staticGraph(in static.Input) (*graph.Graph, error) {
	g := graph.New()
	for i, label := range in.Nodes {
		if err := g.Insert(graph.Node{ID: graph.NodeID(i), Label: label}); err != nil {
			return nil, err
		}
	}
	for _, c := range in.Connections {
		if err := g.Connect(c.From, c.To, 1, false); err != nil {
			return nil, err
		}
	}
	return g, nil
}
