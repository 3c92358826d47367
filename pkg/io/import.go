package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/layout"
)

type pajekSection int

const (
	sectionNone pajekSection = iota
	sectionVertices
	sectionEdges
	sectionArcs
)

// ReadPajek decodes a Pajek network from r.
//
// Section headers are matched case-insensitively. Vertex lines are
// "id "label" [x y]" with normalized coordinates, which are scaled back to
// the reference canvas. Link lines are "source target [weight]"; the
// weight defaults to 1. Blank lines and lines starting with '%' are
// skipped. ReadPajek does not check that links reference known vertices;
// [Network.Graph] does.
func ReadPajek(r io.Reader) (Network, error) {
	n := Network{Detailed: true}
	section := sectionNone

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "*") {
			head := strings.ToLower(strings.Fields(line)[0])
			switch head {
			case "*vertices":
				section = sectionVertices
			case "*edges":
				section = sectionEdges
			case "*arcs":
				section = sectionArcs
			default:
				return Network{}, fmt.Errorf("%w: line %d: unsupported section %s", ErrMalformed, lineNo, head)
			}
			continue
		}

		switch section {
		case sectionVertices:
			v, err := parseVertex(line)
			if err != nil {
				return Network{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			n.Vertices = append(n.Vertices, v)
		case sectionEdges, sectionArcs:
			l, err := parseLink(line)
			if err != nil {
				return Network{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if section == sectionArcs {
				n.Arcs = append(n.Arcs, l)
			} else {
				n.Edges = append(n.Edges, l)
			}
		default:
			return Network{}, fmt.Errorf("%w: line %d: data before *Vertices", ErrMalformed, lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return Network{}, fmt.Errorf("read pajek: %w", err)
	}
	return n, nil
}

func parseVertex(line string) (Vertex, error) {
	idField, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		idField, rest = line[:i], line[i:]
	}
	id, err := graph.ParseNodeID(idField)
	if err != nil {
		return Vertex{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v := Vertex{ID: id}

	rest = strings.TrimSpace(rest)
	var coords []string
	if start, end := strings.IndexByte(rest, '"'), strings.LastIndexByte(rest, '"'); start == 0 && end > start {
		v.Label = rest[start+1 : end]
		coords = strings.Fields(rest[end+1:])
	} else {
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			v.Label = fields[0]
			coords = fields[1:]
		}
	}

	if len(coords) >= 2 {
		x, errX := strconv.ParseFloat(coords[0], 64)
		y, errY := strconv.ParseFloat(coords[1], 64)
		if errX != nil || errY != nil {
			return Vertex{}, fmt.Errorf("%w: bad coordinates %q", ErrMalformed, strings.Join(coords, " "))
		}
		v.X, v.Y = layout.Denormalize(x, y)
		v.Positioned = true
	}
	return v, nil
}

func parseLink(line string) (Link, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Link{}, fmt.Errorf("%w: link %q needs source and target", ErrMalformed, line)
	}
	src, err := graph.ParseNodeID(fields[0])
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	dst, err := graph.ParseNodeID(fields[1])
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	l := Link{Source: src, Target: dst, Weight: 1}
	if len(fields) >= 3 {
		w, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Link{}, fmt.Errorf("%w: bad weight %q", ErrMalformed, fields[2])
		}
		l.Weight = w
	}
	return l, nil
}

// ReadJSON decodes a JSON network from r.
//
// Nodes receive IDs in list order. A link endpoint names a node by label,
// or failing that by its decimal ID. Missing weights default to 1.
func ReadJSON(r io.Reader) (Network, error) {
	var data jsonNetwork
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Network{}, fmt.Errorf("decode: %w", err)
	}

	n := Network{Detailed: true, Vertices: make([]Vertex, len(data.Nodes))}
	byLabel := make(map[string]graph.NodeID, len(data.Nodes))
	for i, nd := range data.Nodes {
		id := graph.NodeID(i)
		v := Vertex{ID: id, Label: nd.Label}
		if nd.X != nil && nd.Y != nil {
			v.X, v.Y, v.Positioned = *nd.X, *nd.Y, true
		}
		n.Vertices[i] = v
		if _, taken := byLabel[nd.Label]; !taken {
			byLabel[nd.Label] = id
		}
	}

	resolve := func(ref string) (graph.NodeID, error) {
		if id, ok := byLabel[ref]; ok {
			return id, nil
		}
		id, err := graph.ParseNodeID(ref)
		if err != nil || int(id) < 0 || int(id) >= len(n.Vertices) {
			return 0, fmt.Errorf("%w: %q", graph.ErrUnknownNode, ref)
		}
		return id, nil
	}
	convert := func(links []jsonLink) ([]Link, error) {
		var out []Link
		for _, jl := range links {
			src, err := resolve(jl.Source)
			if err != nil {
				return nil, fmt.Errorf("link %s->%s: %w", jl.Source, jl.Target, err)
			}
			dst, err := resolve(jl.Target)
			if err != nil {
				return nil, fmt.Errorf("link %s->%s: %w", jl.Source, jl.Target, err)
			}
			l := Link{Source: src, Target: dst, Weight: 1}
			if jl.Weight != nil {
				l.Weight = *jl.Weight
			}
			out = append(out, l)
		}
		return out, nil
	}

	var err error
	if n.Edges, err = convert(data.Edges); err != nil {
		return Network{}, err
	}
	if n.Arcs, err = convert(data.Arcs); err != nil {
		return Network{}, err
	}
	return n, nil
}

// Read decodes a network in format f.
func Read(r io.Reader, f Format) (Network, error) {
	switch f {
	case FormatPajek:
		return ReadPajek(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return Network{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Import reads the network file at path, choosing the format from the
// file extension.
func Import(path string) (Network, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Network{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Network{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	n, err := Read(file, f)
	if err != nil {
		return Network{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// ImportGraph reads the network file at path into a graph.
func ImportGraph(path string) (*graph.Graph, error) {
	n, err := Import(path)
	if err != nil {
		return nil, err
	}
	return n.Graph()
}
