package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/layout"
)

type jsonNetwork struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonLink `json:"edges"`
	Arcs  []jsonLink `json:"arcs"`
}

type jsonNode struct {
	Label string   `json:"label"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

type jsonLink struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight *float64 `json:"weight,omitempty"`
}

// WritePajek writes n in Pajek format.
func WritePajek(w io.Writer, n Network) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "*Vertices %d\n", len(n.Vertices))
	for _, v := range n.Vertices {
		if !v.Positioned {
			fmt.Fprintf(bw, "%s \"%s\"\n", v.Name(), v.Label)
			continue
		}
		nx, ny := layout.Normalize(v.X, v.Y)
		fmt.Fprintf(bw, "%s \"%s\" %.4f %.4f\n", v.Name(), v.Label, nx, ny)
	}
	writeLinks(bw, "*Edges", n.Edges)
	writeLinks(bw, "*Arcs", n.Arcs)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write pajek: %w", err)
	}
	return nil
}

func writeLinks(w io.Writer, header string, links []Link) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintln(w, header)
	for _, l := range links {
		src, dst := l.Endpoints()
		fmt.Fprintf(w, "%s %s %g\n", src, dst, l.Weight)
	}
}

// WriteJSON writes n as a single line of JSON without a trailing newline.
// Empty sections are written as empty arrays.
func WriteJSON(w io.Writer, n Network) error {
	out := jsonNetwork{
		Nodes: make([]jsonNode, len(n.Vertices)),
		Edges: make([]jsonLink, 0, len(n.Edges)),
		Arcs:  make([]jsonLink, 0, len(n.Arcs)),
	}
	labels := make(map[graph.NodeID]string, len(n.Vertices))
	for i, v := range n.Vertices {
		nd := jsonNode{Label: v.Label}
		if n.Detailed && v.Positioned {
			x, y := v.X, v.Y
			nd.X, nd.Y = &x, &y
		}
		out.Nodes[i] = nd
		labels[v.ID] = v.Label
	}

	endpoint := func(id graph.NodeID, name string) string {
		if l, ok := labels[id]; ok && n.Detailed {
			return l
		}
		return name
	}
	convert := func(l Link) jsonLink {
		src, dst := l.Endpoints()
		jl := jsonLink{Source: endpoint(l.Source, src), Target: endpoint(l.Target, dst)}
		if n.Detailed {
			wt := l.Weight
			jl.Weight = &wt
		}
		return jl
	}
	for _, l := range n.Edges {
		out.Edges = append(out.Edges, convert(l))
	}
	for _, l := range n.Arcs {
		out.Arcs = append(out.Arcs, convert(l))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// Write writes n in format f.
func Write(w io.Writer, n Network, f Format) error {
	switch f {
	case FormatPajek:
		return WritePajek(w, n)
	case FormatJSON:
		return WriteJSON(w, n)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Export writes n to path, choosing the format from the file extension.
func Export(n Network, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return Write(file, n, f)
}
