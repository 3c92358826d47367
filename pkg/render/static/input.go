package static

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netfog/pkg/graph"
)

// ErrEmptyInput is returned by [ReadInput] for an empty document.
var ErrEmptyInput = errors.New("empty input")

// ReadInput decodes an input document:
//
//	nodes: [A, B, C]
//	connections:
//	  - {from: A, to: B}
//
// JSON documents with the same shape are accepted too.
func ReadInput(r io.Reader) (Input, error) {
	var in Input
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return Input{}, ErrEmptyInput
		}
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}

// LoadInput reads the input document at path.
func LoadInput(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, err
	}
	defer f.Close()
	return ReadInput(f)
}

// InputFromGraph lists the labels and connections of g. Direction and
// weight are dropped; static drawings have neither.
func InputFromGraph(g *graph.Graph) Input {
	nodes := g.Nodes()
	in := Input{Nodes: make([]string, len(nodes))}
	for i, n := range nodes {
		in.Nodes[i] = n.Label
	}
	for _, c := range g.Connections() {
		from, _ := g.Node(c.Source)
		to, _ := g.Node(c.Target)
		in.Connections = append(in.Connections, Connection{From: from.Label, To: to.Label})
	}
	return in
}
