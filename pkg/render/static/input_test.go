package static

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/netfog/pkg/graph"
)

func TestReadInput(t *testing.T) {
	want := Input{
		Nodes:       []string{"a", "b"},
		Connections: []Connection{{From: "a", To: "b"}},
	}
	tests := map[string]string{
		"yaml": "nodes: [a, b]\nconnections:\n  - from: a\n    to: b\n",
		"json": `{"nodes": ["a", "b"], "connections": [{"from": "a", "to": "b"}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ReadInput(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("ReadInput: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadInputErrors(t *testing.T) {
	if _, err := ReadInput(strings.NewReader("")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty: err = %v, want ErrEmptyInput", err)
	}
	if _, err := ReadInput(strings.NewReader("nodes: {a: 1")); err == nil {
		t.Error("malformed: expected error")
	}
}

func TestLoadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	if err := os.WriteFile(path, []byte("nodes: [x]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := LoadInput(path)
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if len(in.Nodes) != 1 || in.Nodes[0] != "x" || len(in.Connections) != 0 {
		t.Errorf("LoadInput = %+v", in)
	}
	if _, err := LoadInput(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestInputFromGraph(t *testing.T) {
	g := graph.New()
	for _, l := range []string{"a", "b", "c"} {
		if _, err := g.AddNode(l); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Connect("a", "b", 3, true); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect("c", "a", 1, false); err != nil {
		t.Fatal(err)
	}

	want := Input{
		Nodes:       []string{"a", "b", "c"},
		Connections: []Connection{{From: "a", To: "b"}, {From: "c", To: "a"}},
	}
	if diff := cmp.Diff(want, InputFromGraph(g)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := Place(InputFromGraph(g), DefaultWindow, seeded(1)); err != nil {
		t.Errorf("Place: %v", err)
	}
}
