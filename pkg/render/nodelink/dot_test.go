package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/netfog/pkg/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	if _, err := g.AddNodeAt("A", 100, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("B \"quoted\""); err != nil {
		t.Fatal(err)
	}
	if err := g.ConnectIDs(graph.Connection{Source: 0, Target: 1, Weight: 1}); err != nil {
		t.Fatal(err)
	}
	if err := g.ConnectIDs(graph.Connection{Source: 1, Target: 0, Weight: 3, Directed: true}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(t), Options{})

	for _, frag := range []string{
		`n0 [label="A", pos="50,-100!"];`,
		`n1 [label="B \"quoted\""];`,
		`n0 -> n1 [penwidth=1, dir=none];`,
		`n1 -> n0 [penwidth=5];`,
	} {
		if !strings.Contains(dot, frag) {
			t.Errorf("DOT lacks %s\n%s", frag, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(t), Options{Detailed: true, Scale: 1})

	for _, frag := range []string{
		`label="A\n#0"`,
		`pos="100,-200!"`,
		`label="3"`,
	} {
		if !strings.Contains(dot, frag) {
			t.Errorf("DOT lacks %s\n%s", frag, dot)
		}
	}
}

func TestPenWidth(t *testing.T) {
	tests := []struct {
		w, lo, hi, want float64
	}{
		{1, 1, 1, 1},
		{1, 1, 5, 1},
		{5, 1, 5, 5},
		{3, 1, 5, 3},
	}
	for _, tt := range tests {
		if got := penWidth(tt.w, tt.lo, tt.hi); got != tt.want {
			t.Errorf("penWidth(%v, %v, %v) = %v, want %v", tt.w, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalized = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
