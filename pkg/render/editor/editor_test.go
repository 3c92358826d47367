package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

func testDocument(t *testing.T) *svgdoc.Document {
	t.Helper()
	g := graph.New()
	if _, err := g.AddNodeAt("A", 100, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNodeAt("B", 300, 200); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect("A", "B", 1, true); err != nil {
		t.Fatal(err)
	}
	doc, err := svgdoc.Render(g, svgdoc.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPageLive(t *testing.T) {
	out, err := Page(testDocument(t), Options{Title: "demo", SocketPath: "/ws"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"<title>demo</title>",
		`data-socket="/ws"`,
		`class="node0"`,
		`class="0line1"`,
		`data-format="net"`,
		"new WebSocket(",
		"#sideMenu.open",
		"connecting",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestScriptMatchesDocumentClasses(t *testing.T) {
	for _, want := range []string{
		"/" + svgdoc.NodeClassPattern + "/",
		"/" + svgdoc.LabelClassPattern + "/",
		"lines[l.seq]",
	} {
		if !strings.Contains(editorJS, want) {
			t.Errorf("editor script missing %q", want)
		}
	}
	if strings.Contains(editorJS, "^node") {
		t.Error("editor script anchors the node class pattern")
	}
}

func TestPageReadOnly(t *testing.T) {
	out, err := Page(testDocument(t), Options{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "data-socket") {
		t.Error("read-only page should not carry a socket path")
	}
	if !strings.Contains(html, "<title>netfog</title>") {
		t.Error("missing default title")
	}
	if !strings.Contains(html, "read-only") {
		t.Error("missing read-only status")
	}
}

func TestPageRoundTrip(t *testing.T) {
	out, err := Page(testDocument(t), Options{SocketPath: "/ws"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	ex, err := svgdoc.Extract(out)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(ex.Nodes) != 2 || len(ex.Arcs) != 1 || len(ex.Edges) != 0 {
		t.Errorf("extracted %d nodes, %d edges, %d arcs; want 2, 0, 1", len(ex.Nodes), len(ex.Edges), len(ex.Arcs))
	}
}

func TestPageNilDocument(t *testing.T) {
	if _, err := Page(nil, Options{}); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Page(nil) error = %v, want ErrNoDocument", err)
	}
}

func TestStaticPage(t *testing.T) {
	out, err := StaticPage([]byte(`<svg width="10" height="10"></svg>`), "")
	if err != nil {
		t.Fatalf("StaticPage: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<svg width="10" height="10"></svg>`) {
		t.Errorf("svg not embedded verbatim:\n%s", html)
	}
	if !strings.Contains(html, "<title>netfog</title>") {
		t.Error("missing default title")
	}
}
