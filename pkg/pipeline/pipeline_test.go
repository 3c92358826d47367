package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netfog/pkg/cache"
	"github.com/matzehuels/netfog/pkg/graph"
	netio "github.com/matzehuels/netfog/pkg/io"
	"github.com/matzehuels/netfog/pkg/layout"
	"github.com/matzehuels/netfog/pkg/render/static"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

const samplePajek = `*Vertices 3
0 "A" 0.1000 0.2000
1 "B"
2 "C"
*Edges
0 1 1
*Arcs
1 2 2
`

const sampleStatic = "nodes: [a, b, c]\nconnections:\n  - {from: a, to: b}\n  - {from: b, to: c}\n"

func mustLoad(t *testing.T, name, data string) *Source {
	t.Helper()
	src, err := LoadBytes(name, []byte(data))
	if err != nil {
		t.Fatalf("LoadBytes(%s): %v", name, err)
	}
	return src
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"editor", false},
		{"static", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		vizType, format string
		wantErr         bool
	}{
		{"editor", "svg", false},
		{"editor", "html", false},
		{"editor", "png", true},
		{"static", "png", false},
		{"static", "html", false},
		{"static", "dot", true},
		{"nodelink", "dot", false},
		{"nodelink", "html", true},
		{"editor", "SVG", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.vizType, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.vizType, tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.VizType != VizEditor || opts.Format != FormatSVG {
		t.Errorf("viz/format = %s/%s, want editor/svg", opts.VizType, opts.Format)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Style != svgdoc.DefaultStyle() || opts.Canvas != layout.DefaultCanvas || opts.Window != static.DefaultWindow {
		t.Error("style, canvas and window should default")
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}

	opts = Options{VizType: VizNodelink}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Format != FormatSVG {
		t.Errorf("nodelink default format = %q", opts.Format)
	}

	opts = Options{VizType: VizStatic, Format: FormatDOT}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("static/dot should fail validation")
	}
}

func TestLoadBytesKinds(t *testing.T) {
	tests := []struct {
		name, data string
		want       Kind
	}{
		{"g.net", samplePajek, KindGraph},
		{"g.json", `{"nodes":[{"label":"A"}],"edges":[],"arcs":[]}`, KindGraph},
		{"s.json", `{"nodes":["a","b"]}`, KindStatic},
		{"s.json", `{"nodes":[],"connections":[]}`, KindStatic},
		{"s.yaml", sampleStatic, KindStatic},
		{"d.svg", `<svg><circle class="node0" cx="1" cy="2" r="20"/></svg>`, KindDocument},
		{"d.HTML", `<html><body><svg></svg></body></html>`, KindDocument},
	}
	for _, tt := range tests {
		src := mustLoad(t, tt.name, tt.data)
		if src.Kind != tt.want {
			t.Errorf("%s: kind = %v, want %v", tt.name, src.Kind, tt.want)
		}
		if src.Hash != cache.Hash([]byte(tt.data)) {
			t.Errorf("%s: hash mismatch", tt.name)
		}
	}
}

func TestLoadBytesErrors(t *testing.T) {
	if _, err := LoadBytes("g.txt", nil); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("txt: err = %v, want ErrUnknownInput", err)
	}
	if _, err := LoadBytes("d.svg", []byte("no svg here")); !errors.Is(err, svgdoc.ErrNoSVG) {
		t.Errorf("svg: err = %v, want ErrNoSVG", err)
	}
	if _, err := LoadBytes("g.net", []byte("*Bogus\n")); !errors.Is(err, netio.ErrMalformed) {
		t.Errorf("net: err = %v, want ErrMalformed", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.net")
	if err := os.WriteFile(path, []byte(samplePajek), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Name != "g.net" {
		t.Errorf("Name = %q", src.Name)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.net")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestSourceGraphIsFresh(t *testing.T) {
	src := mustLoad(t, "g.net", samplePajek)
	g1, err := src.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if err := g1.SetPosition(1, 5, 5); err != nil {
		t.Fatal(err)
	}
	g2, err := src.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := g2.Node(1); n.Positioned {
		t.Error("mutating one Graph() result leaked into the next")
	}
	if g2.NodeCount() != 3 || len(g2.Edges()) != 1 || len(g2.Arcs()) != 1 {
		t.Errorf("graph = %d nodes, %d edges, %d arcs", g2.NodeCount(), len(g2.Edges()), len(g2.Arcs()))
	}
}

func TestStaticSourceGraph(t *testing.T) {
	src := mustLoad(t, "s.yaml", sampleStatic)
	g, err := src.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 3 || len(g.Edges()) != 2 || len(g.Arcs()) != 0 {
		t.Errorf("graph = %d nodes, %d edges, %d arcs", g.NodeCount(), len(g.Edges()), len(g.Arcs()))
	}

	bad := mustLoad(t, "s.yaml", "nodes: [a]\nconnections:\n  - {from: a, to: z}\n")
	if _, err := bad.Graph(); !errors.Is(err, graph.ErrUnknownNode) {
		t.Errorf("err = %v, want graph.ErrUnknownNode", err)
	}
}

func TestEditorDocumentKeepsPositions(t *testing.T) {
	src := mustLoad(t, "g.net", samplePajek)
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	doc, err := EditorDocument(src, opts)
	if err != nil {
		t.Fatalf("EditorDocument: %v", err)
	}
	p, ok := doc.Placement(0)
	if !ok {
		t.Fatal("node 0 missing")
	}
	if x, y := layout.Denormalize(0.1, 0.2); p.CX != x || p.CY != y {
		t.Errorf("node 0 at (%v, %v), want (%v, %v)", p.CX, p.CY, x, y)
	}
	for _, id := range []graph.NodeID{1, 2} {
		p, ok := doc.Placement(id)
		if !ok {
			t.Fatalf("node %d missing", id)
		}
		if p.CX < opts.Canvas.MinX || p.CX >= opts.Canvas.MaxX || p.CY < opts.Canvas.MinY || p.CY >= opts.Canvas.MaxY {
			t.Errorf("node %d at (%v, %v) outside canvas", id, p.CX, p.CY)
		}
	}
}

func TestEditorDocumentClonesDocuments(t *testing.T) {
	src := mustLoad(t, "d.svg", `<svg><circle class="node0" cx="1" cy="2" r="20"/></svg>`)
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	a, err := EditorDocument(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	a.MoveNode(0, 10, 10)
	b, err := EditorDocument(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := b.Placement(0); p.CX != 1 || p.CY != 2 {
		t.Errorf("source document was mutated: (%v, %v)", p.CX, p.CY)
	}
}

func TestRunnerRender(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	src := mustLoad(t, "g.net", samplePajek)

	first, hit, err := r.Render(ctx, src, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	second, hit, err := r.Render(ctx, src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit || !bytes.Equal(first, second) {
		t.Errorf("second render hit=%v equal=%v", hit, bytes.Equal(first, second))
	}

	_, hit, err = r.Render(ctx, src, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different seed should miss")
	}
}

func TestRunnerRenderFormats(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	src := mustLoad(t, "s.yaml", sampleStatic)

	tests := []struct {
		opts  Options
		check func([]byte) bool
	}{
		{Options{VizType: VizEditor, Format: FormatSVG}, func(b []byte) bool { return bytes.Contains(b, []byte(`class="0line1"`)) }},
		{Options{VizType: VizEditor, Format: FormatHTML, SocketPath: "/ws"}, func(b []byte) bool { return bytes.Contains(b, []byte(`data-socket="/ws"`)) }},
		{Options{VizType: VizStatic, Format: FormatSVG}, func(b []byte) bool { return bytes.Contains(b, []byte("<svg")) }},
		{Options{VizType: VizStatic, Format: FormatHTML}, func(b []byte) bool { return bytes.Contains(b, []byte("<!DOCTYPE html>")) }},
		{Options{VizType: VizNodelink, Format: FormatDOT}, func(b []byte) bool { return strings.HasPrefix(string(b), "digraph") }},
	}
	for _, tt := range tests {
		t.Run(tt.opts.VizType+"/"+tt.opts.Format, func(t *testing.T) {
			data, _, err := r.Render(ctx, src, tt.opts)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !tt.check(data) {
				t.Errorf("unexpected output:\n%s", data)
			}
		})
	}
}

func TestRunnerRenderStaticPNG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := mustLoad(t, "s.yaml", sampleStatic)
	data, _, err := r.Render(context.Background(), src, Options{VizType: VizStatic, Format: FormatPNG, Window: static.Window{Width: 200, Height: 100, Margin: 20}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRunnerRenderInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := mustLoad(t, "g.net", samplePajek)
	if _, _, err := r.Render(context.Background(), src, Options{VizType: "tower"}); err == nil {
		t.Error("expected error for unknown viz type")
	}
}

func TestRunnerDocumentAndExport(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	src := mustLoad(t, "g.net", samplePajek)

	doc, err := r.Document(ctx, src, Options{})
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	out, _, err := r.Export(ctx, doc, netio.FormatJSON)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := `{"nodes":[{"label":"A"},{"label":"B"},{"label":"C"}],"edges":[{"source":"0","target":"1"}],"arcs":[{"source":"1","target":"2"}]}`
	if string(out) != want {
		t.Errorf("Export json:\n got %s\nwant %s", out, want)
	}

	net, _, err := r.Export(ctx, doc, netio.FormatPajek)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(string(net), "*Vertices 3\n0 \"A\" 0.1000 0.2000\n") {
		t.Errorf("Export net:\n%s", net)
	}

	if _, _, err := r.Export(ctx, doc, netio.Format("xml")); !errors.Is(err, netio.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindGraph: "graph", KindDocument: "document", KindStatic: "static", Kind(9): "Kind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
