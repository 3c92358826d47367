package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netfog/pkg/pipeline"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		viz     string
		format  string
		output  string
		want    string
		wantErr bool
	}{
		{"editor default", pipeline.VizEditor, "", "", "svg", false},
		{"static default", pipeline.VizStatic, "", "", "svg", false},
		{"nodelink default", pipeline.VizNodelink, "", "", "svg", false},
		{"flag wins", pipeline.VizEditor, "html", "out.svg", "html", false},
		{"from extension", pipeline.VizStatic, "", "out.png", "png", false},
		{"unsupported extension ignored", pipeline.VizEditor, "", "out.png", "svg", false},
		{"dot", pipeline.VizNodelink, "dot", "", "dot", false},
		{"bad format", pipeline.VizEditor, "png", "", "", true},
		{"bad viz", "tower", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.viz, tt.format, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, viz, format string
		want                       string
	}{
		{"", "graph.net", "editor", "svg", "graph.svg"},
		{"", "dir/graph.json", "static", "png", "dir/graph.png"},
		{"", "doc.svg", "editor", "svg", "doc_editor.svg"},
		{"out.html", "graph.net", "editor", "html", "out.html"},
		{"-", "graph.net", "editor", "svg", "-"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.viz, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		out   string
		check func(t *testing.T, data string)
	}{
		{
			name: "editor svg",
			args: []string{"-t", "editor"},
			out:  "graph.svg",
			check: func(t *testing.T, data string) {
				for _, want := range []string{`class="node0"`, `class="label2"`, `class="1line2"`, `cx="150"`} {
					if !strings.Contains(data, want) {
						t.Errorf("document missing %q", want)
					}
				}
			},
		},
		{
			name: "editor html",
			args: []string{"-t", "editor", "-f", "html"},
			out:  "graph.html",
			check: func(t *testing.T, data string) {
				if !strings.Contains(data, "<html") || strings.Contains(data, "data-socket") {
					t.Error("expected a read-only editor page")
				}
			},
		},
		{
			name: "static png",
			args: []string{"-t", "static", "-f", "png"},
			out:  "graph.png",
			check: func(t *testing.T, data string) {
				if !strings.HasPrefix(data, "\x89PNG") {
					t.Error("not a PNG")
				}
			},
		},
		{
			name: "nodelink dot",
			args: []string{"-t", "nodelink", "-f", "dot", "--detailed"},
			out:  "graph.dot",
			check: func(t *testing.T, data string) {
				if !strings.HasPrefix(data, "digraph G {") {
					t.Errorf("unexpected dot:\n%s", data)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			input := writeFile(t, "graph.net", samplePajek)
			args := append([]string{"render", input, "--no-cache"}, tt.args...)
			if _, err := execute(c, args...); err != nil {
				t.Fatalf("render: %v", err)
			}
			data, err := os.ReadFile(filepath.Join(filepath.Dir(input), tt.out))
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			tt.check(t, string(data))
		})
	}
}

func TestRenderCached(t *testing.T) {
	c, status := newTestCLI(t)
	input := writeFile(t, "graph.net", samplePajek)
	output := filepath.Join(t.TempDir(), "out", "graph.svg")

	for i, want := range []string{iconFresh, iconCached} {
		status.Reset()
		if _, err := execute(c, "render", input, "-o", output); err != nil {
			t.Fatalf("render #%d: %v", i+1, err)
		}
		if !strings.Contains(status.String(), want) {
			t.Errorf("render #%d status = %q, want %q", i+1, status.String(), want)
		}
		if !strings.Contains(status.String(), "3 nodes") {
			t.Errorf("render #%d status missing node count: %q", i+1, status.String())
		}
	}
}

func TestRenderErrors(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeFile(t, "graph.net", samplePajek)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"render", filepath.Join(t.TempDir(), "none.net")}},
		{"bad type", []string{"render", input, "-t", "tower"}},
		{"bad format", []string{"render", input, "-t", "editor", "-f", "png"}},
		{"unknown extension", []string{"render", writeFile(t, "graph.txt", "x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(c, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
