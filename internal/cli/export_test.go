package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperr "github.com/matzehuels/netfog/pkg/errors"
)

// renderDocument renders samplePajek to an editor document and returns its
// path.
func renderDocument(t *testing.T, c *CLI) string {
	t.Helper()
	input := writeFile(t, "graph.net", samplePajek)
	doc := filepath.Join(t.TempDir(), "graph.svg")
	if _, err := execute(c, "render", input, "-o", doc, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	return doc
}

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		out  string
		want string
	}{
		{
			name: "pajek by default",
			out:  "graph.net",
			want: "*Vertices 3\n0 \"A\" 0.1000 0.2000\n1 \"B\" 0.5000 0.5000\n2 \"C\" 0.9000 0.8000\n*Edges\n0 1 1\n*Arcs\n1 2 1\n",
		},
		{
			name: "json by flag",
			args: []string{"-f", "json"},
			out:  "graph.json",
			want: `{"nodes":[{"label":"A"},{"label":"B"},{"label":"C"}],"edges":[{"source":"0","target":"1"}],"arcs":[{"source":"1","target":"2"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			doc := renderDocument(t, c)
			args := append([]string{"export", doc, "--no-cache"}, tt.args...)
			if _, err := execute(c, args...); err != nil {
				t.Fatalf("export: %v", err)
			}
			data, err := os.ReadFile(filepath.Join(filepath.Dir(doc), tt.out))
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(data)); diff != "" {
				t.Errorf("export mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportFormatFromOutput(t *testing.T) {
	c, _ := newTestCLI(t)
	doc := renderDocument(t, c)
	out := filepath.Join(t.TempDir(), "edited.json")
	if _, err := execute(c, "export", doc, "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `{"nodes":`) {
		t.Errorf("expected JSON, got %q", data)
	}
}

func TestExportErrors(t *testing.T) {
	c, _ := newTestCLI(t)

	_, err := execute(c, "export", writeFile(t, "graph.net", samplePajek))
	if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("graph input: err = %v, want %s", err, apperr.ErrCodeInvalidInput)
	}

	_, err = execute(c, "export", renderDocument(t, c), "-f", "xml")
	if !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want %s", err, apperr.ErrCodeInvalidFormat)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	input := writeFile(t, "graph.net", samplePajek)
	asJSON := filepath.Join(dir, "graph.json")
	back := filepath.Join(dir, "back.net")
	direct := filepath.Join(dir, "direct.net")

	for _, args := range [][]string{
		{"convert", input, asJSON},
		{"convert", asJSON, back},
		{"convert", input, direct},
	} {
		if _, err := execute(c, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	want, _ := os.ReadFile(direct)
	got, _ := os.ReadFile(back)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("net -> json -> net changed the network (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(want), "1 2 2") {
		t.Errorf("arc weight lost:\n%s", want)
	}
}

func TestConvertErrors(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeFile(t, "graph.net", samplePajek)

	if _, err := execute(c, "convert", input, filepath.Join(t.TempDir(), "graph.xml")); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("bad output extension: err = %v", err)
	}
	if _, err := execute(c, "convert", writeFile(t, "bad.net", "*Bogus\n"), filepath.Join(t.TempDir(), "x.json")); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("malformed input: err = %v", err)
	}
	quoted := writeFile(t, "quoted.json", `{"nodes":[{"label":"say \"hi\""}],"edges":[],"arcs":[]}`)
	if _, err := execute(c, "convert", quoted, filepath.Join(t.TempDir(), "x.net")); !apperr.Is(err, apperr.ErrCodeInvalidLabel) {
		t.Errorf("quoted label: err = %v", err)
	}
}
