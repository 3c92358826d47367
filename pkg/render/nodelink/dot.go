package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netfog/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends node IDs to labels and prints connection weights.
	Detailed bool

	// Scale converts canvas units to Graphviz points. Zero means 0.5.
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 0.5
	}
	return o.Scale
}

// ToDOT converts g to Graphviz DOT source. Positioned nodes are pinned with
// pos="x,y!" so neato keeps them where the editor put them; canvas Y grows
// downwards, so it is negated. Undirected connections are drawn without
// arrowheads.
func ToDOT(g *graph.Graph, opts Options) string {
	scale := opts.scale()
	lo, hi := g.WeightRange()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#3b82f6\", fontcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=black];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(*n, opts.Detailed))}
		if n.Positioned {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtNum(n.X*scale), fmtNum(-n.Y*scale)))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		attrs := []string{fmt.Sprintf("penwidth=%s", fmtNum(penWidth(c.Weight, lo, hi)))}
		if !c.Directed {
			attrs = append(attrs, "dir=none")
		}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", fmtNum(c.Weight)))
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", c.Source, c.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return n.Label + "\n#" + n.ID.String()
}

// penWidth maps a weight onto 1..5 points.
func penWidth(w, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}
	return 1 + (w-lo)/(hi-lo)*4
}

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// RenderSVG lays out a DOT graph with neato, which honors pinned
// positions, and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph with neato and rasterizes it.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
