package static

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"
)

// Option configures the colors used by [RenderSVG] and [RenderPNG].
type Option func(*palette)

type palette struct {
	node  string
	label string
	line  string
}

func defaultPalette() palette {
	return palette{node: "#3b82f6", label: "#111111", line: "#000000"}
}

// WithNodeColor sets the marker fill.
func WithNodeColor(c string) Option { return func(p *palette) { p.node = c } }

// WithLineColor sets the connection stroke.
func WithLineColor(c string) Option { return func(p *palette) { p.line = c } }

// WithLabelColor sets the label text color.
func WithLabelColor(c string) Option { return func(p *palette) { p.label = c } }

func newPalette(opts []Option) palette {
	p := defaultPalette()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// RenderSVG draws s as a standalone SVG document. Lines are drawn first so
// markers cover their ends.
func RenderSVG(s Scene, opts ...Option) []byte {
	p := newPalette(opts)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Window.Width, s.Window.Height)

	canvas.Gid("lines")
	for _, l := range s.Lines {
		canvas.Line(l.X1, l.Y1, l.X2, l.Y2, fmt.Sprintf("stroke:%s;stroke-width:1", p.line))
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, m := range s.Markers {
		canvas.Circle(m.CX, m.CY, MarkerSize/2, fmt.Sprintf("fill:%s", p.node), `class="node"`)
		canvas.Text(m.LabelX, m.LabelY, m.Label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:system-ui,sans-serif;dominant-baseline:hanging", p.label),
			`class="label"`)
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}
