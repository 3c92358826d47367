// Package pipeline provides the load → layout → render pipeline for netfog.
//
// The CLI and the server both go through this package, so a document
// rendered by "netfog render" is byte-identical to the one served by
// "netfog serve" for the same input and options.
//
// # Stages
//
//  1. Load: read a Pajek, JSON graph, static input or editor document
//     file into a [Source]
//  2. Layout: place unpositioned nodes at random on the reference canvas
//  3. Render: produce an editor document, a static drawing or a
//     graphviz preview in the requested format
//
// Export is the reverse direction: an editor document is read back into
// a network and written as Pajek or JSON.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	src, err := pipeline.Load("network.net")
//	if err != nil {
//	    return err
//	}
//	opts := pipeline.Options{VizType: pipeline.VizEditor, Format: pipeline.FormatHTML}
//	page, _, err := runner.Render(ctx, src, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netfog/pkg/layout"
	"github.com/matzehuels/netfog/pkg/render/static"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// DefaultSeed is the default random seed for reproducibility.
const DefaultSeed = uint64(42)

// Visualization types.
const (
	VizEditor   = "editor"
	VizStatic   = "static"
	VizNodelink = "nodelink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// ValidFormats lists the formats each visualization type supports. The
// first entry is the default.
var ValidFormats = map[string][]string{
	VizEditor:   {FormatSVG, FormatHTML},
	VizStatic:   {FormatSVG, FormatPNG, FormatHTML},
	VizNodelink: {FormatSVG, FormatPNG, FormatDOT},
}

// Options configures a render. It is JSON-serializable so the whole value
// can take part in cache keys.
type Options struct {
	VizType string `json:"viz_type"`
	Format  string `json:"format"`
	Seed    uint64 `json:"seed"`

	// Relayout places every node at random, not just unpositioned ones.
	Relayout bool `json:"relayout,omitempty"`

	// Editor options.
	Style      svgdoc.Style  `json:"style"`
	Canvas     layout.Canvas `json:"canvas"`
	Title      string        `json:"title,omitempty"`
	SocketPath string        `json:"socket,omitempty"`

	// Static options.
	Window    static.Window `json:"window"`
	NodeColor string        `json:"node_color,omitempty"`
	LineColor string        `json:"line_color,omitempty"`

	// Nodelink options.
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if _, ok := ValidFormats[vizType]; !ok {
		return fmt.Errorf("invalid viz type: %q (must be one of: editor, static, nodelink)", vizType)
	}
	return nil
}

// ValidateFormat checks that format is supported by vizType.
func ValidateFormat(vizType, format string) error {
	if err := ValidateVizType(vizType); err != nil {
		return err
	}
	if !slices.Contains(ValidFormats[vizType], format) {
		return fmt.Errorf("invalid %s format: %q (must be one of: %s)", vizType, format, strings.Join(ValidFormats[vizType], ", "))
	}
	return nil
}

// ValidateAndSetDefaults fills unset fields and checks the combination.
func (o *Options) ValidateAndSetDefaults() error {
	if o.VizType == "" {
		o.VizType = VizEditor
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = ValidFormats[o.VizType][0]
	}
	if err := ValidateFormat(o.VizType, o.Format); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Style == (svgdoc.Style{}) {
		o.Style = svgdoc.DefaultStyle()
	}
	if o.Canvas == (layout.Canvas{}) {
		o.Canvas = layout.DefaultCanvas
	}
	if o.Window == (static.Window{}) {
		o.Window = static.DefaultWindow
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

func (o *Options) staticOptions() []static.Option {
	var opts []static.Option
	if o.NodeColor != "" {
		opts = append(opts, static.WithNodeColor(o.NodeColor))
	}
	if o.LineColor != "" {
		opts = append(opts, static.WithLineColor(o.LineColor))
	}
	return opts
}
