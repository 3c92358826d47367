package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/netfog/pkg/render/editor"
	"github.com/matzehuels/netfog/pkg/render/nodelink"
	"github.com/matzehuels/netfog/pkg/render/static"
)

// Render produces one artifact for src. Options must already be
// validated with [Options.ValidateAndSetDefaults].
func Render(ctx context.Context, src *Source, opts Options) ([]byte, error) {
	switch opts.VizType {
	case VizEditor:
		return renderEditor(src, opts)
	case VizStatic:
		return renderStatic(src, opts)
	case VizNodelink:
		return renderNodelink(ctx, src, opts)
	default:
		return nil, ValidateVizType(opts.VizType)
	}
}

func renderEditor(src *Source, opts Options) ([]byte, error) {
	doc, err := EditorDocument(src, opts)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatSVG:
		return doc.Bytes()
	case FormatHTML:
		return editor.Page(doc, editor.Options{Title: opts.Title, SocketPath: opts.SocketPath})
	default:
		return nil, fmt.Errorf("unsupported editor format: %s", opts.Format)
	}
}

func renderStatic(src *Source, opts Options) ([]byte, error) {
	in, err := src.StaticInput()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	scene, err := static.Place(in, opts.Window, rng)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	palette := opts.staticOptions()
	switch opts.Format {
	case FormatSVG:
		return static.RenderSVG(scene, palette...), nil
	case FormatPNG:
		return static.RenderPNG(scene, palette...)
	case FormatHTML:
		return editor.StaticPage(static.RenderSVG(scene, palette...), opts.Title)
	default:
		return nil, fmt.Errorf("unsupported static format: %s", opts.Format)
	}
}

func renderNodelink(ctx context.Context, src *Source, opts Options) ([]byte, error) {
	g, err := PlacedGraph(src, opts)
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Scale: opts.Scale})
	switch opts.Format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported nodelink format: %s", opts.Format)
	}
}
