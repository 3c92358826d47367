package pipeline

import (
	"fmt"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/layout"
	"github.com/matzehuels/netfog/pkg/svgdoc"
)

// PlacedGraph returns the source graph with every node positioned.
// Unpositioned nodes are placed at random on opts.Canvas; with
// opts.Relayout every node is.
func PlacedGraph(src *Source, opts Options) (*graph.Graph, error) {
	g, err := src.Graph()
	if err != nil {
		return nil, err
	}
	moved := layout.Random(g, opts.Canvas, opts.Seed, opts.Relayout)
	opts.Logger.Debug("placed nodes", "moved", moved, "nodes", g.NodeCount(), "seed", opts.Seed)
	return g, nil
}

// EditorDocument builds the editor document for src. Document sources are
// cloned as they are; other sources are laid out and rendered with
// opts.Style.
func EditorDocument(src *Source, opts Options) (*svgdoc.Document, error) {
	if src.Kind == KindDocument && !opts.Relayout {
		return src.doc.Clone(), nil
	}
	g, err := PlacedGraph(src, opts)
	if err != nil {
		return nil, err
	}
	doc, err := svgdoc.Render(g, opts.Style)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return doc, nil
}
