// Package nodelink renders graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This package produces a preview of a graph using Graphviz, with circular
// nodes joined by lines and arrows. Nodes that already have a canvas
// position, for example from the editor or a Pajek file, are pinned in
// place, so the preview matches the editor layout; unpositioned nodes are
// placed by neato.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include the node ID and edges show weights
//   - Scale: canvas units per Graphviz point (default 0.5)
//
// Connection weights set the pen width between 1 and 5 points.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout
// and rendering; no external Graphviz installation is needed.
package nodelink
