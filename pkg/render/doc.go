// Package render groups the netfog renderers.
//
// # Overview
//
// Three subpackages turn graphs into pictures:
//
//   - [editor]: HTML pages hosting an editable SVG document
//   - [static]: random-placement node and line drawings (SVG, PNG)
//   - [nodelink]: Graphviz previews with pinned node positions
//
// The editable SVG document itself lives in package svgdoc; the editor
// page only wraps it.
//
// # Static Drawings
//
// Static drawings place every node at random inside a window and join
// connected nodes with straight lines:
//
//	scene, err := static.Place(in, static.DefaultWindow, rng)
//	svg := static.RenderSVG(scene)
//	png, err := static.RenderPNG(scene)
//
// # Node-Link Previews
//
// Node-link previews pass the editor positions to Graphviz neato:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [editor]: github.com/matzehuels/netfog/pkg/render/editor
// [static]: github.com/matzehuels/netfog/pkg/render/static
// [nodelink]: github.com/matzehuels/netfog/pkg/render/nodelink
package render
