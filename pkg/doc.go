// Package pkg provides the core libraries for netfog, a node-link diagram
// editor and renderer.
//
// # Overview
//
// netfog draws graphs as circles joined by lines, lets users drag nodes,
// pan and zoom in the browser, and exports the edited topology as Pajek
// or JSON. The pkg directory is organized into these areas:
//
//  1. [graph] and [layout] - the graph model and random placement
//  2. [svgdoc] and [viewport] - the editable SVG document and the
//     controller that applies pointer input to it
//  3. [io] - Pajek and JSON readers and writers
//  4. [render] - editor pages, static drawings and Graphviz previews
//  5. [pipeline] - orchestration (load → layout → render, export)
//  6. [cache], [errors], [observability], [buildinfo] - infrastructure
//
// # Architecture
//
// The typical data flow through netfog:
//
//	Pajek / JSON / static input file
//	         ↓
//	    [pipeline] Load (graph or document)
//	         ↓
//	    [layout] random placement of unpositioned nodes
//	         ↓
//	    [svgdoc] Render → editor document ⇄ [viewport] Controller
//	         ↓
//	    [svgdoc] Extract → [io] data.net / data.json
//
// # Quick Start
//
//	g := graph.New()
//	g.AddNode("A")
//	g.AddNode("B")
//	g.Connect("A", "B", 1, true)
//	layout.Random(g, layout.DefaultCanvas, 42, false)
//
//	doc, _ := svgdoc.Render(g, svgdoc.DefaultStyle())
//	doc.MoveNode(0, 10, 0)
//	netio.WritePajek(os.Stdout, doc.Extract().Network())
//
// [graph]: github.com/matzehuels/netfog/pkg/graph
// [layout]: github.com/matzehuels/netfog/pkg/layout
// [svgdoc]: github.com/matzehuels/netfog/pkg/svgdoc
// [viewport]: github.com/matzehuels/netfog/pkg/viewport
// [io]: github.com/matzehuels/netfog/pkg/io
// [render]: github.com/matzehuels/netfog/pkg/render
// [pipeline]: github.com/matzehuels/netfog/pkg/pipeline
// [cache]: github.com/matzehuels/netfog/pkg/cache
// [errors]: github.com/matzehuels/netfog/pkg/errors
// [observability]: github.com/matzehuels/netfog/pkg/observability
// [buildinfo]: github.com/matzehuels/netfog/pkg/buildinfo
package pkg
