// Package io reads and writes networks in the Pajek and JSON formats.
//
// # Overview
//
// A [Network] is the export view of a graph: vertices with optional canvas
// positions, plus undirected edges and directed arcs. Networks are produced
// either from a [graph.Graph] with [FromGraph] or from an editor document
// (see the svgdoc package), and are written with [WritePajek] or
// [WriteJSON]. The readers turn files back into graphs.
//
// # Pajek Format
//
// A header line counts the vertices, one line per vertex follows, then an
// optional edge section and an optional arc section:
//
//	*Vertices 2
//	0 "A" 0.5000 0.5000
//	1 "B" 0.1000 0.2000
//	*Edges
//	0 1 1
//
// Coordinates are normalized by the 1500x700 reference canvas and printed
// with four decimals. Vertices without a position carry no coordinates.
// Links are "source target weight". Section headers are matched without
// regard to case when reading.
//
// # JSON Format
//
// The editor export is compact and drops positions and weights:
//
//	{"nodes":[{"label":"A"},{"label":"B"}],"edges":[{"source":"0","target":"1"}],"arcs":[]}
//
// A detailed network, as written for a graph, adds "x" and "y" to
// positioned nodes and "weight" to every link, and names link endpoints by
// label. [ReadJSON] resolves endpoints by label first and falls back to the
// node's position in the list, so both variants read back.
package io
