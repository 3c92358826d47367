// Package graph provides the labeled graph model rendered by netfog.
//
// A [Graph] holds nodes identified by a typed [NodeID] and connections
// between them. Undirected connections are edges; directed connections are
// arcs, drawn with an arrowhead in editor documents.
//
// # Identity
//
// Node IDs are the indexes that editor documents encode into element class
// names (node<N>, label<N>, <A>line<B>). The graph keeps an explicit
// ID-to-node and label-to-ID index, so callers never recover identity by
// matching strings.
//
// # Building Graphs
//
//	g := graph.New()
//	g.AddNode("a")
//	g.AddNode("b")
//	g.Connect("a", "b", 1, false)
//
// or from an adjacency matrix with [FromAdjacencyMatrix].
//
// # Concurrency
//
// Graph is not safe for concurrent use.
package graph
