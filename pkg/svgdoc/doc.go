// Package svgdoc builds, parses and edits the SVG documents shown by the
// interactive editor.
//
// Graph identity lives in class names: circles are "node<N>", their text
// labels "label<N>" and connecting lines "<A>line<B>", where N, A and B are
// node IDs. A line with a non-empty marker-end attribute is an arc, any
// other line an edge.
//
// [Render] lays a positioned graph out as such a document. [Parse] loads
// one back, also from an HTML page that embeds a single svg element. A
// loaded [Document] indexes its circles, labels and line endpoints by node
// ID, so [Document.MoveNode] touches exactly the elements of one node
// without scanning. [Document.Extract] walks the document the other way and
// recovers the graph from class names, silently skipping elements whose
// class does not follow the conventions.
//
// Line endpoints are state in their own right: moving a node updates them
// in place and extraction reads them back, they are never recomputed from
// circle positions.
package svgdoc
