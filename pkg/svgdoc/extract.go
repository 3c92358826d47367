package svgdoc

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/netfog/pkg/graph"
	netio "github.com/matzehuels/netfog/pkg/io"
)

// NodeRecord is a circle recovered from a document. Index is the digit
// text of its class, kept verbatim for export; ID is its numeric value, or
// -1 when the index does not fit.
type NodeRecord struct {
	ID     graph.NodeID
	Index  string
	X, Y   float64
	Radius float64
	Class  string
	Label  string
}

// LineRecord is a line recovered from a document. SourceIndex and
// TargetIndex are the digit text of its class; Seq is the position of the
// element among all line elements of the document.
type LineRecord struct {
	Source      graph.NodeID
	Target      graph.NodeID
	SourceIndex string
	TargetIndex string
	X1, Y1      float64
	X2, Y2      float64
	Class       string
	Seq         int
}

// Extraction is the graph recovered from a document, in document order.
// Labels holds the labels whose index fits a node ID.
type Extraction struct {
	Nodes  []NodeRecord
	Edges  []LineRecord
	Arcs   []LineRecord
	Labels map[graph.NodeID]string
}

// Extract parses data and recovers its graph.
func Extract(data []byte) (Extraction, error) {
	d, err := Parse(data)
	if err != nil {
		return Extraction{}, err
	}
	return d.Extract(), nil
}

// Extract scans the document for labels, circles and lines and recovers
// the graph they encode. Elements whose class does not match the naming
// conventions are skipped. A circle without a matching label gets an empty
// label.
func (d *Document) Extract() Extraction {
	ex := Extraction{Labels: make(map[graph.NodeID]string)}

	labels := make(map[string]string)
	for _, e := range d.root.FindElements("//text") {
		idx, ok := classIndex(labelClass, e)
		if !ok {
			continue
		}
		text := strings.TrimSpace(e.Text())
		labels[idx] = text
		if id := indexID(idx); id >= 0 {
			ex.Labels[id] = text
		}
	}

	for _, e := range d.root.FindElements("//circle") {
		idx, ok := classIndex(nodeClass, e)
		if !ok {
			continue
		}
		ex.Nodes = append(ex.Nodes, NodeRecord{
			ID:     indexID(idx),
			Index:  idx,
			X:      attrFloat(e, "cx"),
			Y:      attrFloat(e, "cy"),
			Radius: attrFloat(e, "r"),
			Class:  e.SelectAttrValue("class", ""),
			Label:  labels[idx],
		})
	}

	for i, e := range d.root.FindElements("//line") {
		rec, ok := lineRecord(e, i)
		if !ok {
			continue
		}
		if isArc(e) {
			ex.Arcs = append(ex.Arcs, rec)
		} else {
			ex.Edges = append(ex.Edges, rec)
		}
	}
	return ex
}

// Network converts the extraction into a compact network. Every link has
// weight 1.
func (ex Extraction) Network() netio.Network {
	n := netio.Network{Vertices: make([]netio.Vertex, len(ex.Nodes))}
	for i, r := range ex.Nodes {
		n.Vertices[i] = netio.Vertex{ID: r.ID, Index: r.Index, Label: r.Label, X: r.X, Y: r.Y, Positioned: true}
	}
	link := func(r LineRecord) netio.Link {
		return netio.Link{Source: r.Source, Target: r.Target, SourceIndex: r.SourceIndex, TargetIndex: r.TargetIndex, Weight: 1}
	}
	for _, r := range ex.Edges {
		n.Edges = append(n.Edges, link(r))
	}
	for _, r := range ex.Arcs {
		n.Arcs = append(n.Arcs, link(r))
	}
	return n
}

func lineRecord(e *etree.Element, seq int) (LineRecord, bool) {
	src, dst, ok := lineIndexes(e)
	if !ok {
		return LineRecord{}, false
	}
	return LineRecord{
		Source:      indexID(src),
		Target:      indexID(dst),
		SourceIndex: src,
		TargetIndex: dst,
		X1:          attrFloat(e, "x1"),
		Y1:          attrFloat(e, "y1"),
		X2:          attrFloat(e, "x2"),
		Y2:          attrFloat(e, "y2"),
		Class:       e.SelectAttrValue("class", ""),
		Seq:         seq,
	}, true
}

func isArc(e *etree.Element) bool {
	return e.SelectAttrValue("marker-end", "") != ""
}
