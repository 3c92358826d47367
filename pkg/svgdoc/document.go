package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/viewport"
)

var (
	// ErrNoSVG is returned by [Parse] when the input contains no svg element.
	ErrNoSVG = errors.New("no svg element found")

	// ErrUnpositioned is returned by [Render] for graphs with nodes that
	// have no canvas position.
	ErrUnpositioned = errors.New("node has no position")
)

// Class patterns of editor documents. The first match anywhere in the
// class attribute counts; the editor script matches the same patterns.
const (
	NodeClassPattern  = `node(\d+)`
	LabelClassPattern = `label(\d+)`
	LineClassPattern  = `(\d+)line(\d+)`
)

var (
	nodeClass  = regexp.MustCompile(NodeClassPattern)
	labelClass = regexp.MustCompile(LabelClassPattern)
	lineClass  = regexp.MustCompile(LineClassPattern)
)

var _ viewport.Scene = (*Document)(nil)

// Document is an editor SVG document with its elements indexed by node ID.
// It is not safe for concurrent use.
type Document struct {
	doc  *etree.Document
	root *etree.Element

	circles map[graph.NodeID]*etree.Element
	labels  map[graph.NodeID]*etree.Element
	sources map[graph.NodeID][]*etree.Element
	targets map[graph.NodeID][]*etree.Element
	seq     map[*etree.Element]int
}

// Parse loads an SVG document. HTML input is accepted when it embeds an
// svg element; everything outside the first <svg> ... last </svg> span is
// ignored.
func Parse(data []byte) (*Document, error) {
	start := bytes.Index(data, []byte("<svg"))
	end := bytes.LastIndex(data, []byte("</svg>"))
	if start < 0 || end < start {
		return nil, ErrNoSVG
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data[start : end+len("</svg>")]); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, ErrNoSVG
	}
	return newDocument(doc), nil
}

// ReadFile parses the SVG or HTML file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func newDocument(doc *etree.Document) *Document {
	d := &Document{
		doc:     doc,
		root:    doc.Root(),
		circles: make(map[graph.NodeID]*etree.Element),
		labels:  make(map[graph.NodeID]*etree.Element),
		sources: make(map[graph.NodeID][]*etree.Element),
		targets: make(map[graph.NodeID][]*etree.Element),
		seq:     make(map[*etree.Element]int),
	}
	for _, e := range d.root.FindElements("//circle") {
		if id, ok := matchID(nodeClass, e); ok {
			if _, seen := d.circles[id]; !seen {
				d.circles[id] = e
			}
		}
	}
	for _, e := range d.root.FindElements("//text") {
		if id, ok := matchID(labelClass, e); ok {
			if _, seen := d.labels[id]; !seen {
				d.labels[id] = e
			}
		}
	}
	for i, e := range d.root.FindElements("//line") {
		d.seq[e] = i
		if src, dst, ok := matchLine(e); ok {
			d.sources[src] = append(d.sources[src], e)
			d.targets[dst] = append(d.targets[dst], e)
		}
	}
	return d
}

// Clone returns an independent deep copy of d.
func (d *Document) Clone() *Document {
	return newDocument(d.doc.Copy())
}

// MoveNode shifts the circle of node id, its label and every line endpoint
// that references it by (dx, dy). It reports whether the node's circle
// exists; nothing is moved otherwise.
func (d *Document) MoveNode(id graph.NodeID, dx, dy float64) bool {
	c, ok := d.circles[id]
	if !ok {
		return false
	}
	shift(c, "cx", dx)
	shift(c, "cy", dy)
	if l, ok := d.labels[id]; ok {
		shift(l, "x", dx)
		shift(l, "y", dy)
	}
	for _, e := range d.sources[id] {
		shift(e, "x1", dx)
		shift(e, "y1", dy)
	}
	for _, e := range d.targets[id] {
		shift(e, "x2", dx)
		shift(e, "y2", dy)
	}
	return true
}

// Placement is the current geometry of one node and the lines touching it.
type Placement struct {
	ID       graph.NodeID
	CX, CY   float64
	LabelX   float64
	LabelY   float64
	HasLabel bool
	Lines    []LineRecord
}

// Placement reports where node id and its lines currently are.
func (d *Document) Placement(id graph.NodeID) (Placement, bool) {
	c, ok := d.circles[id]
	if !ok {
		return Placement{}, false
	}
	p := Placement{ID: id, CX: attrFloat(c, "cx"), CY: attrFloat(c, "cy")}
	if l, ok := d.labels[id]; ok {
		p.LabelX, p.LabelY, p.HasLabel = attrFloat(l, "x"), attrFloat(l, "y"), true
	}
	seen := make(map[*etree.Element]bool)
	for _, lines := range [][]*etree.Element{d.sources[id], d.targets[id]} {
		for _, e := range lines {
			if seen[e] {
				continue
			}
			seen[e] = true
			if rec, ok := lineRecord(e, d.seq[e]); ok {
				p.Lines = append(p.Lines, rec)
			}
		}
	}
	return p, true
}

// NodeIDs returns the IDs of all indexed circles in ascending order.
func (d *Document) NodeIDs() []graph.NodeID {
	ids := make([]graph.NodeID, 0, len(d.circles))
	for id := range d.circles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ViewBox returns the root viewBox attribute.
func (d *Document) ViewBox() (viewport.ViewBox, bool) {
	return viewport.ParseViewBox(d.root.SelectAttrValue("viewBox", ""))
}

// SetViewBox replaces the root viewBox attribute.
func (d *Document) SetViewBox(v viewport.ViewBox) {
	d.root.CreateAttr("viewBox", v.String())
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	return d.doc.WriteToBytes()
}

// SVG returns the serialized svg element without any XML declaration,
// ready to be embedded in an HTML page.
func (d *Document) SVG() (string, error) {
	out := etree.NewDocument()
	out.SetRoot(d.root.Copy())
	return out.WriteToString()
}

// classIndex returns the digits re captures from the class of e.
func classIndex(re *regexp.Regexp, e *etree.Element) (string, bool) {
	m := re.FindStringSubmatch(e.SelectAttrValue("class", ""))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// lineIndexes returns the source and target digits of a line class.
func lineIndexes(e *etree.Element) (src, dst string, ok bool) {
	m := lineClass.FindStringSubmatch(e.SelectAttrValue("class", ""))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// indexID converts class digits to a node ID, or -1 when they do not fit.
func indexID(s string) graph.NodeID {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return graph.NodeID(n)
}

// matchID reports the node ID of e. Indexes too large for an ID do not
// match; such elements are extracted but cannot be moved.
func matchID(re *regexp.Regexp, e *etree.Element) (graph.NodeID, bool) {
	s, ok := classIndex(re, e)
	if !ok {
		return 0, false
	}
	id := indexID(s)
	return id, id >= 0
}

func matchLine(e *etree.Element) (src, dst graph.NodeID, ok bool) {
	a, b, ok := lineIndexes(e)
	if !ok {
		return 0, 0, false
	}
	src, dst = indexID(a), indexID(b)
	return src, dst, src >= 0 && dst >= 0
}

// attrFloat reads a numeric attribute; missing or malformed values read
// as 0.
func attrFloat(e *etree.Element, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.SelectAttrValue(key, "")), 64)
	if err != nil {
		return 0
	}
	return v
}

func setFloat(e *etree.Element, key string, v float64) {
	e.CreateAttr(key, formatFloat(v))
}

func shift(e *etree.Element, key string, d float64) {
	setFloat(e, key, attrFloat(e, key)+d)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
