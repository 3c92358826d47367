package svgdoc

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/viewport"
)

const (
	// MarkerID is the id of the arrowhead marker referenced by arcs.
	MarkerID = "marker"

	// LabelOffset is the vertical distance from a node center down to the
	// baseline of its label.
	LabelOffset = 35.0
)

// Render draws g as an editor document. Every node must be positioned.
//
// The document contains the arrowhead definition, then one line per
// connection, then a circle and a label per node, so nodes paint over
// lines. Arcs are lines with a marker-end attribute.
func Render(g *graph.Graph, style Style) (*Document, error) {
	nodes := g.Nodes()
	for _, n := range nodes {
		if !n.Positioned {
			return nil, fmt.Errorf("%w: %q", ErrUnpositioned, n.Label)
		}
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("viewBox", viewport.DefaultViewBox.String())
	root.CreateAttr("width", "100%")
	root.CreateAttr("height", "100%")

	addMarker(root, style)

	lo, hi := g.WeightRange()
	for _, c := range g.Connections() {
		from, _ := g.Node(c.Source)
		to, _ := g.Node(c.Target)
		line := root.CreateElement("line")
		setFloat(line, "x1", from.X)
		setFloat(line, "y1", from.Y)
		setFloat(line, "x2", to.X)
		setFloat(line, "y2", to.Y)
		line.CreateAttr("stroke", style.LineColor)
		setFloat(line, "stroke-width", style.LineWidth(c.Weight, lo, hi))
		if c.Directed {
			line.CreateAttr("marker-end", "url(#"+MarkerID+")")
		}
		line.CreateAttr("class", fmt.Sprintf("%dline%d", c.Source, c.Target))
	}

	for _, n := range nodes {
		circle := root.CreateElement("circle")
		setFloat(circle, "cx", n.X)
		setFloat(circle, "cy", n.Y)
		circle.CreateAttr("stroke", style.NodeBorder)
		circle.CreateAttr("fill", style.NodeColor)
		setFloat(circle, "r", style.NodeRadius)
		circle.CreateAttr("class", "node"+n.ID.String())

		text := root.CreateElement("text")
		text.CreateAttr("text-anchor", "middle")
		setFloat(text, "x", n.X)
		setFloat(text, "y", n.Y+LabelOffset)
		text.CreateAttr("class", "label"+n.ID.String())
		text.SetText(n.Label)
	}

	doc.Indent(2)
	return newDocument(doc), nil
}

func addMarker(root *etree.Element, style Style) {
	marker := root.CreateElement("defs").CreateElement("marker")
	marker.CreateAttr("id", MarkerID)
	setFloat(marker, "markerWidth", style.MarkerWidth)
	setFloat(marker, "markerHeight", style.MarkerHeight)
	marker.CreateAttr("refX", "29")
	marker.CreateAttr("refY", "3")
	marker.CreateAttr("orient", "auto")
	marker.CreateAttr("markerUnits", "strokeWidth")

	path := marker.CreateElement("path")
	path.CreateAttr("d", style.MarkerPath)
	path.CreateAttr("fill", style.MarkerFill)
}
