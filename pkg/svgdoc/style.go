package svgdoc

// Style controls how [Render] draws nodes, labels and lines.
type Style struct {
	NodeColor  string
	NodeBorder string
	NodeRadius float64

	// MarkerPath is the SVG path of the arrowhead drawn at the end of arcs.
	MarkerPath   string
	MarkerFill   string
	MarkerWidth  float64
	MarkerHeight float64

	LineColor    string
	LineMinWidth float64
	LineMaxWidth float64

	// DynamicLineWidth scales stroke width with connection weight between
	// LineMinWidth and LineMaxWidth. When unset every line is LineMinWidth
	// wide.
	DynamicLineWidth bool
}

// DefaultStyle returns blue nodes of radius 20, black lines between 1 and 5
// units wide, and a black triangular arrowhead.
func DefaultStyle() Style {
	return Style{
		NodeColor:        "blue",
		NodeBorder:       "blue",
		NodeRadius:       20,
		MarkerPath:       "M0,0 L0,6 L9,3 z",
		MarkerFill:       "black",
		MarkerWidth:      30,
		MarkerHeight:     30,
		LineColor:        "black",
		LineMinWidth:     1,
		LineMaxWidth:     5,
		DynamicLineWidth: true,
	}
}

// LineWidth maps weight from the range [lo, hi] onto the stroke width range.
func (s Style) LineWidth(weight, lo, hi float64) float64 {
	if !s.DynamicLineWidth || hi == lo {
		return s.LineMinWidth
	}
	return s.LineMinWidth + (weight-lo)/(hi-lo)*(s.LineMaxWidth-s.LineMinWidth)
}
