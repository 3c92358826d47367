package server

import (
	"github.com/matzehuels/netfog/pkg/graph"
	"github.com/matzehuels/netfog/pkg/svgdoc"
	"github.com/matzehuels/netfog/pkg/viewport"
)

// Client event types.
const (
	eventDown   = "down"
	eventMove   = "move"
	eventUp     = "up"
	eventWheel  = "wheel"
	eventResize = "resize"
)

// Server message types.
const (
	msgHello  = "hello"
	msgPatch  = "patch"
	msgReload = "reload"
	msgError  = "error"
)

// clientMessage is one pointer or resize event from the browser. X and Y
// are client pixel coordinates.
type clientMessage struct {
	Type    string         `json:"type"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	DeltaY  float64        `json:"deltaY"`
	Node    int            `json:"node"`
	OnNode  bool           `json:"onNode"`
	Surface *viewport.Rect `json:"surface,omitempty"`
	Window  *viewport.Size `json:"window,omitempty"`
}

type nodePatch struct {
	ID graph.NodeID `json:"id"`
	CX float64      `json:"cx"`
	CY float64      `json:"cy"`
}

type labelPatch struct {
	ID graph.NodeID `json:"id"`
	X  float64      `json:"x"`
	Y  float64      `json:"y"`
}

// linePatch addresses a line by its position among the document's line
// elements; classes may repeat.
type linePatch struct {
	Seq   int     `json:"seq"`
	Class string  `json:"class"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

// serverMessage carries attribute updates for the browser to apply.
type serverMessage struct {
	Type    string       `json:"type"`
	Session string       `json:"session,omitempty"`
	ViewBox string       `json:"viewBox,omitempty"`
	Nodes   []nodePatch  `json:"nodes,omitempty"`
	Labels  []labelPatch `json:"labels,omitempty"`
	Lines   []linePatch  `json:"lines,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// addPlacement appends the geometry of one node and its lines.
func (m *serverMessage) addPlacement(p svgdoc.Placement) {
	m.Nodes = append(m.Nodes, nodePatch{ID: p.ID, CX: p.CX, CY: p.CY})
	if p.HasLabel {
		m.Labels = append(m.Labels, labelPatch{ID: p.ID, X: p.LabelX, Y: p.LabelY})
	}
	for _, l := range p.Lines {
		m.Lines = append(m.Lines, linePatch{Seq: l.Seq, Class: l.Class, X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2})
	}
}

func (m *serverMessage) empty() bool {
	return m.ViewBox == "" && len(m.Nodes) == 0 && len(m.Labels) == 0 && len(m.Lines) == 0
}
