package static

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	// MarkerSize is the width and height of a node marker.
	MarkerSize = 20

	// labelLift raises a label above the bottom edge of its marker.
	labelLift = 10
)

// ErrUnknownNode is returned by [Place] for connections naming a label that
// is not in the node list.
var ErrUnknownNode = errors.New("connection references unknown node")

// Connection joins two nodes by label.
type Connection struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Input is the node label list and connection list to draw.
type Input struct {
	Nodes       []string     `json:"nodes" yaml:"nodes"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

// Window is the drawing surface. Markers are kept Margin pixels away from
// the right and bottom edges.
type Window struct {
	Width  int
	Height int
	Margin int
}

// DefaultWindow is a 1280x720 surface with a 50 pixel margin.
var DefaultWindow = Window{Width: 1280, Height: 720, Margin: 50}

// Marker is a placed node.
type Marker struct {
	Label string

	// Left and Top locate the marker's bounding box.
	Left, Top int

	// LabelX and LabelY locate the top-left corner of the label text.
	LabelX, LabelY int

	// CX and CY are the bounding box midpoint.
	CX, CY int
}

// Segment is a straight line between two node centers.
type Segment struct {
	From, To string
	X1, Y1   int
	X2, Y2   int
}

// Scene is a placed diagram.
type Scene struct {
	Window  Window
	Markers []Marker
	Lines   []Segment
}

// Place positions every node of in at random inside win and resolves the
// connections to line segments.
func Place(in Input, win Window, rng *rand.Rand) (Scene, error) {
	s := Scene{Window: win, Markers: make([]Marker, 0, len(in.Nodes))}
	centers := make(map[string][2]int, len(in.Nodes))

	for _, label := range in.Nodes {
		left := randomOffset(rng, win.Width-win.Margin)
		top := randomOffset(rng, win.Height-win.Margin)
		m := Marker{
			Label:  label,
			Left:   left,
			Top:    top,
			LabelX: left,
			LabelY: top + MarkerSize - labelLift,
			CX:     left + MarkerSize/2,
			CY:     top + MarkerSize/2,
		}
		s.Markers = append(s.Markers, m)
		centers[label] = [2]int{m.CX, m.CY}
	}

	for _, c := range in.Connections {
		from, ok := centers[c.From]
		if !ok {
			return Scene{}, fmt.Errorf("%w: %q", ErrUnknownNode, c.From)
		}
		to, ok := centers[c.To]
		if !ok {
			return Scene{}, fmt.Errorf("%w: %q", ErrUnknownNode, c.To)
		}
		s.Lines = append(s.Lines, Segment{
			From: c.From, To: c.To,
			X1: from[0], Y1: from[1],
			X2: to[0], Y2: to[1],
		})
	}
	return s, nil
}

// randomOffset returns floor(r * span) for a uniform r in [0, 1).
func randomOffset(rng *rand.Rand, span int) int {
	if span <= 0 {
		return 0
	}
	return int(rng.Float64() * float64(span))
}
