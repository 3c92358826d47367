// Package layout places graph nodes on the reference canvas.
//
// All editor documents share one coordinate space: a 1500x700 reference
// canvas. Pajek files store positions normalized to that canvas, so
// [Normalize] and [Denormalize] convert between the two.
//
// The only placement strategy is uniform random placement inside the
// canvas, minus a small border so circles stay visible. Random takes a
// seed, so the same graph and seed always produce the same picture.
package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/netfog/pkg/graph"
)

// Reference canvas size used by editor documents and Pajek normalization.
const (
	ReferenceWidth  = 1500.0
	ReferenceHeight = 700.0
)

// Canvas is the rectangle random placement draws positions from.
type Canvas struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// DefaultCanvas keeps a 20 unit border on the top and left edges of the
// reference canvas.
var DefaultCanvas = Canvas{MinX: 20, MinY: 20, MaxX: ReferenceWidth, MaxY: ReferenceHeight}

// Random assigns uniformly random positions within c. Nodes that already
// have a position keep it unless override is set.
// It returns the number of nodes it moved.
func Random(g *graph.Graph, c Canvas, seed uint64, override bool) int {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	moved := 0
	for _, n := range g.Nodes() {
		if n.Positioned && !override {
			continue
		}
		x := c.MinX + rng.Float64()*(c.MaxX-c.MinX)
		y := c.MinY + rng.Float64()*(c.MaxY-c.MinY)
		_ = g.SetPosition(n.ID, x, y)
		moved++
	}
	return moved
}

// Normalize maps reference canvas coordinates into the unit square.
func Normalize(x, y float64) (float64, float64) {
	return x / ReferenceWidth, y / ReferenceHeight
}

// Denormalize maps unit square coordinates back onto the reference canvas.
func Denormalize(x, y float64) (float64, float64) {
	return x * ReferenceWidth, y * ReferenceHeight
}
