package viewport

import (
	"strconv"
	"strings"

	"github.com/matzehuels/netfog/pkg/graph"
)

// ZoomFactor scales the view box on each wheel-up step. Wheel-down applies
// its reciprocal.
const ZoomFactor = 0.9

// DefaultViewBox covers the whole reference canvas.
var DefaultViewBox = ViewBox{X: 0, Y: 0, Width: 1500, Height: 700}

// ViewBox is the visible region of the canvas coordinate space.
type ViewBox struct {
	X, Y          float64
	Width, Height float64
}

// String formats v as an SVG viewBox attribute value.
func (v ViewBox) String() string {
	parts := []string{fmtFloat(v.X), fmtFloat(v.Y), fmtFloat(v.Width), fmtFloat(v.Height)}
	return strings.Join(parts, " ")
}

// ParseViewBox parses an SVG viewBox attribute. Commas and whitespace both
// separate values.
func ParseViewBox(s string) (ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return ViewBox{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, false
		}
		vals[i] = v
	}
	return ViewBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}

// ToCanvas maps a screen point over surface to canvas coordinates.
func (v ViewBox) ToCanvas(sx, sy float64, surface Rect) (float64, float64) {
	if surface.Width == 0 || surface.Height == 0 {
		return v.X, v.Y
	}
	return v.X + (sx-surface.Left)/surface.Width*v.Width,
		v.Y + (sy-surface.Top)/surface.Height*v.Height
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Rect is the on-screen bounding box of the rendered canvas element.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Size is a width and height in screen pixels.
type Size struct {
	Width, Height float64
}

// Mode is the pointer interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModePanning
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModePanning:
		return "panning"
	default:
		return "idle"
	}
}

// Scene moves nodes. MoveNode shifts node id, its label and the endpoints
// of every line referencing it by (dx, dy) canvas units and reports whether
// the node exists.
type Scene interface {
	MoveNode(id graph.NodeID, dx, dy float64) bool
}

// Pointer is a pointer-down event. OnNode is set when the event target was
// a node shape, in which case Node identifies it.
type Pointer struct {
	X, Y   float64
	Node   graph.NodeID
	OnNode bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithViewBox sets the initial view box.
func WithViewBox(v ViewBox) Option { return func(c *Controller) { c.view = v } }

// WithSurface sets the rendered element bounds.
func WithSurface(r Rect) Option { return func(c *Controller) { c.surface = r } }

// WithWindow sets the window size used to scale pans.
func WithWindow(s Size) Option { return func(c *Controller) { c.window = s } }

// Controller applies pointer input to a view box and a Scene.
type Controller struct {
	scene   Scene
	view    ViewBox
	surface Rect
	window  Size

	mode         Mode
	target       graph.NodeID
	prevX, prevY float64
}

// New creates an idle controller over scene. Without options the view box
// is [DefaultViewBox] and both the surface and the window match its size.
func New(scene Scene, opts ...Option) *Controller {
	c := &Controller{
		scene:   scene,
		view:    DefaultViewBox,
		surface: Rect{Width: DefaultViewBox.Width, Height: DefaultViewBox.Height},
		window:  Size{Width: DefaultViewBox.Width, Height: DefaultViewBox.Height},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ViewBox returns the current view box.
func (c *Controller) ViewBox() ViewBox { return c.view }

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Target returns the node being dragged, if any.
func (c *Controller) Target() (graph.NodeID, bool) {
	return c.target, c.mode == ModeDragging
}

// Surface returns the rendered element bounds.
func (c *Controller) Surface() Rect { return c.surface }

// Resize records new element bounds and window size.
func (c *Controller) Resize(surface Rect, window Size) {
	c.surface = surface
	c.window = window
}

// PointerDown starts a drag when p is on a node and a pan otherwise.
func (c *Controller) PointerDown(p Pointer) {
	c.prevX, c.prevY = p.X, p.Y
	if p.OnNode {
		c.mode = ModeDragging
		c.target = p.Node
		return
	}
	c.mode = ModePanning
}

// PointerMove drags or pans by the distance travelled since the previous
// event. It does nothing while idle.
func (c *Controller) PointerMove(x, y float64) {
	dx, dy := x-c.prevX, y-c.prevY
	switch c.mode {
	case ModeDragging:
		c.drag(dx, dy)
	case ModePanning:
		c.pan(dx, dy)
	default:
		return
	}
	c.prevX, c.prevY = x, y
}

// PointerUp ends any drag or pan.
func (c *Controller) PointerUp() {
	c.mode = ModeIdle
}

// Wheel zooms around (x, y). A negative deltaY zooms in. The canvas point
// under the pointer stays under the pointer.
func (c *Controller) Wheel(x, y, deltaY float64) {
	if c.surface.Width == 0 || c.surface.Height == 0 {
		return
	}
	scale := 1 / ZoomFactor
	if deltaY < 0 {
		scale = ZoomFactor
	}

	rx := (x - c.surface.Left) / c.surface.Width
	ry := (y - c.surface.Top) / c.surface.Height

	w := c.view.Width * scale
	h := c.view.Height * scale
	c.view.X -= (w - c.view.Width) * rx
	c.view.Y -= (h - c.view.Height) * ry
	c.view.Width = w
	c.view.Height = h
}

func (c *Controller) drag(dx, dy float64) {
	if c.surface.Width == 0 || c.surface.Height == 0 {
		return
	}
	dx *= c.view.Width / c.surface.Width
	dy *= c.view.Height / c.surface.Height
	c.scene.MoveNode(c.target, dx, dy)
}

// pan moves the origin against the pointer: dragging the canvas right
// reveals what lies to its left.
func (c *Controller) pan(dx, dy float64) {
	if c.window.Width == 0 || c.window.Height == 0 {
		return
	}
	c.view.X -= dx * (c.view.Width / c.window.Width)
	c.view.Y -= dy * (c.view.Height / c.window.Height)
}
