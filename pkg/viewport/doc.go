// Package viewport turns pointer input into node drags, pans and zooms over
// an editor canvas.
//
// A [Controller] owns a view box, the visible rectangle of the canvas
// coordinate space, and a [Mode]. Pointer-down on a node starts a drag,
// pointer-down anywhere else starts a pan, and pointer-up always returns to
// idle. Wheel input zooms around the pointer regardless of mode.
//
// Screen deltas are converted to canvas units with two different ratios:
// drags scale by the view box size over the rendered element size, pans by
// the view box size over the window size. Node movement itself is delegated
// to a [Scene], which moves the node together with its label and every line
// endpoint that references it.
//
// Controllers are created when a canvas is mounted and dropped when it is
// torn down. They are not safe for concurrent use; feed events from a single
// goroutine in arrival order.
package viewport
