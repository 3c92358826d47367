// Package static draws a node-and-line diagram from a plain list of node
// labels and connections.
//
// There is no layout: [Place] drops every node at a uniformly random
// position inside the window, keeping a margin on the right and bottom
// edges, and records the center of each node's marker by label. Each
// connection then becomes a straight line between two recorded centers.
// Lines carry no arrowheads.
//
// A placed [Scene] is drawn with [RenderSVG] or [RenderPNG]:
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	scene, err := static.Place(in, static.DefaultWindow, rng)
//	svg, err := static.RenderSVG(scene)
//
// Labels are expected to be unique. When two nodes share a label the later
// one wins the center lookup, so connections attach to it.
package static
