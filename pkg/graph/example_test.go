package graph_test

import (
	"fmt"

	"github.com/matzehuels/netfog/pkg/graph"
)

func ExampleGraph() {
	g := graph.New()
	_, _ = g.AddNode("app")
	_, _ = g.AddNode("lib")
	_, _ = g.AddNode("core")
	_ = g.Connect("app", "lib", 1, true)
	_ = g.Connect("lib", "core", 2, false)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", len(g.Edges()))
	fmt.Println("Arcs:", len(g.Arcs()))
	// Output:
	// Nodes: 3
	// Edges: 1
	// Arcs: 1
}

func ExampleFromAdjacencyMatrix() {
	g, _ := graph.FromAdjacencyMatrix([][]float64{
		{0, 1},
		{1, 0},
	}, false, []string{"left", "right"})

	for _, c := range g.Connections() {
		from, _ := g.Node(c.Source)
		to, _ := g.Node(c.Target)
		fmt.Printf("%s - %s\n", from.Label, to.Label)
	}
	// Output:
	// left - right
	// right - left
}
