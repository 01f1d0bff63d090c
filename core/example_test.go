package core_test

import (
	"fmt"

	"github.com/katalvlaran/mixdag/core"
)

// ExampleGraph builds a small directed graph of variables and lists the
// parents of one node.
func ExampleGraph() {
	g := core.NewGraph(core.WithDirected(true))
	for _, id := range []string{"A", "B", "C"} {
		_ = g.AddVertex(id)
	}
	_, _ = g.AddEdge("A", "C", 0)
	_, _ = g.AddEdge("B", "C", 0)

	parents, _ := g.InNeighborIDs("C")
	fmt.Println("vertices:", g.Vertices())
	fmt.Println("parents of C:", parents)
	fmt.Println("C→A exists?", g.HasEdge("C", "A"))

	// Output:
	// vertices: [A B C]
	// parents of C: [A B]
	// C→A exists? false
}
