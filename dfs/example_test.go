package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/mixdag/core"
	"github.com/katalvlaran/mixdag/dfs"
)

// ExampleTopologicalSort orders a small chain with a side branch.
func ExampleTopologicalSort() {
	g := core.NewGraph(core.WithDirected(true))
	_, _ = g.AddEdge("A", "B", 0)
	_, _ = g.AddEdge("B", "C", 0)
	_, _ = g.AddEdge("A", "D", 0)

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(order)

	// Output:
	// [A D B C]
}
