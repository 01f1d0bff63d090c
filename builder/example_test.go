package builder_test

import (
	"fmt"

	"github.com/katalvlaran/mixdag/builder"
)

// ExampleSample draws the chain scenario and reports its shape.
func ExampleSample() {
	g, nodes, err := builder.Chain()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ds, err := builder.Sample(g, nodes, 200, builder.WithSeed(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(ds.N(), ds.P(), ds.Names())

	// Output:
	// 200 5 [A B C D E]
}
