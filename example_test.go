package mixdag_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mixdag"
	"github.com/katalvlaran/mixdag/builder"
)

func ExampleLearn() {
	g, nodes, _ := builder.Chain()
	ds, _ := builder.Sample(g, nodes, 200, builder.WithSeed(1))

	res, err := mixdag.Learn(context.Background(), ds,
		mixdag.WithNPerm(200), mixdag.WithSeed(7), mixdag.WithWorkers(2))
	if err != nil {
		fmt.Println(err)
		return
	}
	inStage1, _ := res.Stage2.SubsetOf(res.Stage1)
	inStage2, _ := res.Skeleton.SubsetOf(res.Stage2)
	fmt.Println(res.Names, len(res.Order))
	fmt.Println(inStage1, inStage2)
	// Output:
	// [A B C D E] 5
	// true true
}

func ExampleLearnSpec() {
	res, _ := mixdag.LearnSpec(context.Background(), []string{"height"},
		[][]float64{{1.62, 1.75, 1.80, 1.68}}, "g", []int{1}, []int{0}, nil)
	fmt.Println(len(res.Arcs), res.Skeleton.P(), res.Order)
	// Output: 0 1 [height]
}
