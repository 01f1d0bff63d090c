package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/mixdag/matrix"
)

// ExampleWeightedLeastSquares residualises a response on an intercept-only
// design, which is the same as centering it.
func ExampleWeightedLeastSquares() {
	X, _ := matrix.FromColumns([][]float64{{1, 1, 1, 1}})
	Y, _ := matrix.FromColumns([][]float64{{1, 2, 3, 6}})

	B, R, err := matrix.WeightedLeastSquares(X, Y, nil, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	mean, _ := B.At(0, 0)
	fmt.Printf("mean=%.1f\n", mean)
	fmt.Print(R.String())

	// Output:
	// mean=3.0
	// [-2]
	// [-1]
	// [0]
	// [3]
}
