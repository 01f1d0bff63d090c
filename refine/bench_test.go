// Package refine_test provides benchmarks for Stage 2 on a complete
// candidate skeleton, the worst case for the subset search.
package refine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/mixdag/builder"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/skeleton"
)

// sink to defeat dead-code elimination
var sinkRes *refine.Result

func BenchmarkRefine_Complete(b *testing.B) {
	g, nodes, err := builder.Chain()
	if err != nil {
		b.Fatal(err)
	}
	ds, err := builder.Sample(g, nodes, 200, builder.WithSeed(1))
	if err != nil {
		b.Fatal(err)
	}
	in := skeleton.Complete(ds.P())

	b.ReportAllocs()
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			cfg := refine.Config{Alpha: 0.05, NPerm: 200, MaxCondSize: refine.DefaultMaxCondSize, Seed: 1, Workers: workers}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res, err := refine.Refine(context.Background(), ds, in, cfg)
				if err != nil {
					b.Fatal(err)
				}
				sinkRes = res
			}
		})
	}
}
