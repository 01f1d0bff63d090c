// SPDX-License-Identifier: MIT

package refine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/mixdag/citest"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/rng"
	"github.com/katalvlaran/mixdag/skeleton"
)

// Stage is the pipeline stage number reported in warnings.
const Stage = 2

// TestRecord is one conditional-independence test of an edge.
type TestRecord struct {
	Cond   []int
	Stat   float64
	PValue float64
}

// EdgeLog is the search history of one input edge.
type EdgeLog struct {
	I, J int
	// Names are the variable names of I and J.
	Names [2]string
	Tests []TestRecord
	// Removed is set when some test did not reject independence.
	Removed bool
	// SepSet is the separating set of a removed edge.
	SepSet []int
	// Finished is false when the stage deadline cut the search short.
	Finished bool
}

// MaxPValue returns the largest p-value seen for the edge (0 if untested).
func (l EdgeLog) MaxPValue() float64 {
	var m float64
	for _, t := range l.Tests {
		if t.PValue > m {
			m = t.PValue
		}
	}

	return m
}

// Result is the Stage 2 output.
type Result struct {
	Skeleton *skeleton.Skeleton
	// Log holds one entry per input edge in (I<J) order.
	Log      []EdgeLog
	Warnings []diag.Warning
}

// Refine removes every edge of sk whose endpoints test conditionally
// independent given some subset of their conditioning pool. Pools come from
// sk itself, so the result does not depend on the order edges are visited.
// sk is not modified.
// Complexity: O(E · Σ_k C(|pool|,k) · nperm · n), parallel over edges.
func Refine(ctx context.Context, ds *dataset.Dataset, sk *skeleton.Skeleton, cfg Config) (*Result, error) {
	log := ctxlog.FromContext(ctx)
	start := time.Now()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sk.P() != ds.P() {
		return nil, fmt.Errorf("%w: skeleton has %d vertices, dataset %d variables", skeleton.ErrSizeMismatch, sk.P(), ds.P())
	}
	if err := ds.CheckSampleSize(); err != nil {
		return nil, err
	}

	var warn diag.Collector
	if cfg.coarse() {
		warn.Addf(diag.KindNumerical, Stage, nil,
			"smallest attainable p-value 1/(nperm+1) = %.4g exceeds alpha = %.4g; no edge can be retained", 1/float64(cfg.NPerm+1), cfg.Alpha)
	}

	var deadline time.Time
	if cfg.Timeout > 0 {
		deadline = start.Add(cfg.Timeout)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	tester := citest.New(ds)
	edges := sk.Edges()
	logs := make([]EdgeLog, len(edges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, e := range edges {
		k, e := k, e
		g.Go(func() error {
			el, err := searchEdge(gctx, tester, ds, sk, e.I, e.J, cfg, deadline)
			if err != nil {
				return err
			}
			logs[k] = el
			log.Debug("edge searched", "i", el.Names[0], "j", el.Names[1], "tests", len(el.Tests),
				"removed", el.Removed, "finished", el.Finished)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := sk.Clone()
	var removed int
	var unfinished []string
	for _, el := range logs {
		if el.Removed {
			if err := out.Remove(el.I, el.J); err != nil {
				return nil, err
			}
			removed++
			continue
		}
		if !el.Finished {
			unfinished = append(unfinished, el.Names[0]+"-"+el.Names[1])
		}
	}
	if len(unfinished) > 0 {
		warn.Addf(diag.KindTimeout, Stage, unfinished,
			"deadline %s reached; %d edge(s) retained without a complete search", cfg.Timeout, len(unfinished))
	}

	log.Info("stage 2 complete: skeleton refinement",
		"tested", len(edges), "removed", removed, "edges", out.Count(),
		"nperm", cfg.NPerm, "elapsed", time.Since(start))

	return &Result{Skeleton: out, Log: logs, Warnings: warn.Warnings()}, nil
}

// searchEdge runs the PC-style subset search for (i, j): sizes 0..MaxCondSize
// in lexicographic order, stopping at the first non-rejection.
func searchEdge(ctx context.Context, t *citest.Tester, ds *dataset.Dataset, sk *skeleton.Skeleton, i, j int, cfg Config, deadline time.Time) (EdgeLog, error) {
	el := EdgeLog{I: i, J: j, Names: [2]string{ds.Var(i).Name, ds.Var(j).Name}}
	pool := conditioningPool(sk, i, j, cfg.Pool)
	r := rng.Stream(cfg.Seed, rng.PairStream(i, j, sk.P()))

	maxK := cfg.MaxCondSize
	if maxK > len(pool) {
		maxK = len(pool)
	}
	for k := 0; k <= maxK; k++ {
		gen := combin.NewCombinationGenerator(len(pool), k)
		idx := make([]int, k)
		for gen.Next() {
			if err := ctx.Err(); err != nil {
				return el, err
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return el, nil
			}
			gen.Combination(idx)
			cond := make([]int, k)
			for a, x := range idx {
				cond[a] = pool[x]
			}
			res, err := t.Test(i, j, cond, cfg.NPerm, r)
			if err != nil {
				return el, err
			}
			el.Tests = append(el.Tests, TestRecord{Cond: cond, Stat: res.Stat, PValue: res.PValue})
			if res.Independent(cfg.Alpha) {
				el.Removed = true
				el.SepSet = cond
				el.Finished = true
				return el, nil
			}
		}
	}
	el.Finished = true

	return el, nil
}

// conditioningPool returns the sorted candidate conditioning variables of (i, j).
func conditioningPool(sk *skeleton.Skeleton, i, j int, pool Pool) []int {
	var out []int
	for v := 0; v < sk.P(); v++ {
		if v == i || v == j {
			continue
		}
		a, b := sk.Has(i, v), sk.Has(j, v)
		if (pool == PoolUnion && (a || b)) || (pool == PoolCommon && a && b) {
			out = append(out, v)
		}
	}

	return out
}
