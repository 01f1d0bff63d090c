// SPDX-License-Identifier: MIT

package mixdag

import (
	"context"
	"time"

	"github.com/katalvlaran/mixdag/blanket"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/orient"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/skeleton"
)

// Learn runs the three stages on ds. Options are validated before any
// stage starts; the first DataError aborts the run.
func Learn(ctx context.Context, ds *dataset.Dataset, opts ...Option) (*Result, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := ds.CheckSampleSize(); err != nil {
		return nil, err
	}
	log := ctxlog.FromContext(ctx)
	start := time.Now()
	log.Info("structure learning started", "samples", ds.N(), "variables", ds.P(),
		"nperm", o.NPerm, "alpha", o.Alpha, "seed", o.Seed)

	if ds.P() == 1 {
		return single(ds), nil
	}

	s1, err := blanket.Estimate(ctx, ds, o.blanketConfig())
	if err != nil {
		return nil, err
	}
	s2, err := refine.Refine(ctx, ds, s1.Skeleton, o.refineConfig())
	if err != nil {
		return nil, err
	}
	s3, err := orient.Orient(ctx, ds, s2.Skeleton, o.Orient)
	if err != nil {
		return nil, err
	}

	res := assemble(ds, s3)
	res.Stage1, res.Stage2 = s1.Skeleton, s2.Skeleton
	res.Directed, res.Fits, res.TestLog = s1.Directed, s1.Fits, s2.Log
	res.Warnings = merge(s1.Warnings, s2.Warnings, s3.Warnings)
	log.Info("structure learning complete", "stage1_edges", s1.Skeleton.Count(),
		"stage2_edges", s2.Skeleton.Count(), "arcs", len(res.Arcs),
		"warnings", len(res.Warnings), "elapsed", time.Since(start))

	return res, nil
}

// LearnSpec is Learn over the flat interface: a 'g'/'c' type string,
// per-variable levels and 0/1 SNP flags. weights may be nil.
func LearnSpec(ctx context.Context, names []string, columns [][]float64, types string, levels, snp []int, weights []float64, opts ...Option) (*Result, error) {
	if _, err := NewOptions(opts...); err != nil {
		return nil, err
	}
	ds, err := dataset.FromSpec(names, columns, types, levels, snp, weights)
	if err != nil {
		return nil, err
	}

	return Learn(ctx, ds, opts...)
}

// single is the p = 1 result: no arcs and a 1×1 empty skeleton.
func single(ds *dataset.Dataset) *Result {
	name := ds.Var(0).Name
	sk := skeleton.New(1)

	return &Result{
		Names:    []string{name},
		Nodes:    map[string]Node{name: {}},
		Skeleton: sk,
		Stage1:   sk.Clone(),
		Stage2:   sk.Clone(),
		Directed: [][]float64{{0}},
		Order:    []string{name},
	}
}

func merge(lists ...[]diag.Warning) []diag.Warning {
	var out []diag.Warning
	for _, l := range lists {
		out = append(out, l...)
	}

	return out
}
