// SPDX-License-Identifier: MIT

package blanket

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/regression"
	"github.com/katalvlaran/mixdag/rng"
	"github.com/katalvlaran/mixdag/skeleton"
)

// Stage is the pipeline stage number reported in warnings.
const Stage = 1

// Pairwise is one directed estimate: how strongly Predictor predicts Target.
type Pairwise struct {
	Target    int
	Predictor int
	Magnitude float64
}

// NodeFit summarises the selected nodewise model of one variable.
type NodeFit struct {
	Variable  string
	Family    regression.Family
	Lambda    float64
	Alpha     float64
	Tau       float64
	DF        int
	Converged bool
}

// Result is the Stage 1 output.
type Result struct {
	// Skeleton is symmetric; weights are combined magnitudes.
	Skeleton *skeleton.Skeleton
	// Directed[i][j] is E[i,j] after thresholding.
	Directed [][]float64
	Fits     []NodeFit
	Warnings []diag.Warning
}

// Estimates lists every nonzero directed estimate ordered by (Target, Predictor).
func (r *Result) Estimates() []Pairwise {
	var out []Pairwise
	for i, row := range r.Directed {
		for j, m := range row {
			if m != 0 {
				out = append(out, Pairwise{Target: i, Predictor: j, Magnitude: m})
			}
		}
	}

	return out
}

// Estimate runs nodewise regressions for every variable of ds and combines
// them into a Stage 1 skeleton. A degenerate variable aborts with a
// DataError naming it; non-converged paths become ConvergenceWarnings.
// Complexity: O(p · path cost), parallel over variables.
func Estimate(ctx context.Context, ds *dataset.Dataset, cfg Config) (*Result, error) {
	log := ctxlog.FromContext(ctx)
	start := time.Now()

	if err := ds.CheckSampleSize(); err != nil {
		return nil, err
	}
	p := ds.P()
	res := &Result{Skeleton: skeleton.New(p), Directed: make([][]float64, p), Fits: make([]NodeFit, p)}
	for i := range res.Directed {
		res.Directed[i] = make([]float64, p)
	}
	if p == 1 {
		return res, nil
	}
	// Degeneracy is checked up front so the reported variable does not
	// depend on worker scheduling.
	for j := 0; j < p; j++ {
		if err := ds.Degenerate(j); err != nil {
			return nil, err
		}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var warn diag.Collector
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nf, row, err := fitNode(ds, i, cfg)
			if err != nil {
				return err
			}
			res.Fits[i] = nf
			res.Directed[i] = row
			if !nf.Converged {
				warn.Addf(diag.KindConvergence, Stage, []string{nf.Variable},
					"%s path did not converge (lambda=%.4g, alpha=%.2g)", nf.Family, nf.Lambda, nf.Alpha)
			}
			log.Debug("nodewise fit", "variable", nf.Variable, "family", nf.Family.String(),
				"lambda", nf.Lambda, "alpha", nf.Alpha, "df", nf.DF, "tau", nf.Tau)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := combine(res.Skeleton, res.Directed, cfg.Rule); err != nil {
		return nil, err
	}
	res.Warnings = warn.Warnings()
	log.Info("stage 1 complete: neighbourhood estimation",
		"variables", p, "edges", res.Skeleton.Count(), "rule", cfg.Rule.String(),
		"threshold", cfg.Threshold.String(), "elapsed", time.Since(start))

	return res, nil
}

// fitNode regresses variable i on all others and returns its directed row.
func fitNode(ds *dataset.Dataset, i int, cfg Config) (NodeFit, []float64, error) {
	v := ds.Var(i)
	others := ds.Others(i)
	X, err := ds.Design(others, true)
	if err != nil {
		return NodeFit{}, nil, err
	}
	y, err := regression.NewResponse(ds, i)
	if err != nil {
		return NodeFit{}, nil, err
	}
	m := regression.ForVariable(v)
	fit, err := regression.Select(m, X, y, ds.Weights(), regression.SelectConfig{
		LambdaSel: cfg.LambdaSel,
		AlphaSel:  cfg.AlphaSel,
		AlphaSeq:  cfg.AlphaSeq,
		Gamma:     cfg.LambdaGamma,
		Folds:     cfg.Folds,
		Seed:      rng.Derive(cfg.Seed, uint64(i)),
		Path:      cfg.Path,
	})
	if err != nil {
		return NodeFit{}, nil, err
	}

	tau := cfg.tau(fit.DF, X.Width(), ds.N(), coefNorm(fit))
	fit.Threshold(tau)

	row := make([]float64, ds.P())
	for _, j := range others {
		row[j] = fit.Magnitude(X.Columns(j))
	}

	return NodeFit{
		Variable:  v.Name,
		Family:    m.Family(),
		Lambda:    fit.Lambda,
		Alpha:     fit.Alpha,
		Tau:       tau,
		DF:        fit.DF,
		Converged: fit.Converged,
	}, row, nil
}

// coefNorm is the Euclidean norm of all slope coefficients of fit.
func coefNorm(fit *regression.Fit) float64 {
	var ss float64
	for _, row := range fit.Beta {
		if len(row) > 0 {
			n := floats.Norm(row, 2)
			ss += n * n
		}
	}

	return math.Sqrt(ss)
}

// combine writes the symmetric skeleton implied by the directed estimates.
// Complexity: O(p²).
func combine(sk *skeleton.Skeleton, E [][]float64, rule Rule) error {
	p := len(E)
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			a, b := E[i][j], E[j][i]
			var keep bool
			if rule == RuleAND {
				keep = a != 0 && b != 0
			} else {
				keep = a != 0 || b != 0
			}
			if !keep {
				continue
			}
			var sum float64
			var k int
			for _, m := range [2]float64{a, b} {
				if m != 0 {
					sum += m
					k++
				}
			}
			if err := sk.Set(i, j, sum/float64(k)); err != nil {
				return err
			}
		}
	}

	return nil
}
