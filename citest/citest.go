// SPDX-License-Identifier: MIT

package citest

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/matrix"
	"github.com/katalvlaran/mixdag/rng"
)

var (
	// ErrNoPermutations indicates nperm < 1.
	ErrNoPermutations = errors.New("citest: nperm must be positive")

	// ErrBadPair indicates i == j, an index out of range, or i/j in the
	// conditioning set.
	ErrBadPair = errors.New("citest: invalid variable pair")
)

// DefaultRidge stabilises residualisation on collinear conditioning sets.
const DefaultRidge = 1e-8

// normFloor treats residual blocks below this squared norm as exactly zero.
const normFloor = 1e-12

// Outcome is the result of one conditional-independence test.
type Outcome struct {
	// Stat is the observed statistic T.
	Stat float64
	// PValue is (1 + exceedances) / (NPerm + 1).
	PValue float64
	// Exceed counts permuted statistics ≥ Stat.
	Exceed int
	NPerm  int
}

// Independent reports whether the test fails to reject at level alpha.
func (o Outcome) Independent(alpha float64) bool { return o.PValue >= alpha }

// Tester runs tests on one dataset. It is safe for concurrent use; every
// call needs its own *rand.Rand.
type Tester struct {
	ds    *dataset.Dataset
	sqrtw []float64
	ridge float64
}

// New returns a Tester for ds with the default ridge.
func New(ds *dataset.Dataset) *Tester {
	sw := make([]float64, ds.N())
	for i, w := range ds.Weights() {
		sw[i] = math.Sqrt(w)
	}

	return &Tester{ds: ds, sqrtw: sw, ridge: DefaultRidge}
}

// Statistic returns the observed T for (i, j | cond).
// Complexity: O(n·k² + k³ + n·a·b) with k = 1 + width(cond).
func (t *Tester) Statistic(i, j int, cond []int) (float64, error) {
	U, V, err := t.residuals(i, j, cond)
	if err != nil {
		return 0, err
	}

	return statistic(U, V), nil
}

// Test computes T and its permutation p-value for (i, j | cond), drawing
// nperm permutations from r.
// Complexity: O(residualisation + nperm·n·a·b).
func (t *Tester) Test(i, j int, cond []int, nperm int, r *rand.Rand) (Outcome, error) {
	if nperm < 1 {
		return Outcome{}, ErrNoPermutations
	}
	U, V, err := t.residuals(i, j, cond)
	if err != nil {
		return Outcome{}, err
	}
	obs := statistic(U, V)
	out := Outcome{Stat: obs, NPerm: nperm}
	if obs == 0 {
		// Nothing left to explain: every permutation ties.
		out.Exceed = nperm
		out.PValue = 1
		return out, nil
	}

	n := t.ds.N()
	perm := make([]int, n)
	Vp := make([][]float64, len(V))
	for b := range Vp {
		Vp[b] = make([]float64, n)
	}
	tol := 1e-12 * math.Max(1, obs)
	for k := 0; k < nperm; k++ {
		rng.Perm(perm, r)
		for b, col := range V {
			dst := Vp[b]
			for row, src := range perm {
				dst[row] = col[src]
			}
		}
		if statistic(U, Vp) >= obs-tol {
			out.Exceed++
		}
	}
	out.PValue = float64(1+out.Exceed) / float64(nperm+1)

	return out, nil
}

// residuals returns √w-scaled residual blocks of i and j given cond.
func (t *Tester) residuals(i, j int, cond []int) ([][]float64, [][]float64, error) {
	p := t.ds.P()
	if i == j || i < 0 || j < 0 || i >= p || j >= p {
		return nil, nil, fmt.Errorf("%w: (%d,%d)", ErrBadPair, i, j)
	}
	for _, c := range cond {
		if c == i || c == j {
			return nil, nil, fmt.Errorf("%w: %d is conditioned on", ErrBadPair, c)
		}
	}

	zcols := [][]float64{ones(t.ds.N())}
	if len(cond) > 0 {
		des, err := t.ds.Design(cond, true)
		if err != nil {
			return nil, nil, err
		}
		zcols = append(zcols, des.Cols...)
	}
	Z, err := matrix.FromColumns(zcols)
	if err != nil {
		return nil, nil, err
	}

	U, err := t.residualise(Z, t.ds.Encode(i))
	if err != nil {
		return nil, nil, err
	}
	V, err := t.residualise(Z, t.ds.Encode(j))
	if err != nil {
		return nil, nil, err
	}

	return U, V, nil
}

func (t *Tester) residualise(Z *matrix.Dense, block [][]float64) ([][]float64, error) {
	Y, err := matrix.FromColumns(block)
	if err != nil {
		return nil, err
	}
	_, R, err := matrix.WeightedLeastSquares(Z, Y, t.ds.Weights(), t.ridge)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(block))
	for a := range out {
		col, err := R.Col(a)
		if err != nil {
			return nil, err
		}
		floats.Mul(col, t.sqrtw)
		out[a] = col
	}

	return out, nil
}

// statistic is Σₐ Σ_b ⟨u_a, v_b⟩² / (‖u_a‖²‖v_b‖²), skipping null columns.
func statistic(U, V [][]float64) float64 {
	var T float64
	for _, u := range U {
		uu := floats.Dot(u, u)
		if uu < normFloor {
			continue
		}
		for _, v := range V {
			vv := floats.Dot(v, v)
			if vv < normFloor {
				continue
			}
			uv := floats.Dot(u, v)
			T += uv * uv / (uu * vv)
		}
	}

	return T
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
