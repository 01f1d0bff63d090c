// SPDX-License-Identifier: MIT

package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Solver defaults.
const (
	DefaultNLambda = 50
	DefaultTol     = 1e-7
	DefaultMaxIter = 10_000

	// ratio of λmin to λmax when n > P, and when n ≤ P.
	minRatioTall = 1e-2
	minRatioWide = 5e-2

	// alphaFloor keeps λmax finite for ridge-like mixing.
	alphaFloor = 1e-3
)

// enet is one weighted penalised least-squares problem over fixed columns.
// norm is the objective denominator W; it stays fixed across IRLS steps.
type enet struct {
	x    [][]float64
	v    []float64
	vx   [][]float64 // v ⊙ x_c
	xv   []float64   // Σ v x_c² / norm
	vsum float64
	norm float64
}

func newEnet(x [][]float64, v []float64, norm float64) *enet {
	e := &enet{x: x, v: v, vx: make([][]float64, len(x)), xv: make([]float64, len(x)), norm: norm}
	e.vsum = floats.Sum(v)
	for c, col := range x {
		e.vx[c] = floats.MulTo(make([]float64, len(col)), v, col)
		e.xv[c] = floats.Dot(e.vx[c], col) / norm
	}

	return e
}

// residual returns z − b₀ − Xβ.
func (e *enet) residual(z, beta []float64, b0 float64) []float64 {
	r := make([]float64, len(z))
	copy(r, z)
	for i := range r {
		r[i] -= b0
	}
	for c, b := range beta {
		if b != 0 {
			floats.AddScaled(r, -b, e.x[c])
		}
	}

	return r
}

// solve runs coordinate descent from the warm start (beta, *b0) until the
// largest weighted squared update falls below tol or maxSweeps passes run.
// beta and *b0 are updated in place.
// Complexity: O(sweeps · n · width).
func (e *enet) solve(z, beta []float64, b0 *float64, lambda, alpha, tol float64, maxSweeps int) (int, bool) {
	r := e.residual(z, beta, *b0)
	l1 := lambda * alpha
	l2 := lambda * (1 - alpha)

	for sweep := 1; sweep <= maxSweeps; sweep++ {
		var dlx float64

		// Unpenalised intercept.
		if e.vsum > 0 {
			d := floats.Dot(e.v, r) / e.vsum
			if d != 0 {
				*b0 += d
				for i := range r {
					r[i] -= d
				}
				dlx = math.Max(dlx, e.vsum/e.norm*d*d)
			}
		}

		for c := range e.x {
			if e.xv[c] == 0 {
				continue
			}
			old := beta[c]
			g := floats.Dot(e.vx[c], r)/e.norm + e.xv[c]*old
			nb := softThreshold(g, l1) / (e.xv[c] + l2)
			if nb == old {
				continue
			}
			delta := nb - old
			floats.AddScaled(r, -delta, e.x[c])
			beta[c] = nb
			dlx = math.Max(dlx, e.xv[c]*delta*delta)
		}

		if dlx < tol {
			return sweep, true
		}
	}

	return maxSweeps, false
}

func softThreshold(g, t float64) float64 {
	switch {
	case g > t:
		return g - t
	case g < -t:
		return g + t
	default:
		return 0
	}
}

// lambdaSequence returns nlambda geometric values from lmax to lmax·ratio.
func lambdaSequence(lmax float64, nlambda int, ratio float64) []float64 {
	if nlambda < 1 {
		nlambda = 1
	}
	out := make([]float64, nlambda)
	if nlambda == 1 {
		out[0] = lmax
		return out
	}
	step := math.Log(ratio) / float64(nlambda-1)
	for k := range out {
		out[k] = lmax * math.Exp(step*float64(k))
	}

	return out
}

// countNonzero counts nonzero coefficients over all classes.
func countNonzero(beta [][]float64) int {
	df := 0
	for _, b := range beta {
		for _, x := range b {
			if x != 0 {
				df++
			}
		}
	}

	return df
}
