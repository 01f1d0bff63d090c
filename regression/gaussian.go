// SPDX-License-Identifier: MIT

package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mixdag/dataset"
)

// sigmaFloor keeps the Gaussian log-likelihood finite on exact fits.
const sigmaFloor = 1e-10

// Gaussian is penalised least squares with an unpenalised intercept.
type Gaussian struct{}

// Family implements Model.
func (Gaussian) Family() Family { return FamilyGaussian }

func (Gaussian) check(X *dataset.Design, y Response, w []float64) error {
	if y.Codes != nil || y.Y == nil {
		return ErrFamilyMismatch
	}

	return checkShapes(X, y, w)
}

// FitPath implements Model.
// Complexity: O(NLambda · sweeps · n · width).
func (g Gaussian) FitPath(X *dataset.Design, y Response, w []float64, cfg PathConfig) (*Path, error) {
	if err := g.check(X, y, w); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults(len(w), X.Width())
	lambdas := pathLambdas(g.lambdaMax(X, y, w, cfg.Alpha), X.Width(), cfg)

	return &Path{Alpha: cfg.Alpha, Lambdas: lambdas, Fits: g.fitLambdas(X, y, w, cfg.Alpha, lambdas, cfg)}, nil
}

// FitFixed implements Model.
func (g Gaussian) FitFixed(X *dataset.Design, y Response, w []float64, lambda, alpha float64) (*Fit, error) {
	if err := g.check(X, y, w); err != nil {
		return nil, err
	}
	cfg := PathConfig{Alpha: alpha}.withDefaults(len(w), X.Width())

	return g.fitLambdas(X, y, w, alpha, []float64{lambda}, cfg)[0], nil
}

func (Gaussian) lambdaMax(X *dataset.Design, y Response, w []float64, alpha float64) float64 {
	W := floats.Sum(w)
	ybar := floats.Dot(w, y.Y) / W
	centred := make([]float64, len(y.Y))
	for i, v := range y.Y {
		centred[i] = w[i] * (v - ybar)
	}
	var lmax float64
	for _, col := range X.Cols {
		lmax = math.Max(lmax, math.Abs(floats.Dot(centred, col))/W)
	}

	return lmax / math.Max(alpha, alphaFloor)
}

func (g Gaussian) fitLambdas(X *dataset.Design, y Response, w []float64, alpha float64, lambdas []float64, cfg PathConfig) []*Fit {
	W := floats.Sum(w)
	e := newEnet(X.Cols, w, W)
	beta := make([]float64, X.Width())
	var b0 float64

	fits := make([]*Fit, 0, len(lambdas))
	for _, lam := range lambdas {
		sweeps, ok := e.solve(y.Y, beta, &b0, lam, alpha, cfg.Tol, cfg.MaxIter)
		b := make([]float64, len(beta))
		copy(b, beta)

		r := e.residual(y.Y, b, b0)
		var rss float64
		for i, ri := range r {
			rss += w[i] * ri * ri
		}
		s2 := math.Max(rss/W, sigmaFloor)

		fits = append(fits, &Fit{
			Family:    FamilyGaussian,
			Intercept: []float64{b0},
			Beta:      [][]float64{b},
			Sigma2:    s2,
			Lambda:    lam,
			Alpha:     alpha,
			LogLik:    -0.5 * W * (math.Log(2*math.Pi*s2) + 1),
			DF:        countNonzero([][]float64{b}),
			Sweeps:    sweeps,
			Converged: ok,
			rows:      len(w),
		})
	}

	return fits
}

// Predict implements Model.
func (Gaussian) Predict(f *Fit, X *dataset.Design) [][]float64 {
	return [][]float64{linearPredictor(f.Intercept[0], f.Beta[0], X.Cols, designRows(X, f))}
}

// Score implements Model.
func (g Gaussian) Score(f *Fit, X *dataset.Design, y Response, w []float64) float64 {
	mu := g.Predict(f, X)[0]
	c := -0.5 * math.Log(2*math.Pi*f.Sigma2)
	var ll float64
	for i, yi := range y.Y {
		d := yi - mu[i]
		ll += w[i] * (c - d*d/(2*f.Sigma2))
	}

	return ll
}

// deviance is the weighted squared error.
func (g Gaussian) deviance(f *Fit, X *dataset.Design, y Response, w []float64) float64 {
	mu := g.Predict(f, X)[0]
	var dev float64
	for i, yi := range y.Y {
		d := yi - mu[i]
		dev += w[i] * d * d
	}

	return dev
}

// linearPredictor returns b₀ + Xβ over n rows.
func linearPredictor(b0 float64, beta []float64, cols [][]float64, n int) []float64 {
	eta := make([]float64, n)
	for i := range eta {
		eta[i] = b0
	}
	for c, b := range beta {
		if b != 0 {
			floats.AddScaled(eta, b, cols[c])
		}
	}

	return eta
}

// designRows returns n for X, falling back to the fit's stored length when
// the design has no columns.
func designRows(X *dataset.Design, f *Fit) int {
	if X.Width() > 0 {
		return len(X.Cols[0])
	}

	return f.rows
}
