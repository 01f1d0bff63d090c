// SPDX-License-Identifier: MIT

package regression

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
)

const (
	// varianceFloor bounds the IRLS working weight p(1−p) from below.
	varianceFloor = 1e-5
	// probFloor keeps log-probabilities finite.
	probFloor = 1e-300
	// maxOuter caps IRLS iterations per λ.
	maxOuter = 1000
	// minClassCount is the fewest weighted observations a class may have.
	minClassCount = 2
)

// Multinomial is penalised symmetric softmax regression (one coefficient
// vector per class), fitted by per-class IRLS with warm starts.
type Multinomial struct{}

// Family implements Model.
func (Multinomial) Family() Family { return FamilyMultinomial }

func (Multinomial) check(X *dataset.Design, y Response, w []float64) error {
	if y.Codes == nil || y.Classes < 2 {
		return ErrFamilyMismatch
	}
	if err := checkShapes(X, y, w); err != nil {
		return err
	}
	counts := make([]int, y.Classes)
	for i, c := range y.Codes {
		if c < 0 || c >= y.Classes {
			return diag.Dataf(y.Name, "class code %d out of range at row %d", c, i)
		}
		if w[i] > 0 {
			counts[c]++
		}
	}
	for c, k := range counts {
		if k < minClassCount {
			return diag.Dataf(y.Name, "class %d has %d observations, need at least %d", c, k, minClassCount)
		}
	}

	return nil
}

// FitPath implements Model.
// Complexity: O(NLambda · outer · K · sweeps · n · width).
func (m Multinomial) FitPath(X *dataset.Design, y Response, w []float64, cfg PathConfig) (*Path, error) {
	if err := m.check(X, y, w); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults(len(w), X.Width())
	lambdas := pathLambdas(m.lambdaMax(X, y, w, cfg.Alpha), X.Width(), cfg)

	return &Path{Alpha: cfg.Alpha, Lambdas: lambdas, Fits: m.fitLambdas(X, y, w, cfg.Alpha, lambdas, cfg)}, nil
}

// FitFixed implements Model.
func (m Multinomial) FitFixed(X *dataset.Design, y Response, w []float64, lambda, alpha float64) (*Fit, error) {
	if err := m.check(X, y, w); err != nil {
		return nil, err
	}
	cfg := PathConfig{Alpha: alpha}.withDefaults(len(w), X.Width())

	return m.fitLambdas(X, y, w, alpha, []float64{lambda}, cfg)[0], nil
}

// indicators returns the one-hot response and the weighted class shares.
func indicators(y Response, w []float64) ([][]float64, []float64) {
	W := floats.Sum(w)
	ind := make([][]float64, y.Classes)
	share := make([]float64, y.Classes)
	for k := range ind {
		ind[k] = make([]float64, len(y.Codes))
	}
	for i, c := range y.Codes {
		ind[c][i] = 1
		share[c] += w[i] / W
	}

	return ind, share
}

func (Multinomial) lambdaMax(X *dataset.Design, y Response, w []float64, alpha float64) float64 {
	W := floats.Sum(w)
	ind, share := indicators(y, w)
	g := make([]float64, len(w))
	var lmax float64
	for k := range ind {
		for i := range g {
			g[i] = w[i] * (ind[k][i] - share[k])
		}
		for _, col := range X.Cols {
			lmax = math.Max(lmax, math.Abs(floats.Dot(g, col))/W)
		}
	}

	return lmax / math.Max(alpha, alphaFloor)
}

func (m Multinomial) fitLambdas(X *dataset.Design, y Response, w []float64, alpha float64, lambdas []float64, cfg PathConfig) []*Fit {
	n, K, width := len(w), y.Classes, X.Width()
	W := floats.Sum(w)
	ind, share := indicators(y, w)

	b0 := make([]float64, K)
	beta := make([][]float64, K)
	eta := make([][]float64, K)
	for k := range beta {
		beta[k] = make([]float64, width)
		b0[k] = math.Log(math.Max(share[k], varianceFloor))
	}
	centreIntercepts(b0, nil)
	for k := range eta {
		eta[k] = linearPredictor(b0[k], beta[k], X.Cols, n)
	}

	v := make([]float64, n)
	z := make([]float64, n)
	prob := make([][]float64, K)
	for k := range prob {
		prob[k] = make([]float64, n)
	}

	fits := make([]*Fit, 0, len(lambdas))
	for _, lam := range lambdas {
		sweeps, converged := 0, false
		for outer := 0; outer < maxOuter && sweeps < cfg.MaxIter; outer++ {
			var change float64
			for k := 0; k < K; k++ {
				softmax(eta, prob)
				for i := range v {
					p := prob[k][i]
					q := math.Max(p*(1-p), varianceFloor)
					v[i] = w[i] * q
					z[i] = eta[k][i] + (ind[k][i]-p)/q
				}
				e := newEnet(X.Cols, v, W)
				oldB := append([]float64(nil), beta[k]...)
				oldB0 := b0[k]

				s, _ := e.solve(z, beta[k], &b0[k], lam, alpha, cfg.Tol, cfg.MaxIter-sweeps)
				sweeps += s

				d := b0[k] - oldB0
				change = math.Max(change, e.vsum/W*d*d)
				for c := range oldB {
					d = beta[k][c] - oldB[c]
					change = math.Max(change, e.xv[c]*d*d)
				}
				eta[k] = linearPredictor(b0[k], beta[k], X.Cols, n)
				if sweeps >= cfg.MaxIter {
					break
				}
			}
			centreIntercepts(b0, eta)
			if change < cfg.Tol {
				converged = true
				break
			}
		}

		f := &Fit{
			Family:    FamilyMultinomial,
			Intercept: append([]float64(nil), b0...),
			Beta:      make([][]float64, K),
			Lambda:    lam,
			Alpha:     alpha,
			DF:        countNonzero(beta),
			Sweeps:    sweeps,
			Converged: converged,
			rows:      n,
		}
		for k := range beta {
			f.Beta[k] = append([]float64(nil), beta[k]...)
		}
		softmax(eta, prob)
		f.LogLik = logLik(prob, y.Codes, w)
		fits = append(fits, f)
	}

	return fits
}

// centreIntercepts shifts intercepts (and linear predictors) to mean zero;
// softmax probabilities are unchanged.
func centreIntercepts(b0 []float64, eta [][]float64) {
	mean := floats.Sum(b0) / float64(len(b0))
	for k := range b0 {
		b0[k] -= mean
		if eta != nil {
			for i := range eta[k] {
				eta[k][i] -= mean
			}
		}
	}
}

// softmax writes class probabilities of eta into prob.
func softmax(eta, prob [][]float64) {
	for i := range eta[0] {
		mx := math.Inf(-1)
		for k := range eta {
			mx = math.Max(mx, eta[k][i])
		}
		var sum float64
		for k := range eta {
			prob[k][i] = math.Exp(eta[k][i] - mx)
			sum += prob[k][i]
		}
		for k := range eta {
			prob[k][i] /= sum
		}
	}
}

func logLik(prob [][]float64, codes []int, w []float64) float64 {
	var ll float64
	for i, c := range codes {
		if w[i] != 0 {
			ll += w[i] * math.Log(math.Max(prob[c][i], probFloor))
		}
	}

	return ll
}

// Predict implements Model.
func (Multinomial) Predict(f *Fit, X *dataset.Design) [][]float64 {
	n := designRows(X, f)
	eta := make([][]float64, len(f.Beta))
	prob := make([][]float64, len(f.Beta))
	for k := range f.Beta {
		eta[k] = linearPredictor(f.Intercept[k], f.Beta[k], X.Cols, n)
		prob[k] = make([]float64, n)
	}
	softmax(eta, prob)

	return prob
}

// Score implements Model.
func (m Multinomial) Score(f *Fit, X *dataset.Design, y Response, w []float64) float64 {
	return logLik(m.Predict(f, X), y.Codes, w)
}

// deviance is −2·log-likelihood.
func (m Multinomial) deviance(f *Fit, X *dataset.Design, y Response, w []float64) float64 {
	return -2 * m.Score(f, X, y, w)
}
