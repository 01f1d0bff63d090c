// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/rng"
)

// Criterion picks one fit from a path.
type Criterion uint8

const (
	// EBIC minimises deviance + df·log n + 2γ·df·log P.
	EBIC Criterion = iota
	// CV minimises the k-fold held-out deviance.
	CV
)

// String returns the criterion name.
func (c Criterion) String() string {
	switch c {
	case EBIC:
		return "EBIC"
	case CV:
		return "CV"
	default:
		return fmt.Sprintf("Criterion(%d)", uint8(c))
	}
}

// ParseCriterion accepts "EBIC" or "CV" (case-insensitive).
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToUpper(s) {
	case "EBIC":
		return EBIC, nil
	case "CV":
		return CV, nil
	default:
		return 0, fmt.Errorf("unknown selection criterion %q (want EBIC or CV)", s)
	}
}

// PathConfig controls one regularisation path. Zero fields take defaults.
type PathConfig struct {
	// Alpha mixes lasso (1) and ridge (0) penalties.
	Alpha float64
	// NLambda is the path length (default 50).
	NLambda int
	// MinRatio is λmin/λmax (default 1e-2 when n > P, else 5e-2).
	MinRatio float64
	// Tol is the coordinate-descent convergence threshold (default 1e-7).
	Tol float64
	// MaxIter bounds coordinate-descent sweeps per λ (default 10000).
	MaxIter int
}

func (c PathConfig) withDefaults(n, width int) PathConfig {
	if c.NLambda <= 0 {
		c.NLambda = DefaultNLambda
	}
	if c.MinRatio <= 0 {
		c.MinRatio = minRatioWide
		if n > width {
			c.MinRatio = minRatioTall
		}
	}
	if c.Tol <= 0 {
		c.Tol = DefaultTol
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}

	return c
}

// pathLambdas degenerates to a single unpenalised fit when no column can
// enter the model.
func pathLambdas(lmax float64, width int, cfg PathConfig) []float64 {
	if width == 0 || !(lmax > 0) {
		return []float64{0}
	}

	return lambdaSequence(lmax, cfg.NLambda, cfg.MinRatio)
}

// Path is a sequence of fits along decreasing λ at one α.
type Path struct {
	Alpha   float64
	Lambdas []float64
	Fits    []*Fit
}

// Converged reports whether every fit on the path converged.
func (p *Path) Converged() bool {
	for _, f := range p.Fits {
		if !f.Converged {
			return false
		}
	}

	return true
}

// EBICScore returns −2·LogLik + df·log n + 2γ·df·log P for a fit over P
// candidate columns.
func EBICScore(f *Fit, n float64, width int, gamma float64) float64 {
	df := float64(f.DF)
	var logP float64
	if width > 1 {
		logP = math.Log(float64(width))
	}

	return -2*f.LogLik + df*math.Log(n) + 2*gamma*df*logP
}

// SelectConfig controls λ and α selection.
type SelectConfig struct {
	LambdaSel Criterion
	AlphaSel  Criterion
	// AlphaSeq lists candidate α values (default {1}).
	AlphaSeq []float64
	// Gamma is the EBIC hyperparameter.
	Gamma float64
	// Folds is k for CV (clamped to n).
	Folds int
	// Seed fixes the CV fold assignment.
	Seed uint64
	Path PathConfig
}

// foldStream separates fold shuffles from other consumers of the same seed.
const foldStream = 0xf01d

// Select fits a path for every α in AlphaSeq, picks λ on each path by
// LambdaSel and then α by AlphaSel. The chosen fit reports Converged=false
// when any fit along its path failed to converge.
// Complexity: O(|AlphaSeq| · (1 + Folds·[CV]) · path cost).
func Select(m Model, X *dataset.Design, y Response, w []float64, cfg SelectConfig) (*Fit, error) {
	alphas := cfg.AlphaSeq
	if len(alphas) == 0 {
		alphas = []float64{1}
	}
	useCV := cfg.LambdaSel == CV || cfg.AlphaSel == CV
	var folds []int
	k := cfg.Folds
	if useCV {
		if k < 2 {
			k = 2
		}
		if k > len(w) {
			k = len(w)
		}
		folds = foldAssignment(len(w), k, cfg.Seed)
	}
	n := floats.Sum(w)

	var best *Fit
	bestCrit := math.Inf(1)
	for _, a := range alphas {
		pc := cfg.Path
		pc.Alpha = a
		path, err := m.FitPath(X, y, w, pc)
		if err != nil {
			return nil, err
		}

		ebic := make([]float64, len(path.Fits))
		for l, f := range path.Fits {
			ebic[l] = EBICScore(f, n, X.Width(), cfg.Gamma)
		}
		var cv []float64
		if useCV {
			cv = crossValidate(m, X, y, w, path, pc.withDefaults(len(w), X.Width()), folds, k)
		}
		byLambda, byAlpha := ebic, ebic
		if cfg.LambdaSel == CV {
			byLambda = cv
		}
		if cfg.AlphaSel == CV {
			byAlpha = cv
		}

		idx := floats.MinIdx(byLambda)
		if byAlpha[idx] < bestCrit {
			bestCrit = byAlpha[idx]
			best = path.Fits[idx]
			best.Converged = path.Converged()
		}
	}
	if best == nil {
		// All criteria were NaN; fall back to the sparsest fit of the last α.
		pc := cfg.Path
		pc.Alpha = alphas[len(alphas)-1]
		path, err := m.FitPath(X, y, w, pc)
		if err != nil {
			return nil, err
		}
		best = path.Fits[0]
	}

	return best, nil
}

// foldAssignment shuffles rows with a seeded stream and deals them into
// k folds.
func foldAssignment(n, k int, seed uint64) []int {
	perm := make([]int, n)
	rng.Perm(perm, rng.Stream(seed, foldStream))
	folds := make([]int, n)
	for i, row := range perm {
		folds[row] = i % k
	}

	return folds
}

// crossValidate returns the summed held-out deviance of every λ on path.
func crossValidate(m Model, X *dataset.Design, y Response, w []float64, path *Path, cfg PathConfig, folds []int, k int) []float64 {
	total := make([]float64, len(path.Lambdas))
	train := make([]float64, len(w))
	test := make([]float64, len(w))
	for f := 0; f < k; f++ {
		for i := range w {
			train[i], test[i] = w[i], 0
			if folds[i] == f {
				train[i], test[i] = 0, w[i]
			}
		}
		if floats.Sum(train) == 0 || floats.Sum(test) == 0 {
			continue
		}
		fits := m.fitLambdas(X, y, train, path.Alpha, path.Lambdas, cfg)
		for l, fit := range fits {
			total[l] += m.deviance(fit, X, y, test)
		}
	}

	return total
}
