// SPDX-License-Identifier: MIT

package regression

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
)

var (
	// ErrDimensionMismatch indicates response, design and weights disagree on n.
	ErrDimensionMismatch = errors.New("regression: dimension mismatch")

	// ErrFamilyMismatch indicates a response of the wrong kind for the model.
	ErrFamilyMismatch = errors.New("regression: response does not match model family")
)

// Family tags the model variant.
type Family uint8

const (
	// FamilyGaussian is penalised least squares for continuous targets.
	FamilyGaussian Family = iota
	// FamilyMultinomial is penalised softmax regression for categorical targets.
	FamilyMultinomial
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyGaussian:
		return "gaussian"
	case FamilyMultinomial:
		return "multinomial"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// Response is the target of one regression.
type Response struct {
	// Name labels errors and warnings.
	Name string
	// Y holds continuous (standardised) targets; nil for categorical.
	Y []float64
	// Codes holds class codes 0..Classes-1; nil for continuous.
	Codes []int
	// Classes is the number of observed categories (0 for continuous).
	Classes int
}

// Len returns the sample count of the response.
func (r Response) Len() int {
	if r.Codes != nil {
		return len(r.Codes)
	}

	return len(r.Y)
}

// NewResponse builds the response of variable j. Continuous targets are
// standardised with the dataset weights.
func NewResponse(ds *dataset.Dataset, j int) (Response, error) {
	v := ds.Var(j)
	if v.Type == dataset.Categorical {
		return Response{Name: v.Name, Codes: ds.Codes(j), Classes: ds.Categories(j)}, nil
	}
	des, err := ds.Design([]int{j}, true)
	if err != nil {
		return Response{}, err
	}

	return Response{Name: v.Name, Y: des.Cols[0]}, nil
}

// Fit is one fitted model at a single (λ, α).
type Fit struct {
	Family Family
	// Intercept has one entry per class (one for Gaussian).
	Intercept []float64
	// Beta[k][c] is the coefficient of design column c for class k.
	Beta [][]float64
	// Sigma2 is the Gaussian residual variance (MLE); zero for multinomial.
	Sigma2 float64

	Lambda float64
	Alpha  float64
	// LogLik is the weighted in-sample log-likelihood.
	LogLik float64
	// DF counts nonzero coefficients.
	DF int
	// Sweeps is the number of coordinate-descent passes spent.
	Sweeps    int
	Converged bool

	rows int // sample count, for intercept-only prediction
}

// NumParams returns the free parameter count of an unpenalised fit of the
// same shape, as used by BIC-type scores.
func (f *Fit) NumParams() int {
	width := 0
	if len(f.Beta) > 0 {
		width = len(f.Beta[0])
	}
	if f.Family == FamilyGaussian {
		return width + 2
	}

	return (len(f.Beta) - 1) * (width + 1)
}

// Magnitude returns the mean absolute coefficient of the given design
// columns, averaged over classes.
func (f *Fit) Magnitude(cols []int) float64 {
	if len(cols) == 0 || len(f.Beta) == 0 {
		return 0
	}
	var sum float64
	for _, b := range f.Beta {
		for _, c := range cols {
			if b[c] < 0 {
				sum -= b[c]
			} else {
				sum += b[c]
			}
		}
	}

	return sum / float64(len(cols)*len(f.Beta))
}

// Threshold zeroes every coefficient with |β| ≤ tau and recounts DF.
func (f *Fit) Threshold(tau float64) {
	df := 0
	for _, b := range f.Beta {
		for c, x := range b {
			if x <= tau && x >= -tau {
				b[c] = 0
				continue
			}
			df++
		}
	}
	f.DF = df
}

// Model is the capability set shared by every family.
type Model interface {
	// Family reports the variant.
	Family() Family
	// FitPath fits a regularisation path with warm starts.
	FitPath(X *dataset.Design, y Response, w []float64, cfg PathConfig) (*Path, error)
	// FitFixed fits a single (λ, α) from a cold start.
	FitFixed(X *dataset.Design, y Response, w []float64, lambda, alpha float64) (*Fit, error)
	// Score returns the weighted log-likelihood of y under f.
	Score(f *Fit, X *dataset.Design, y Response, w []float64) float64
	// Predict returns fitted means (one row) or class probabilities (one row per class).
	Predict(f *Fit, X *dataset.Design) [][]float64

	lambdaMax(X *dataset.Design, y Response, w []float64, alpha float64) float64
	fitLambdas(X *dataset.Design, y Response, w []float64, alpha float64, lambdas []float64, cfg PathConfig) []*Fit
	deviance(f *Fit, X *dataset.Design, y Response, w []float64) float64
}

// ForVariable returns the model family for a variable's type.
func ForVariable(v dataset.Variable) Model {
	if v.Type == dataset.Categorical {
		return Multinomial{}
	}

	return Gaussian{}
}

// checkShapes validates that design, response and weights agree on n.
func checkShapes(X *dataset.Design, y Response, w []float64) error {
	n := y.Len()
	if len(w) != n {
		return fmt.Errorf("%w: %d weights for %d samples", ErrDimensionMismatch, len(w), n)
	}
	for c, col := range X.Cols {
		if len(col) != n {
			return fmt.Errorf("%w: design column %d has %d rows, want %d", ErrDimensionMismatch, c, len(col), n)
		}
	}
	if n < dataset.MinSamples {
		return diag.Dataf(y.Name, "insufficient sample size: %d, need at least %d", n, dataset.MinSamples)
	}

	return nil
}
