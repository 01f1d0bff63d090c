package regression_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/matrix"
	"github.com/katalvlaran/mixdag/regression"
)

// synth returns x1, x2 (noise), y = 2·x1 + ε and a 3-class variable driven by x1.
func synth(t *testing.T, n int, seed uint64) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	cls := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		y[i] = 2*x1[i] + 0.3*rng.NormFloat64()
		s := 2*x1[i] + 0.5*rng.NormFloat64()
		switch {
		case s < -0.7:
			cls[i] = 0
		case s < 0.7:
			cls[i] = 1
		default:
			cls[i] = 2
		}
	}
	ds, err := dataset.FromSpec([]string{"x1", "x2", "y", "cls"},
		[][]float64{x1, x2, y, cls}, "gggc", []int{1, 1, 1, 3}, []int{0, 0, 0, 0}, nil)
	require.NoError(t, err)

	return ds
}

func setup(t *testing.T, target int) (*dataset.Dataset, *dataset.Design, regression.Response) {
	t.Helper()
	ds := synth(t, 200, 11)
	X, err := ds.Design([]int{0, 1}, true)
	require.NoError(t, err)
	y, err := regression.NewResponse(ds, target)
	require.NoError(t, err)

	return ds, X, y
}

func TestForVariable(t *testing.T) {
	assert.Equal(t, regression.FamilyGaussian, regression.ForVariable(dataset.Variable{Type: dataset.Continuous}).Family())
	assert.Equal(t, regression.FamilyMultinomial, regression.ForVariable(dataset.Variable{Type: dataset.Categorical}).Family())
	assert.Equal(t, "multinomial", regression.FamilyMultinomial.String())
}

func TestParseCriterion(t *testing.T) {
	c, err := regression.ParseCriterion("ebic")
	require.NoError(t, err)
	assert.Equal(t, regression.EBIC, c)
	c, err = regression.ParseCriterion("CV")
	require.NoError(t, err)
	assert.Equal(t, regression.CV, c)
	_, err = regression.ParseCriterion("AIC")
	assert.Error(t, err)
}

func TestGaussian_PathStartsEmpty(t *testing.T) {
	ds, X, y := setup(t, 2)
	path, err := regression.Gaussian{}.FitPath(X, y, ds.Weights(), regression.PathConfig{Alpha: 1})
	require.NoError(t, err)
	require.Len(t, path.Fits, regression.DefaultNLambda)
	assert.Equal(t, 0, path.Fits[0].DF, "λmax must zero every coefficient")
	assert.InDelta(t, path.Lambdas[0]*1e-2, path.Lambdas[len(path.Lambdas)-1], 1e-12)
	assert.True(t, path.Converged())
	for l := 1; l < len(path.Lambdas); l++ {
		assert.Less(t, path.Lambdas[l], path.Lambdas[l-1])
	}
}

func TestGaussian_FixedMatchesLeastSquares(t *testing.T) {
	ds, X, y := setup(t, 2)
	w := ds.Weights()
	fit, err := regression.Gaussian{}.FitFixed(X, y, w, 0, 0)
	require.NoError(t, err)
	require.True(t, fit.Converged)

	ones := make([]float64, len(w))
	for i := range ones {
		ones[i] = 1
	}
	D, err := matrix.FromColumns([][]float64{ones, X.Cols[0], X.Cols[1]})
	require.NoError(t, err)
	Y, err := matrix.FromColumns([][]float64{y.Y})
	require.NoError(t, err)
	B, _, err := matrix.WeightedLeastSquares(D, Y, w, 0)
	require.NoError(t, err)

	for c := 0; c < 2; c++ {
		want, err := B.At(c+1, 0)
		require.NoError(t, err)
		assert.InDelta(t, want, fit.Beta[0][c], 1e-3)
	}
	assert.InDelta(t, fit.LogLik, regression.Gaussian{}.Score(fit, X, y, w), 1e-6)
}

func TestGaussian_SelectRecoversSignal(t *testing.T) {
	ds, X, y := setup(t, 2)
	for _, crit := range []regression.Criterion{regression.EBIC, regression.CV} {
		fit, err := regression.Select(regression.Gaussian{}, X, y, ds.Weights(), regression.SelectConfig{
			LambdaSel: crit, AlphaSel: crit, Gamma: 0.25, Folds: 5, Seed: 3,
		})
		require.NoError(t, err)
		assert.Greater(t, math.Abs(fit.Beta[0][0]), 0.5, crit.String())
		assert.Greater(t, fit.Magnitude(X.Columns(0)), fit.Magnitude(X.Columns(1)), crit.String())
	}
}

func TestSelect_CVDeterministic(t *testing.T) {
	ds, X, y := setup(t, 2)
	cfg := regression.SelectConfig{LambdaSel: regression.CV, AlphaSel: regression.CV, AlphaSeq: []float64{0.5, 1}, Folds: 4, Seed: 9}
	a, err := regression.Select(regression.Gaussian{}, X, y, ds.Weights(), cfg)
	require.NoError(t, err)
	b, err := regression.Select(regression.Gaussian{}, X, y, ds.Weights(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Lambda, b.Lambda)
	assert.Equal(t, a.Alpha, b.Alpha)
	assert.Equal(t, a.Beta, b.Beta)
}

func TestMultinomial_Select(t *testing.T) {
	ds, X, y := setup(t, 3)
	w := ds.Weights()
	m := regression.Multinomial{}
	fit, err := regression.Select(m, X, y, w, regression.SelectConfig{Gamma: 0.25})
	require.NoError(t, err)
	require.Len(t, fit.Beta, 3)
	assert.Greater(t, fit.Magnitude(X.Columns(0)), fit.Magnitude(X.Columns(1)))

	prob := m.Predict(fit, X)
	for i := range w {
		assert.InDelta(t, 1, prob[0][i]+prob[1][i]+prob[2][i], 1e-9)
	}
	assert.InDelta(t, fit.LogLik, m.Score(fit, X, y, w), 1e-6)
	// Class 2 rises with x1, class 0 falls.
	assert.Greater(t, fit.Beta[2][0], fit.Beta[0][0])
}

func TestMultinomial_RareClassIsDataError(t *testing.T) {
	X := &dataset.Design{Cols: [][]float64{{1, -1, 1, -1, 1, -1}}, Group: []int{0}}
	y := regression.Response{Name: "z", Codes: []int{0, 0, 1, 1, 1, 2}, Classes: 3}
	_, err := regression.Multinomial{}.FitFixed(X, y, []float64{1, 1, 1, 1, 1, 1}, 0.1, 1)
	var de *diag.DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "z", de.Variable)
}

func TestFamilyMismatchAndShapes(t *testing.T) {
	X := &dataset.Design{}
	_, err := regression.Gaussian{}.FitFixed(X, regression.Response{Codes: []int{0, 1, 0}, Classes: 2}, []float64{1, 1, 1}, 0, 1)
	assert.ErrorIs(t, err, regression.ErrFamilyMismatch)

	_, err = regression.Gaussian{}.FitFixed(X, regression.Response{Y: []float64{1, 2, 3}}, []float64{1, 1}, 0, 1)
	assert.ErrorIs(t, err, regression.ErrDimensionMismatch)

	_, err = regression.Gaussian{}.FitFixed(X, regression.Response{Name: "t", Y: []float64{1, 2}}, []float64{1, 1}, 0, 1)
	assert.ErrorIs(t, err, diag.ErrData)
}

func TestInterceptOnly(t *testing.T) {
	X := &dataset.Design{}
	w := []float64{1, 1, 1, 1}
	g, err := regression.Gaussian{}.FitFixed(X, regression.Response{Y: []float64{1, 2, 3, 6}}, w, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3, g.Intercept[0], 1e-9)
	assert.Equal(t, 2, g.NumParams())
	assert.Equal(t, []float64{3, 3, 3, 3}, roundAll(regression.Gaussian{}.Predict(g, X)[0]))

	m, err := regression.Multinomial{}.FitFixed(X, regression.Response{Codes: []int{0, 0, 0, 1}, Classes: 2}, []float64{1, 1, 1, 1}, 0, 0)
	assert.ErrorIs(t, err, diag.ErrData, "class 1 has one observation")
	assert.Nil(t, m)

	m, err = regression.Multinomial{}.FitFixed(X, regression.Response{Codes: []int{0, 0, 0, 1, 1, 0}, Classes: 2}, []float64{1, 1, 1, 1, 1, 1}, 0, 0)
	require.NoError(t, err)
	prob := regression.Multinomial{}.Predict(m, X)
	assert.InDelta(t, 2.0/3.0, prob[0][0], 1e-4)
	assert.Equal(t, 1, m.NumParams())
}

func TestThresholdAndMagnitude(t *testing.T) {
	f := &regression.Fit{Beta: [][]float64{{0.5, -0.05, 0.2}, {-0.3, 0.01, 0}}}
	assert.InDelta(t, 0.4, f.Magnitude([]int{0}), 1e-12)
	f.Threshold(0.1)
	assert.Equal(t, [][]float64{{0.5, 0, 0.2}, {-0.3, 0, 0}}, f.Beta)
	assert.Equal(t, 3, f.DF)
}

func roundAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Round(x*1e9) / 1e9
	}

	return out
}
