package blanket_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/blanket"
	"github.com/katalvlaran/mixdag/builder"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/regression"
	"github.com/katalvlaran/mixdag/skeleton"
)

func chainData(t *testing.T, n int, seed uint64) *dataset.Dataset {
	t.Helper()
	g, nodes, err := builder.Chain()
	require.NoError(t, err)
	ds, err := builder.Sample(g, nodes, n, builder.WithSeed(seed))
	require.NoError(t, err)

	return ds
}

func defaults() blanket.Config {
	return blanket.Config{LambdaGamma: 0.25, Folds: 10, Seed: 1, Workers: 4}
}

func subset(t *testing.T, a, b *skeleton.Skeleton) bool {
	t.Helper()
	ok, err := a.SubsetOf(b)
	require.NoError(t, err)

	return ok
}

func TestEstimate_ChainRecovered(t *testing.T) {
	ds := chainData(t, 200, 1)
	res, err := blanket.Estimate(context.Background(), ds, defaults())
	require.NoError(t, err)

	sk := res.Skeleton
	assert.True(t, sk.Symmetric())
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {2, 4}} {
		assert.True(t, sk.Has(e[0], e[1]), "edge %v missing", e)
		assert.Greater(t, sk.Weight(e[0], e[1]), 0.0)
	}
	require.Len(t, res.Fits, 5)
	assert.Equal(t, regression.FamilyMultinomial, res.Fits[4].Family)
	assert.Equal(t, "E", res.Fits[4].Variable)
	for _, pe := range res.Estimates() {
		assert.NotEqual(t, pe.Target, pe.Predictor)
		assert.Greater(t, pe.Magnitude, 0.0)
	}
}

func TestEstimate_RuleAndThresholdNested(t *testing.T) {
	ds := chainData(t, 150, 2)
	ctx := context.Background()

	cfg := defaults()
	or, err := blanket.Estimate(ctx, ds, cfg)
	require.NoError(t, err)
	cfg.Rule = blanket.RuleAND
	and, err := blanket.Estimate(ctx, ds, cfg)
	require.NoError(t, err)
	assert.True(t, subset(t, and.Skeleton, or.Skeleton))
	assert.LessOrEqual(t, and.Skeleton.Count(), or.Skeleton.Count())

	cfg = defaults()
	cfg.Threshold = blanket.ThresholdHW
	hw, err := blanket.Estimate(ctx, ds, cfg)
	require.NoError(t, err)
	cfg.Threshold = blanket.ThresholdNone
	none, err := blanket.Estimate(ctx, ds, cfg)
	require.NoError(t, err)
	assert.True(t, subset(t, hw.Skeleton, none.Skeleton), "HW keeps a subset of none")
	assert.True(t, subset(t, or.Skeleton, none.Skeleton), "LW keeps a subset of none")
}

func TestEstimate_WorkerCountDoesNotChangeResult(t *testing.T) {
	ds := chainData(t, 120, 3)
	cfg := defaults()
	cfg.LambdaSel = regression.CV
	cfg.Folds = 5

	cfg.Workers = 1
	a, err := blanket.Estimate(context.Background(), ds, cfg)
	require.NoError(t, err)
	cfg.Workers = 8
	b, err := blanket.Estimate(context.Background(), ds, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Skeleton.Matrix(), b.Skeleton.Matrix())
	assert.Equal(t, a.Directed, b.Directed)
}

func TestEstimate_DegenerateColumn(t *testing.T) {
	ds, err := dataset.FromSpec([]string{"x", "flat", "c"},
		[][]float64{{1, 2, 3, 4, 5}, {7, 7, 7, 7, 7}, {0, 1, 0, 1, 1}},
		"ggc", []int{1, 1, 2}, []int{0, 0, 0}, nil)
	require.NoError(t, err)
	_, err = blanket.Estimate(context.Background(), ds, defaults())
	var de *diag.DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "flat", de.Variable)
}

func TestEstimate_SingleVariable(t *testing.T) {
	ds, err := dataset.FromSpec(nil, [][]float64{{1, 2, 3, 4}}, "g", []int{1}, []int{0}, nil)
	require.NoError(t, err)
	res, err := blanket.Estimate(context.Background(), ds, defaults())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skeleton.P())
	assert.Equal(t, 0, res.Skeleton.Count())
}

func TestEstimate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := blanket.Estimate(ctx, chainData(t, 60, 4), defaults())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimate_LogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("info", "text", &buf))
	_, err := blanket.Estimate(ctx, chainData(t, 60, 5), defaults())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stage 1 complete")
}

func TestParseEnums(t *testing.T) {
	r, err := blanket.ParseRule("and")
	require.NoError(t, err)
	assert.Equal(t, blanket.RuleAND, r)
	_, err = blanket.ParseRule("XOR")
	assert.Error(t, err)

	th, err := blanket.ParseThreshold("HW")
	require.NoError(t, err)
	assert.Equal(t, blanket.ThresholdHW, th)
	assert.Equal(t, "none", blanket.ThresholdNone.String())
	_, err = blanket.ParseThreshold("max")
	assert.Error(t, err)
}

func TestEstimate_ConvergenceWarning(t *testing.T) {
	ds := chainData(t, 100, 6)
	cfg := defaults()
	cfg.Path = regression.PathConfig{MaxIter: 1}
	res, err := blanket.Estimate(context.Background(), ds, cfg)
	require.NoError(t, err)

	var names []string
	for _, w := range res.Warnings {
		assert.Equal(t, diag.KindConvergence, w.Kind)
		assert.Equal(t, blanket.Stage, w.Stage)
		require.Len(t, w.Variables, 1)
		names = append(names, w.Variables[0])
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
	for _, f := range res.Fits {
		assert.False(t, f.Converged, f.Variable)
	}
}
