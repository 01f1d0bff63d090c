package refine_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/builder"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/rng"
	"github.com/katalvlaran/mixdag/skeleton"
)

var chainEdges = [][2]int{{0, 1}, {1, 2}, {2, 3}, {2, 4}}

func chainData(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	g, nodes, err := builder.Chain()
	require.NoError(t, err)
	ds, err := builder.Sample(g, nodes, n, builder.WithSeed(3))
	require.NoError(t, err)

	return ds
}

func config() refine.Config {
	return refine.Config{Alpha: 0.05, NPerm: 99, MaxCondSize: refine.DefaultMaxCondSize, Seed: 1, Workers: 4}
}

func TestRefine_CompleteSkeleton(t *testing.T) {
	ds := chainData(t, 200)
	in := skeleton.Complete(5)
	res, err := refine.Refine(context.Background(), ds, in, config())
	require.NoError(t, err)

	ok, err := res.Skeleton.SubsetOf(in)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10, in.Count(), "input must not be modified")
	assert.Less(t, res.Skeleton.Count(), 10)
	for _, e := range chainEdges {
		assert.True(t, res.Skeleton.Has(e[0], e[1]), "edge %v removed", e)
	}

	require.Len(t, res.Log, 10)
	for _, el := range res.Log {
		assert.Less(t, el.I, el.J)
		assert.True(t, el.Finished)
		assert.NotEmpty(t, el.Tests)
		assert.Equal(t, el.Removed, !res.Skeleton.Has(el.I, el.J))
		if el.Removed {
			last := el.Tests[len(el.Tests)-1]
			assert.Equal(t, el.SepSet, last.Cond)
			assert.GreaterOrEqual(t, last.PValue, 0.05)
		}
		for _, tr := range el.Tests {
			assert.GreaterOrEqual(t, tr.PValue, 1.0/100)
			assert.LessOrEqual(t, tr.PValue, 1.0)
			assert.LessOrEqual(t, len(tr.Cond), refine.DefaultMaxCondSize)
		}
	}
	assert.Empty(t, res.Warnings)
}

func TestRefine_AbsentEdgesNeverTested(t *testing.T) {
	ds := chainData(t, 100)
	in, err := skeleton.FromMatrix([][]int{
		{0, 1, 0, 0, 0},
		{1, 0, 1, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	res, err := refine.Refine(context.Background(), ds, in, config())
	require.NoError(t, err)
	require.Len(t, res.Log, 2)
	assert.Equal(t, [2]string{"A", "B"}, res.Log[0].Names)
	assert.Equal(t, [2]string{"B", "C"}, res.Log[1].Names)
}

func TestRefine_DeterministicAcrossWorkers(t *testing.T) {
	ds := chainData(t, 120)
	cfg := config()
	cfg.Workers = 1
	a, err := refine.Refine(context.Background(), ds, skeleton.Complete(5), cfg)
	require.NoError(t, err)
	cfg.Workers = 8
	b, err := refine.Refine(context.Background(), ds, skeleton.Complete(5), cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(a.Log, b.Log); diff != "" {
		t.Fatalf("log differs between worker counts (-1 +8):\n%s", diff)
	}
	assert.Equal(t, a.Skeleton.Matrix(), b.Skeleton.Matrix())
}

func TestRefine_RowShuffleKeepsStrongEdges(t *testing.T) {
	ds := chainData(t, 200)
	perm := make([]int, ds.N())
	rng.Perm(perm, rng.New(42))
	shuffled, err := ds.Permute(perm)
	require.NoError(t, err)

	for _, d := range []*dataset.Dataset{ds, shuffled} {
		res, err := refine.Refine(context.Background(), d, skeleton.Complete(5), config())
		require.NoError(t, err)
		for _, e := range chainEdges {
			assert.True(t, res.Skeleton.Has(e[0], e[1]))
		}
	}
}

func TestRefine_CoarsePermutationsWarn(t *testing.T) {
	ds := chainData(t, 60)
	cfg := config()
	cfg.NPerm = 9
	res, err := refine.Refine(context.Background(), ds, skeleton.Complete(5), cfg)
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, diag.KindNumerical, res.Warnings[0].Kind)
	assert.Equal(t, refine.Stage, res.Warnings[0].Stage)
	// Every p-value is at least 1/10 > alpha.
	assert.Equal(t, 0, res.Skeleton.Count())
}

func TestRefine_TimeoutRetainsEdges(t *testing.T) {
	ds := chainData(t, 60)
	cfg := config()
	cfg.Timeout = time.Nanosecond
	in := skeleton.Complete(5)
	res, err := refine.Refine(context.Background(), ds, in, cfg)
	require.NoError(t, err)

	assert.Equal(t, in.Matrix(), res.Skeleton.Matrix())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diag.KindTimeout, res.Warnings[0].Kind)
	assert.Len(t, res.Warnings[0].Variables, 10)
	for _, el := range res.Log {
		assert.False(t, el.Finished)
	}
}

func TestRefine_PoolCommon(t *testing.T) {
	ds := chainData(t, 100)
	cfg := config()
	cfg.Pool = refine.PoolCommon
	// A-B has no common neighbour in a path, so only the marginal test runs.
	in, err := skeleton.FromMatrix([][]int{
		{0, 1, 0, 0, 0},
		{1, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	res, err := refine.Refine(context.Background(), ds, in, cfg)
	require.NoError(t, err)
	for _, el := range res.Log {
		assert.Len(t, el.Tests, 1)
		assert.Empty(t, el.Tests[0].Cond)
	}
}

func TestRefine_Errors(t *testing.T) {
	ds := chainData(t, 50)
	ctx := context.Background()

	cfg := config()
	cfg.NPerm = 0
	_, err := refine.Refine(ctx, ds, skeleton.Complete(5), cfg)
	assert.True(t, errors.Is(err, diag.ErrConfig))

	for _, a := range []float64{0, 1, -0.1} {
		cfg = config()
		cfg.Alpha = a
		_, err = refine.Refine(ctx, ds, skeleton.Complete(5), cfg)
		assert.True(t, errors.Is(err, diag.ErrConfig), "alpha %v", a)
	}

	_, err = refine.Refine(ctx, ds, skeleton.Complete(4), config())
	assert.True(t, errors.Is(err, skeleton.ErrSizeMismatch))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = refine.Refine(cctx, ds, skeleton.Complete(5), config())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRefine_LogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("info", "text", &buf))
	_, err := refine.Refine(ctx, chainData(t, 50), skeleton.New(5), config())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stage 2 complete")
}

func TestParsePool(t *testing.T) {
	p, err := refine.ParsePool("Common")
	require.NoError(t, err)
	assert.Equal(t, refine.PoolCommon, p)
	assert.Equal(t, "union", refine.PoolUnion.String())
	_, err = refine.ParsePool("both")
	assert.Error(t, err)
}
