package skeleton_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/skeleton"
)

func TestSetRemoveSymmetric(t *testing.T) {
	s := skeleton.New(4)
	require.NoError(t, s.Set(0, 2, 0.7))
	require.NoError(t, s.Set(3, 1, 0.2))
	assert.True(t, s.Has(2, 0))
	assert.True(t, s.Has(1, 3))
	assert.Equal(t, 0.7, s.Weight(2, 0))
	assert.True(t, s.Symmetric())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []skeleton.Edge{{I: 0, J: 2, Weight: 0.7}, {I: 1, J: 3, Weight: 0.2}}, s.Edges())

	require.NoError(t, s.Remove(2, 0))
	assert.False(t, s.Has(0, 2))
	assert.Equal(t, 0.0, s.Weight(0, 2))
	require.NoError(t, s.Remove(2, 0), "removing an absent edge is a no-op")
}

func TestErrors(t *testing.T) {
	s := skeleton.New(3)
	assert.ErrorIs(t, s.Set(1, 1, 1), skeleton.ErrSelfLoop)
	assert.ErrorIs(t, s.Set(0, 3, 1), skeleton.ErrOutOfRange)
	assert.ErrorIs(t, s.Remove(-1, 0), skeleton.ErrOutOfRange)
	assert.False(t, s.Has(0, 5))

	_, err := skeleton.FromMatrix([][]int{{0, 1}, {1}})
	assert.ErrorIs(t, err, skeleton.ErrSizeMismatch)
	_, err = skeleton.FromMatrix([][]int{{1, 0}, {0, 0}})
	assert.ErrorIs(t, err, skeleton.ErrSelfLoop)

	_, err = s.SubsetOf(skeleton.New(2))
	assert.ErrorIs(t, err, skeleton.ErrSizeMismatch)
}

func TestFromMatrixSymmetrises(t *testing.T) {
	s, err := skeleton.FromMatrix([][]int{
		{0, 1, 0},
		{0, 0, 0},
		{1, 0, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}}, s.Matrix())
	assert.Equal(t, []int{1, 2}, s.Neighbors(0))
	assert.Equal(t, 1, s.Degree(2))
}

func TestCloneIsIndependent(t *testing.T) {
	s := skeleton.Complete(3)
	c := s.Clone()
	require.NoError(t, c.Remove(0, 1))
	assert.True(t, s.Has(0, 1))

	sub, err := c.SubsetOf(s)
	require.NoError(t, err)
	assert.True(t, sub)
	sup, err := s.SubsetOf(c)
	require.NoError(t, err)
	assert.False(t, sup)
}

func TestWeightsMatrix(t *testing.T) {
	s := skeleton.New(2)
	require.NoError(t, s.Set(0, 1, 0.5))
	w := s.Weights()
	w[0][1] = 9
	assert.Equal(t, 0.5, s.Weight(0, 1), "Weights returns a copy")
}

func ExampleSkeleton_String() {
	s := skeleton.New(3)
	_ = s.Set(0, 1, 1)
	_ = s.Set(1, 2, 1)
	fmt.Print(s)
	// Output:
	// 0 1 0
	// 1 0 1
	// 0 1 0
}
