package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/matrix"
)

// TestNewDense_InvalidDimensions verifies the constructor rejects empty shapes.
func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestDense_AtSetBounds checks bounds and finite-only policy on Set.
func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, 3.5))
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

// TestFromColumns_Layout verifies column-major input lands row-major.
func TestFromColumns_Layout(t *testing.T) {
	m, err := matrix.FromColumns([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, "[1, 4]\n[2, 5]\n[3, 6]\n", m.String())

	col, err := m.Col(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, col)

	_, err = matrix.FromColumns([][]float64{{1, 2}, {1}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestClone_Independent ensures Clone deep-copies storage.
func TestClone_Independent(t *testing.T) {
	m, err := matrix.NewDenseFrom(1, 2, []float64{1, 2})
	require.NoError(t, err)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

// TestNewDenseFrom_Rejects checks shape and NaN validation of the copy ctor.
func TestNewDenseFrom_Rejects(t *testing.T) {
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}
