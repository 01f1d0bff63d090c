// SPDX-License-Identifier: MIT
// Package matrix: Cholesky factorization and weighted least squares.
//
// Determinism & Policy:
//   - No pivoting; fixed j→k loop order.
//   - WeightedLeastSquares retries with geometric diagonal jitter when the
//     normal equations are rank deficient, so collinear dummy blocks still
//     produce residuals instead of failing.

package matrix

import (
	"errors"
	"math"
)

const (
	opCholesky      = "Cholesky"
	opCholeskySolve = "CholeskySolve"
	opWLS           = "WeightedLeastSquares"
)

const (
	// jitterSeed is the relative diagonal jitter of the first retry.
	jitterSeed = 1e-10
	// jitterGrowth multiplies the jitter on every further retry.
	jitterGrowth = 100.0
	// jitterRetries bounds the number of retries.
	jitterRetries = 6
)

// Cholesky returns the lower-triangular L with A = L·Lᵀ.
// Errors: ErrNilMatrix, ErrNonSquare, ErrNotPositiveDefinite.
// Complexity: O(n³).
func Cholesky(A Matrix) (*Dense, error) {
	if err := ValidateSquare(A); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := toDense(A)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var i, j, k int
	var sum float64
	for j = 0; j < n; j++ {
		sum = a.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= L.data[j*n+k] * L.data[j*n+k]
		}
		if sum <= 0 || math.IsNaN(sum) {
			return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
		}
		ljj := math.Sqrt(sum)
		L.data[j*n+j] = ljj
		for i = j + 1; i < n; i++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= L.data[i*n+k] * L.data[j*n+k]
			}
			L.data[i*n+j] = sum / ljj
		}
	}

	return L, nil
}

// CholeskySolve solves (L·Lᵀ)·X = B for X given the factor from Cholesky.
// Complexity: O(n²·m) for B with m columns.
func CholeskySolve(L, B Matrix) (*Dense, error) {
	if err := ValidateSquare(L); err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	if err := ValidateSameRows(L, B); err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	l, err := toDense(L)
	if err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	b, err := toDense(B)
	if err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	n, m := l.r, b.c
	X, err := NewDense(n, m)
	if err != nil {
		return nil, matrixErrorf(opCholeskySolve, err)
	}
	y := make([]float64, n)

	var i, k, col int
	var sum float64
	for col = 0; col < m; col++ {
		// Forward substitution: L·y = b
		for i = 0; i < n; i++ {
			sum = b.data[i*m+col]
			for k = 0; k < i; k++ {
				sum -= l.data[i*n+k] * y[k]
			}
			y[i] = sum / l.data[i*n+i]
		}
		// Backward substitution: Lᵀ·x = y
		for i = n - 1; i >= 0; i-- {
			sum = y[i]
			for k = i + 1; k < n; k++ {
				sum -= l.data[k*n+i] * X.data[k*m+col]
			}
			X.data[i*m+col] = sum / l.data[i*n+i]
		}
	}

	return X, nil
}

// WeightedLeastSquares fits B = argmin Σ wᵢ‖Yᵢ − XᵢB‖² + ridge‖B‖² and returns
// the coefficients (k×m) and the residual block Y − XB (n×m).
// w == nil means unit weights. ridge must be ≥ 0.
//
// Errors: ErrDimensionMismatch, ErrNotPositiveDefinite when even the largest
// jitter cannot make the normal equations positive definite.
// Complexity: O(n·k² + k³ + n·k·m).
func WeightedLeastSquares(X, Y Matrix, w []float64, ridge float64) (*Dense, *Dense, error) {
	G, err := WeightedGram(X, w)
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}
	C, err := WeightedCross(X, Y, w)
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}
	k := G.r
	if ridge < 0 || math.IsNaN(ridge) {
		ridge = 0
	}

	var meanDiag float64
	for i := 0; i < k; i++ {
		meanDiag += G.data[i*k+i]
	}
	meanDiag /= float64(k)
	if meanDiag <= 0 {
		meanDiag = 1
	}

	var L *Dense
	jitter := 0.0
	for attempt := 0; attempt <= jitterRetries; attempt++ {
		A := G.Clone().(*Dense)
		for i := 0; i < k; i++ {
			A.data[i*k+i] += ridge + jitter
		}
		L, err = Cholesky(A)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrNotPositiveDefinite) {
			return nil, nil, matrixErrorf(opWLS, err)
		}
		if jitter == 0 {
			jitter = jitterSeed * meanDiag
		} else {
			jitter *= jitterGrowth
		}
	}
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}

	B, err := CholeskySolve(L, C)
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}
	fitted, err := Mul(X, B)
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}
	yd, err := toDense(Y)
	if err != nil {
		return nil, nil, matrixErrorf(opWLS, err)
	}
	R := &Dense{r: yd.r, c: yd.c, data: make([]float64, len(yd.data))}
	for i := range yd.data {
		R.data[i] = yd.data[i] - fitted.data[i]
	}

	return B, R, nil
}
