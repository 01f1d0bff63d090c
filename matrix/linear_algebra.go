// SPDX-License-Identifier: MIT
// Package matrix: canonical products used by the regression and residual kernels.
//
// Notes:
//   - Every kernel validates through validators.go and wraps with an op tag.
//   - *Dense operands hit a flat-slice fast path; other Matrix values use At/Set.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opGram      = "WeightedGram"
	opCross     = "WeightedCross"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m as *Dense, copying through At when m is another implementation.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Mul returns the product a×b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c); i→k→j order keeps the inner loop on contiguous rows.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(ad.r, bd.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	var aik float64
	for i = 0; i < ad.r; i++ {
		rowOut := out.data[i*out.c : (i+1)*out.c]
		for k = 0; k < ad.c; k++ {
			aik = ad.data[i*ad.c+k]
			if aik == 0 {
				continue
			}
			rowB := bd.data[k*bd.c : (k+1)*bd.c]
			for j = 0; j < bd.c; j++ {
				rowOut[j] += aik * rowB[j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			out.data[j*out.c+i] = d.data[i*d.c+j]
		}
	}

	return out, nil
}

// MatVec returns y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	var i, j, base int
	var sum float64
	for i = 0; i < d.r; i++ {
		base = i * d.c
		sum = 0
		for j = 0; j < d.c; j++ {
			sum += d.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// WeightedGram returns G = XᵀWX with W = diag(w); w == nil means unit weights.
// Only the upper triangle is accumulated, then mirrored.
// Complexity: O(n*k²).
func WeightedGram(X Matrix, w []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	if w != nil {
		if err := ValidateVecLen(w, X.Rows()); err != nil {
			return nil, matrixErrorf(opGram, err)
		}
	}
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	k := d.c
	G, err := NewDense(k, k)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}

	var i, a, b int
	var wi, xa float64
	for i = 0; i < d.r; i++ {
		wi = 1
		if w != nil {
			wi = w[i]
		}
		if wi == 0 {
			continue
		}
		row := d.data[i*k : (i+1)*k]
		for a = 0; a < k; a++ {
			xa = wi * row[a]
			for b = a; b < k; b++ {
				G.data[a*k+b] += xa * row[b]
			}
		}
	}
	for a = 0; a < k; a++ {
		for b = a + 1; b < k; b++ {
			G.data[b*k+a] = G.data[a*k+b]
		}
	}

	return G, nil
}

// WeightedCross returns C = XᵀWY (k×m) for X (n×k) and Y (n×m).
// Complexity: O(n*k*m).
func WeightedCross(X, Y Matrix, w []float64) (*Dense, error) {
	if err := ValidateSameRows(X, Y); err != nil {
		return nil, matrixErrorf(opCross, err)
	}
	if w != nil {
		if err := ValidateVecLen(w, X.Rows()); err != nil {
			return nil, matrixErrorf(opCross, err)
		}
	}
	xd, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opCross, err)
	}
	yd, err := toDense(Y)
	if err != nil {
		return nil, matrixErrorf(opCross, err)
	}
	C, err := NewDense(xd.c, yd.c)
	if err != nil {
		return nil, matrixErrorf(opCross, err)
	}

	var i, a, b int
	var wi, xa float64
	for i = 0; i < xd.r; i++ {
		wi = 1
		if w != nil {
			wi = w[i]
		}
		if wi == 0 {
			continue
		}
		xrow := xd.data[i*xd.c : (i+1)*xd.c]
		yrow := yd.data[i*yd.c : (i+1)*yd.c]
		for a = 0; a < xd.c; a++ {
			xa = wi * xrow[a]
			for b = 0; b < yd.c; b++ {
				C.data[a*yd.c+b] += xa * yrow[b]
			}
		}
	}

	return C, nil
}
