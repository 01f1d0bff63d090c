// Package matrix provides the dense linear-algebra kernels used by the
// structure-learning stages: a row-major Dense type, products, transposes and
// weighted least squares through a Cholesky factorization.
//
// What:
//
//   - Dense: cache-friendly row-major storage with bounds-checked At/Set.
//   - Mul, Transpose, MatVec: canonical kernels with a *Dense fast path.
//   - WeightedGram / WeightedCross: XᵀWX and XᵀWY without forming W.
//   - Cholesky / CholeskySolve: SPD factorization and multi-RHS solve.
//   - WeightedLeastSquares: residualisation of a response block on a design,
//     with an optional ridge term and automatic diagonal jitter for
//     rank-deficient designs (dummy-coded conditioning sets).
//
// Determinism:
//
//   - Every kernel uses fixed i→j→k loop orders; identical inputs give
//     bit-identical outputs.
//
// Errors:
//
//   - ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare,
//     ErrNilMatrix, ErrNaNInf, ErrNotPositiveDefinite.
//
// Complexity:
//
//   - WeightedGram: O(n·k²); Cholesky: O(k³); WeightedLeastSquares: O(n·k² + k³ + n·k·m).
package matrix
