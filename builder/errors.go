// SPDX-License-Identifier: MIT
// Package: mixdag/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with %w.
//   • Sampling never panics; validation panics are confined to option
//     constructors (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewSamples indicates n below dataset.MinSamples.
var ErrTooFewSamples = errors.New("builder: sample size too small")

// ErrMissingNode indicates a graph vertex without a Node declaration, or a
// declaration whose name is not a graph vertex.
var ErrMissingNode = errors.New("builder: node declaration mismatch")

// ErrInvalidNode indicates an impossible node declaration (levels, SNP flag).
var ErrInvalidNode = errors.New("builder: invalid node")

// ErrNotDAG indicates the generating graph is undirected or cyclic.
var ErrNotDAG = errors.New("builder: generating graph is not a DAG")

// builderErrorf wraps err with the method name.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
