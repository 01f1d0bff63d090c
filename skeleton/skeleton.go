// SPDX-License-Identifier: MIT
// Package skeleton holds the undirected adjacency structure passed between
// pipeline stages: a symmetric p×p binary matrix with optional real weights.
//
// Every mutator writes both (i,j) and (j,i), so a Skeleton is symmetric at all
// times. Stages never mutate their input; they Clone it and return the copy.
//
// Errors:
//
//	ErrOutOfRange  - vertex index outside [0, p).
//	ErrSelfLoop    - i == j; the diagonal is always empty.
//	ErrSizeMismatch - two skeletons (or a matrix) disagree on p.
package skeleton

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange indicates a vertex index outside [0, p).
	ErrOutOfRange = errors.New("skeleton: index out of range")

	// ErrSelfLoop indicates an attempt to set a diagonal entry.
	ErrSelfLoop = errors.New("skeleton: self-loop not allowed")

	// ErrSizeMismatch indicates skeletons of different order.
	ErrSizeMismatch = errors.New("skeleton: size mismatch")
)

// Edge is one undirected edge with I < J.
type Edge struct {
	I, J   int
	Weight float64
}

// Skeleton is a symmetric adjacency over p vertices.
type Skeleton struct {
	p   int
	adj []bool    // row-major p×p
	w   []float64 // row-major p×p; zero where adj is false
}

// New returns an empty skeleton over p vertices.
func New(p int) *Skeleton {
	if p < 0 {
		p = 0
	}

	return &Skeleton{p: p, adj: make([]bool, p*p), w: make([]float64, p*p)}
}

// Complete returns the complete graph over p vertices with unit weights.
func Complete(p int) *Skeleton {
	s := New(p)
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			s.put(i, j, true, 1)
		}
	}

	return s
}

// FromMatrix builds a skeleton from a square 0/1 matrix. Nonzero entries on
// either side of the diagonal create the edge; the diagonal must be zero.
func FromMatrix(m [][]int) (*Skeleton, error) {
	p := len(m)
	s := New(p)
	for i, row := range m {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrSizeMismatch, i, len(row), p)
		}
		for j, x := range row {
			if x == 0 {
				continue
			}
			if i == j {
				return nil, fmt.Errorf("%w: diagonal entry %d", ErrSelfLoop, i)
			}
			s.put(i, j, true, 1)
		}
	}

	return s, nil
}

func (s *Skeleton) check(i, j int) error {
	if i < 0 || j < 0 || i >= s.p || j >= s.p {
		return fmt.Errorf("%w: (%d,%d) with p=%d", ErrOutOfRange, i, j, s.p)
	}
	if i == j {
		return fmt.Errorf("%w: %d", ErrSelfLoop, i)
	}

	return nil
}

func (s *Skeleton) put(i, j int, on bool, w float64) {
	if !on {
		w = 0
	}
	s.adj[i*s.p+j], s.adj[j*s.p+i] = on, on
	s.w[i*s.p+j], s.w[j*s.p+i] = w, w
}

// P returns the vertex count.
func (s *Skeleton) P() int { return s.p }

// Has reports whether edge i–j is present. Out-of-range pairs report false.
func (s *Skeleton) Has(i, j int) bool {
	if s.check(i, j) != nil {
		return false
	}

	return s.adj[i*s.p+j]
}

// Weight returns the weight of edge i–j (zero when absent).
func (s *Skeleton) Weight(i, j int) float64 {
	if !s.Has(i, j) {
		return 0
	}

	return s.w[i*s.p+j]
}

// Set adds edge i–j with weight w (both directions).
func (s *Skeleton) Set(i, j int, w float64) error {
	if err := s.check(i, j); err != nil {
		return err
	}
	s.put(i, j, true, w)

	return nil
}

// Remove deletes edge i–j; removing an absent edge is a no-op.
func (s *Skeleton) Remove(i, j int) error {
	if err := s.check(i, j); err != nil {
		return err
	}
	s.put(i, j, false, 0)

	return nil
}

// Neighbors returns the vertices adjacent to i in ascending order.
// Complexity: O(p).
func (s *Skeleton) Neighbors(i int) []int {
	if i < 0 || i >= s.p {
		return nil
	}
	var out []int
	row := s.adj[i*s.p : (i+1)*s.p]
	for j, on := range row {
		if on {
			out = append(out, j)
		}
	}

	return out
}

// Degree returns the number of neighbours of i.
func (s *Skeleton) Degree(i int) int { return len(s.Neighbors(i)) }

// Edges lists every edge once with I < J, ordered by (I, J).
// Complexity: O(p²).
func (s *Skeleton) Edges() []Edge {
	var out []Edge
	for i := 0; i < s.p; i++ {
		for j := i + 1; j < s.p; j++ {
			if s.adj[i*s.p+j] {
				out = append(out, Edge{I: i, J: j, Weight: s.w[i*s.p+j]})
			}
		}
	}

	return out
}

// Count returns the number of undirected edges.
func (s *Skeleton) Count() int {
	c := 0
	for i := 0; i < s.p; i++ {
		for j := i + 1; j < s.p; j++ {
			if s.adj[i*s.p+j] {
				c++
			}
		}
	}

	return c
}

// Clone returns a deep copy.
func (s *Skeleton) Clone() *Skeleton {
	c := &Skeleton{p: s.p, adj: make([]bool, len(s.adj)), w: make([]float64, len(s.w))}
	copy(c.adj, s.adj)
	copy(c.w, s.w)

	return c
}

// SubsetOf reports whether every edge of s is also in o.
func (s *Skeleton) SubsetOf(o *Skeleton) (bool, error) {
	if s.p != o.p {
		return false, fmt.Errorf("%w: %d vs %d", ErrSizeMismatch, s.p, o.p)
	}
	for k, on := range s.adj {
		if on && !o.adj[k] {
			return false, nil
		}
	}

	return true, nil
}

// Symmetric reports whether adjacency and weights mirror across the diagonal.
func (s *Skeleton) Symmetric() bool {
	for i := 0; i < s.p; i++ {
		if s.adj[i*s.p+i] {
			return false
		}
		for j := i + 1; j < s.p; j++ {
			if s.adj[i*s.p+j] != s.adj[j*s.p+i] || s.w[i*s.p+j] != s.w[j*s.p+i] {
				return false
			}
		}
	}

	return true
}

// Matrix returns the 0/1 adjacency as a fresh p×p matrix.
func (s *Skeleton) Matrix() [][]int {
	out := make([][]int, s.p)
	for i := range out {
		out[i] = make([]int, s.p)
		for j := range out[i] {
			if s.adj[i*s.p+j] {
				out[i][j] = 1
			}
		}
	}

	return out
}

// Weights returns the weight matrix as a fresh p×p matrix.
func (s *Skeleton) Weights() [][]float64 {
	out := make([][]float64, s.p)
	for i := range out {
		out[i] = make([]float64, s.p)
		copy(out[i], s.w[i*s.p:(i+1)*s.p])
	}

	return out
}

// String renders the 0/1 matrix one row per line.
func (s *Skeleton) String() string {
	var b strings.Builder
	for i := 0; i < s.p; i++ {
		for j := 0; j < s.p; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			if s.adj[i*s.p+j] {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
