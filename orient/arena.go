// SPDX-License-Identifier: MIT

package orient

import "sort"

// arena is the mutable DAG under search, addressed by variable index.
type arena struct {
	parents  [][]int
	children [][]int
}

func newArena(p int) *arena {
	return &arena{parents: make([][]int, p), children: make([][]int, p)}
}

func (a *arena) hasArc(u, v int) bool { return contains(a.parents[v], u) }

func (a *arena) addArc(u, v int) {
	a.parents[v] = insert(a.parents[v], u)
	a.children[u] = insert(a.children[u], v)
}

func (a *arena) deleteArc(u, v int) {
	a.parents[v] = remove(a.parents[v], u)
	a.children[u] = remove(a.children[u], v)
}

// reaches reports whether a directed path from → to exists, ignoring the
// arc skipU→skipV when skipU ≥ 0.
// Complexity: O(V + A).
func (a *arena) reaches(from, to, skipU, skipV int) bool {
	seen := make([]bool, len(a.parents))
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range a.children[x] {
			if x == skipU && c == skipV {
				continue
			}
			if c == to {
				return true
			}
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}

	return false
}

// arcs lists every arc ordered by (from, to).
func (a *arena) arcs() [][2]int {
	var out [][2]int
	for u, cs := range a.children {
		for _, v := range cs {
			out = append(out, [2]int{u, v})
		}
	}

	return out
}

func contains(s []int, x int) bool {
	k := sort.SearchInts(s, x)
	return k < len(s) && s[k] == x
}

// insert returns s with x added, keeping s sorted.
func insert(s []int, x int) []int {
	k := sort.SearchInts(s, x)
	if k < len(s) && s[k] == x {
		return s
	}
	s = append(s, 0)
	copy(s[k+1:], s[k:])
	s[k] = x

	return s
}

func remove(s []int, x int) []int {
	k := sort.SearchInts(s, x)
	if k == len(s) || s[k] != x {
		return s
	}

	return append(s[:k], s[k+1:]...)
}

// with returns a sorted copy of s plus x.
func with(s []int, x int) []int {
	out := make([]int, len(s), len(s)+1)
	copy(out, s)

	return insert(out, x)
}

// without returns a copy of s minus x.
func without(s []int, x int) []int {
	out := make([]int, 0, len(s))
	for _, y := range s {
		if y != x {
			out = append(out, y)
		}
	}

	return out
}
