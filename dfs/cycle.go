package dfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mixdag/core"
)

// FindCycle returns one directed cycle of g as a closed vertex sequence
// [v0, v1, …, v0], or nil when g is acyclic.
// Complexity: O(V + E).
func FindCycle(g *core.Graph) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, fmt.Errorf("dfs: FindCycle: %w", ErrUndirected)
	}
	t := &topoSorter{graph: g, state: make(map[string]int)}
	for _, v := range g.Vertices() {
		if t.state[v] != White {
			continue
		}
		err := t.visitCycle(v)
		if errors.Is(err, ErrCycleDetected) {
			return t.cycle, nil
		}
		if err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func (t *topoSorter) visitCycle(id string) error {
	t.state[id] = Gray
	t.stack = append(t.stack, id)
	next, err := t.graph.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, nb := range next {
		switch t.state[nb] {
		case Gray:
			t.cycle = closeCycle(t.stack, nb)
			return ErrCycleDetected
		case White:
			if err = t.visitCycle(nb); err != nil {
				return err
			}
		}
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.state[id] = Black

	return nil
}

// Reachable reports whether a directed path from → to exists (a vertex
// always reaches itself).
// Complexity: O(V + E).
func Reachable(g *core.Graph, from, to string) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return false, ErrVertexNotFound
	}
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == to {
			return true, nil
		}
		next, err := g.NeighborIDs(v)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrNeighborFetch, err)
		}
		for _, nb := range next {
			if !seen[nb] {
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
	}

	return false, nil
}
