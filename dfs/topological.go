package dfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mixdag/core"
)

// TopoOption configures optional behaviour for TopologicalSort.
type TopoOption func(*topoOptions)

type topoOptions struct {
	ctx context.Context
}

// WithCancelContext sets a cancellation context. A nil context has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// topoSorter holds traversal state for one TopologicalSort call.
type topoSorter struct {
	graph *core.Graph
	ctx   context.Context
	state map[string]int
	order []string
	stack []string
	cycle []string
}

// TopologicalSort returns an ordering of all vertices of the directed graph
// g in which every edge u→v has u before v. A cycle yields an error wrapping
// ErrCycleDetected that names the cycle.
// Complexity: O(V + E).
func TopologicalSort(g *core.Graph, options ...TopoOption) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, fmt.Errorf("dfs: TopologicalSort: %w", ErrUndirected)
	}
	opts := topoOptions{ctx: context.Background()}
	for _, opt := range options {
		opt(&opts)
	}

	verts := g.Vertices()
	t := &topoSorter{
		graph: g,
		ctx:   opts.ctx,
		state: make(map[string]int, len(verts)),
		order: make([]string, 0, len(verts)),
	}
	for _, v := range verts {
		if t.state[v] != White {
			continue
		}
		if err := t.visit(v); err != nil {
			return nil, err
		}
	}
	// Reverse post-order.
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

func (t *topoSorter) visit(id string) error {
	select {
	case <-t.ctx.Done():
		return t.ctx.Err()
	default:
	}
	t.state[id] = Gray
	t.stack = append(t.stack, id)

	next, err := t.graph.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, nb := range next {
		switch t.state[nb] {
		case Gray:
			return fmt.Errorf("%w: %v", ErrCycleDetected, closeCycle(t.stack, nb))
		case White:
			if err = t.visit(nb); err != nil {
				return err
			}
		}
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}

// closeCycle returns the stack segment from start, closed back to start.
func closeCycle(stack []string, start string) []string {
	for i, v := range stack {
		if v == start {
			out := append([]string(nil), stack[i:]...)
			return append(out, start)
		}
	}

	return []string{start}
}
