package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// AddEdge creates an edge from→to, adding missing endpoints.
//
// Errors: ErrEmptyVertexID, ErrBadWeight (weight≠0 on an unweighted graph),
// ErrLoopNotAllowed, ErrMultiEdgeNotAllowed (an edge between the endpoints
// already exists, in either direction for undirected graphs).
// Complexity: O(1) amortised.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if !g.weighted && weight != 0 {
		return "", ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if _, dup := g.out[from][to]; dup {
		return "", ErrMultiEdgeNotAllowed
	}

	eid := "e" + strconv.FormatUint(atomic.AddUint64(&g.nextEdgeID, 1), 10)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Weight: weight, Directed: g.directed}
	link(g.out, from, to, eid)
	if g.directed {
		link(g.in, to, from, eid)
	} else if from != to {
		link(g.out, to, from, eid)
	}

	return eid, nil
}

func link(m map[string]map[string]string, a, b, eid string) {
	if m[a] == nil {
		m[a] = make(map[string]string)
	}
	m[a][b] = eid
}

// RemoveEdge deletes an edge by ID.
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	delete(g.out[e.From], e.To)
	if g.directed {
		delete(g.in[e.To], e.From)
	} else {
		delete(g.out[e.To], e.From)
	}

	return nil
}

// HasEdge reports whether an edge from→to exists (either direction when undirected).
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.out[from][to]

	return ok
}

// GetEdge returns the edge with the given ID.
func (g *Graph) GetEdge(eid string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[eid]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// Edges returns every edge in creation order.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	g.muEdgeAdj.RUnlock()
	sort.Slice(out, func(i, j int) bool { return edgeSeq(out[i].ID) < edgeSeq(out[j].ID) })

	return out
}

func edgeSeq(eid string) uint64 {
	n, _ := strconv.ParseUint(eid[1:], 10, 64)

	return n
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Neighbors returns the edges leaving id (every incident edge when
// undirected), ordered by the other endpoint's insertion index.
// Complexity: O(deg · log deg).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	return g.incident(id, g.out)
}

// InNeighbors returns the edges entering id in a directed graph.
func (g *Graph) InNeighbors(id string) ([]*Edge, error) {
	if !g.directed {
		return g.incident(id, g.out)
	}

	return g.incident(id, g.in)
}

func (g *Graph) incident(id string, idx map[string]map[string]string) ([]*Edge, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	out := make([]*Edge, 0, len(idx[id]))
	for _, eid := range idx[id] {
		out = append(out, g.edges[eid])
	}
	g.muEdgeAdj.RUnlock()

	pos := make(map[string]int, len(out))
	for _, e := range out {
		pos[e.ID] = g.indexOf(otherEnd(e, id))
	}
	sort.Slice(out, func(a, b int) bool { return pos[out[a].ID] < pos[out[b].ID] })

	return out, nil
}

// otherEnd returns the endpoint of e that is not id (id itself for loops).
func otherEnd(e *Edge, id string) string {
	if e.From == id {
		return e.To
	}

	return e.From
}

// NeighborIDs returns the IDs reached by Neighbors(id).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	es, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}

	return ends(es, id), nil
}

// InNeighborIDs returns the IDs of the sources of edges entering id.
func (g *Graph) InNeighborIDs(id string) ([]string, error) {
	es, err := g.InNeighbors(id)
	if err != nil {
		return nil, err
	}

	return ends(es, id), nil
}

func ends(es []*Edge, id string) []string {
	out := make([]string, len(es))
	for k, e := range es {
		out[k] = otherEnd(e, id)
	}

	return out
}
