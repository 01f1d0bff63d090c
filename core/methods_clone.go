package core

// CloneEmpty returns a graph with the same flags and vertices but no edges.
// Vertex metadata maps are shared.
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	c := NewGraph(WithDirected(g.directed))
	c.weighted, c.allowLoops = g.weighted, g.allowLoops
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	for _, id := range g.order {
		v := g.vertices[id]
		c.vertices[id] = &Vertex{ID: id, Metadata: v.Metadata, index: v.index}
	}
	c.order = append([]string(nil), g.order...)

	return c
}

// Clone returns a deep copy of vertices and edges; edge IDs are preserved.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	c := g.CloneEmpty()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	c.nextEdgeID = g.nextEdgeID
	for eid, e := range g.edges {
		cp := *e
		c.edges[eid] = &cp
	}
	for a, m := range g.out {
		for b, eid := range m {
			link(c.out, a, b, eid)
		}
	}
	for a, m := range g.in {
		for b, eid := range m {
			link(c.in, a, b, eid)
		}
	}

	return c
}
