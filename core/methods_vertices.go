package core

// AddVertex inserts a vertex; adding an existing ID is a no-op.
// Complexity: O(1) amortised.
func (g *Graph) AddVertex(id string) error {
	return g.AddVertexWithMeta(id, nil)
}

// AddVertexWithMeta inserts a vertex carrying metadata. For an existing
// vertex, non-nil metadata replaces the old map.
func (g *Graph) AddVertexWithMeta(id string, meta map[string]interface{}) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()
	if v, ok := g.vertices[id]; ok {
		if meta != nil {
			v.Metadata = meta
		}
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Metadata: meta, index: len(g.order)}
	g.order = append(g.order, id)

	return nil
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id string) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id string) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return v, nil
}

// Vertices returns all vertex IDs in insertion order.
// Complexity: O(V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.order)
}

// indexOf returns the insertion index of id (−1 when absent).
func (g *Graph) indexOf(id string) int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	if v, ok := g.vertices[id]; ok {
		return v.index
	}

	return -1
}

// Degree returns in-, out- and undirected degree of id.
func (g *Graph) Degree(id string) (in, out, undirected int, err error) {
	if !g.HasVertex(id) {
		return 0, 0, 0, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	if !g.directed {
		return 0, 0, len(g.out[id]), nil
	}

	return len(g.in[id]), len(g.out[id]), 0, nil
}
