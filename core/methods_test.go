package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mixdag/core"
)

func TestAddVertex_InsertionOrder(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"C", "A", "B", "A"} {
		require.NoError(t, g.AddVertex(id))
	}
	assert.Equal(t, []string{"C", "A", "B"}, g.Vertices())
	assert.Equal(t, 3, g.VertexCount())
	assert.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
}

func TestVertexMetadata(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertexWithMeta("E", map[string]interface{}{"type": "c"}))
	require.NoError(t, g.AddVertex("E"), "re-adding keeps metadata")
	v, err := g.Vertex("E")
	require.NoError(t, err)
	assert.Equal(t, "c", v.Metadata["type"])
	_, err = g.Vertex("nope")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestAddEdge_Directed(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, g.AddVertex(id))
	}
	e1, err := g.AddEdge("A", "C", 0.5)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "C", 1)
	require.NoError(t, err)

	assert.True(t, g.HasEdge("A", "C"))
	assert.False(t, g.HasEdge("C", "A"))
	_, err = g.AddEdge("A", "C", 0)
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)

	parents, err := g.InNeighborIDs("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, parents)
	children, err := g.NeighborIDs("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, children)

	in, out, und, err := g.Degree("C")
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 0, 0}, [3]int{in, out, und})

	e, err := g.GetEdge(e1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, e.Weight)
	assert.True(t, e.Directed)

	require.NoError(t, g.RemoveEdge(e1))
	assert.False(t, g.HasEdge("A", "C"))
	assert.ErrorIs(t, g.RemoveEdge(e1), core.ErrEdgeNotFound)
	parents, err = g.InNeighborIDs("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, parents)
}

func TestAddEdge_Undirected(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", 0)
	require.NoError(t, err)
	assert.True(t, g.HasEdge("B", "A"))
	_, err = g.AddEdge("B", "A", 0)
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
	_, err = g.AddEdge("A", "A", 0)
	assert.ErrorIs(t, err, core.ErrLoopNotAllowed)
	_, err = g.AddEdge("A", "C", 2)
	assert.ErrorIs(t, err, core.ErrBadWeight)
	_, _, und, err := g.Degree("B")
	require.NoError(t, err)
	assert.Equal(t, 1, und)
}

func TestEdges_CreationOrder(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	pairs := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "d"}, {"d", "e"}, {"b", "e"}, {"a", "e"}, {"c", "e"}, {"a", "c"}, {"b", "d"}, {"e", "f"}}
	for _, p := range pairs {
		_, err := g.AddEdge(p[0], p[1], 0)
		require.NoError(t, err)
	}
	es := g.Edges()
	require.Len(t, es, len(pairs))
	for k, e := range es {
		assert.Equal(t, pairs[k][0], e.From)
		assert.Equal(t, pairs[k][1], e.To)
	}
	assert.Equal(t, len(pairs), g.EdgeCount())
}

func TestClone_Independent(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	_, err := g.AddEdge("A", "B", 0)
	require.NoError(t, err)
	c := g.Clone()
	_, err = c.AddEdge("B", "C", 0)
	require.NoError(t, err)
	assert.False(t, g.HasVertex("C"))
	assert.True(t, c.HasEdge("A", "B"))
	assert.True(t, c.Directed())

	empty := g.CloneEmpty()
	assert.Equal(t, []string{"A", "B"}, empty.Vertices())
	assert.Equal(t, 0, empty.EdgeCount())
}

func TestNeighbors_UnknownVertex(t *testing.T) {
	g := core.NewGraph()
	_, err := g.Neighbors("x")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
	_, _, _, err = g.Degree("x")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}
