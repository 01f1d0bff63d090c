package dfs

import "errors"

// Vertex visitation states.
const (
	White = iota // not visited
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrUndirected is returned when an algorithm needs a directed graph.
	ErrUndirected = errors.New("dfs: graph is undirected")

	// ErrCycleDetected indicates a directed cycle.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve neighbours from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")

	// ErrVertexNotFound indicates an unknown start or target vertex.
	ErrVertexNotFound = errors.New("dfs: vertex not found")
)
