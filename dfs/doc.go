// Package dfs provides depth-first algorithms on directed core.Graphs:
// topological sorting, cycle extraction and reachability.
//
// All traversals use three-colour marking:
//
//	White – not yet visited
//	Gray  – on the current recursion stack
//	Black – fully explored
//
// A Gray→Gray edge is a back-edge and proves a directed cycle.
//
// Determinism: roots are taken in Graph.Vertices() order (insertion order)
// and neighbours in Graph.Neighbors() order, so equal graphs always produce
// equal orders and equal reported cycles.
//
// Complexity: every routine is O(V + E) time and O(V) memory.
package dfs
