// Package core provides a thread-safe in-memory Graph of named vertices used
// to export learned structures: the final DAG over variables, and the
// generating DAGs fed to the synthetic data builder.
//
// Configuration Options (GraphOption):
//
//	– WithDirected(defaultDirected bool)
//	    Directed graphs store only “from→to”; undirected graphs mirror edges.
//	– WithWeighted()
//	    Permits non-zero weights; otherwise AddEdge(weight≠0) → ErrBadWeight.
//	– WithLoops()
//	    Permits self-loops; otherwise AddEdge(v,v) → ErrLoopNotAllowed.
//
// Parallel edges are never allowed: a second AddEdge(from,to) returns
// ErrMultiEdgeNotAllowed.
//
// Determinism:
//
//	Vertices() returns vertices in insertion order, so a graph built from
//	dataset columns lists variables in column order. Edges() returns edges
//	in creation order ("e1", "e2", …). Neighbors/InNeighbors are sorted by
//	the other endpoint's insertion index.
//
// Concurrency:
//
//	muVert guards the vertex catalogue; muEdgeAdj guards edges and both
//	adjacency indexes. Every exported method is safe for concurrent use.
package core
