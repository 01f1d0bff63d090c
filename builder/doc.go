// SPDX-License-Identifier: MIT
// Package builder generates reproducible synthetic mixed-type datasets from a
// known generating DAG, for tests, examples and benchmarks of the structure
// learner.
//
// Usage:
//
//	g, nodes, _ := builder.Chain()               // A→B→C→D, C→E (E binary)
//	ds, err := builder.Sample(g, nodes, 200, builder.WithSeed(7))
//
// Determinism: same graph, nodes, n and options ⇒ identical datasets. Every
// node draws from its own stream derived from the seed and its column index.
package builder
