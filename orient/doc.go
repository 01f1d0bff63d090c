// SPDX-License-Identifier: MIT
// Package orient turns a refined skeleton into a DAG by greedy hill
// climbing over single-arc moves.
//
// The search keeps its state in an index arena (parent and child lists per
// variable) and scores it with a decomposable BIC:
//
//	score(G) = Σᵥ [ LL(v | pa(v)) − ½·k(v, pa(v))·log n ]
//
// where LL is the weighted log-likelihood of a ridge-stabilised Gaussian or
// multinomial regression of v on its parents and k its parameter count.
// Local scores are cached per (v, parent set).
//
// Moves are restricted to skeleton edges:
//
//	add u→v      edge u–v carries no arc and v does not reach u
//	delete u→v   any arc
//	reverse u→v  u does not reach v once the arc itself is ignored
//
// so the accepted graph is acyclic after every step. The best move with a
// gain above Tolerance is applied; equal gains go to the earlier move in
// (kind, from, to) order with add < delete < reverse. Skeleton edges left
// without an arc are dropped from the output, and arcs whose reversal is
// legal and changes the score by at most Tolerance are reported as
// Reversible.
package orient
