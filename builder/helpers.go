// SPDX-License-Identifier: MIT
// Package: mixdag/builder
//
// helpers.go: generating-graph helpers and numeric utilities.

package builder

import (
	"math"

	"github.com/katalvlaran/mixdag/core"
)

// logitClamp bounds exponents so class weights stay finite.
const logitClamp = 50.0

func expClamp(x float64) float64 {
	return math.Exp(math.Max(-logitClamp, math.Min(logitClamp, x)))
}

// Arc is one directed generating edge with its effect size (0 ⇒ default).
type Arc struct {
	From, To string
	Effect   float64
}

// DAG builds a weighted directed core.Graph with vertices in the order of
// names, then adds arcs in order. Errors from core (unknown names are
// added, duplicates rejected) are wrapped with the method name.
// Complexity: O(V + E).
func DAG(names []string, arcs ...Arc) (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, id := range names {
		if err := g.AddVertex(id); err != nil {
			return nil, builderErrorf("DAG", err)
		}
	}
	for _, a := range arcs {
		if _, err := g.AddEdge(a.From, a.To, a.Effect); err != nil {
			return nil, builderErrorf("DAG", err)
		}
	}

	return g, nil
}

// Chain returns the five-node generating scenario A→B→C→D, C→E where E is
// binary categorical and the rest are continuous.
func Chain() (*core.Graph, []Node, error) {
	nodes := []Node{Continuous("A"), Continuous("B"), Continuous("C"), Continuous("D"), Categorical("E", 2)}
	g, err := DAG([]string{"A", "B", "C", "D", "E"},
		Arc{From: "A", To: "B", Effect: 0.8},
		Arc{From: "B", To: "C", Effect: 0.8},
		Arc{From: "C", To: "D", Effect: 0.8},
		Arc{From: "C", To: "E", Effect: 1.0},
	)

	return g, nodes, err
}
