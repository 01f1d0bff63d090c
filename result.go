// SPDX-License-Identifier: MIT

package mixdag

import (
	"github.com/katalvlaran/mixdag/blanket"
	"github.com/katalvlaran/mixdag/core"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/orient"
	"github.com/katalvlaran/mixdag/refine"
	"github.com/katalvlaran/mixdag/skeleton"
)

// Arc is a directed edge between two named variables.
type Arc struct {
	From, To string
	// Strength is the BIC lost by deleting the arc.
	Strength float64
	// Reversible arcs are score-equivalent to their reversal; the direction
	// follows the lower-index-first tie-break.
	Reversible bool
}

// Node lists the relatives of one variable in the final DAG, each in
// column order.
type Node struct {
	Neighbors []string
	Parents   []string
	Children  []string
}

// Result is the learned structure plus per-stage diagnostics.
type Result struct {
	// Names are the variable names in column order.
	Names []string
	// Arcs are ordered by (From, To) column index.
	Arcs  []Arc
	Nodes map[string]Node
	// Skeleton is the undirected skeleton of Arcs.
	Skeleton *skeleton.Skeleton
	// Stage1 and Stage2 are the intermediate skeletons.
	Stage1, Stage2 *skeleton.Skeleton
	// Directed[i][j] is the thresholded Stage 1 estimate of j predicting i.
	Directed [][]float64
	// Fits summarises the Stage 1 nodewise models.
	Fits []blanket.NodeFit
	// TestLog holds the Stage 2 search of every candidate edge.
	TestLog []refine.EdgeLog
	// Order is a topological order of the variables.
	Order []string
	// Score is the BIC of the final DAG.
	Score    float64
	Warnings []diag.Warning

	graph *core.Graph
}

// Graph returns the DAG as a directed, weighted core.Graph whose vertices
// follow column order. The graph is shared; use Clone before mutating it.
func (r *Result) Graph() *core.Graph {
	if r.graph == nil {
		g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
		for _, name := range r.Names {
			_ = g.AddVertex(name)
		}
		r.graph = g
	}

	return r.graph
}

// assemble converts the Stage 3 index result into named arcs and nodes.
func assemble(ds *dataset.Dataset, s3 *orient.Result) *Result {
	names := ds.Names()
	res := &Result{
		Names:    names,
		Nodes:    make(map[string]Node, len(names)),
		Skeleton: s3.Skeleton,
		Score:    s3.Score,
		graph:    s3.Graph,
	}

	parents := make([][]int, len(names))
	children := make([][]int, len(names))
	for _, a := range s3.Arcs {
		res.Arcs = append(res.Arcs, Arc{
			From:       names[a.From],
			To:         names[a.To],
			Strength:   a.Strength,
			Reversible: a.Reversible,
		})
		parents[a.To] = append(parents[a.To], a.From)
		children[a.From] = append(children[a.From], a.To)
	}
	for v, name := range names {
		var nb []string
		for _, u := range s3.Skeleton.Neighbors(v) {
			nb = append(nb, names[u])
		}
		res.Nodes[name] = Node{
			Neighbors: nb,
			Parents:   pick(names, parents[v]),
			Children:  pick(names, children[v]),
		}
	}
	for _, v := range s3.Order {
		res.Order = append(res.Order, names[v])
	}

	return res
}

// pick maps indices to names. Arcs arrive in (From, To) order, so both
// parent and child lists are already ascending.
func pick(names []string, idx []int) []string {
	var out []string
	for _, i := range idx {
		out = append(out, names[i])
	}

	return out
}
