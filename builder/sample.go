// SPDX-License-Identifier: MIT
// Package: mixdag/builder
//
// sample.go: ancestral sampling of mixed-type data from a generating DAG.
//
// Model (per node v in topological order, parents pa(v)):
//
//	η_v = Σ_{u ∈ pa(v)} β_uv · s(x_u)
//
//	continuous:  x_v = η_v + N(0, σ²)
//	categorical: P(x_v = k) ∝ exp(sharp · c_k · η_v),  c_k = 2k/(L−1) − 1
//
// s(x) is the raw value for continuous parents and c_code for categorical
// parents, so every parent contributes on a comparable [-1,1]-ish scale.
// β_uv is the edge weight (or the default effect for zero weights).
// SNP nodes are categorical with dosage codes 0..L-1.

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/mixdag/core"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/dfs"
	"github.com/katalvlaran/mixdag/rng"
)

// MethodSample names Sample in wrapped errors.
const MethodSample = "Sample"

// Node declares how one vertex of the generating DAG is observed.
type Node struct {
	Name   string
	Type   dataset.VariableType
	Levels int
	SNP    bool
}

// Continuous declares a continuous node.
func Continuous(name string) Node {
	return Node{Name: name, Type: dataset.Continuous, Levels: 1}
}

// Categorical declares a categorical node with the given number of levels.
func Categorical(name string, levels int) Node {
	return Node{Name: name, Type: dataset.Categorical, Levels: levels}
}

// SNP declares a genotype node with dosage codes 0, 1, 2.
func SNP(name string) Node {
	return Node{Name: name, Type: dataset.Categorical, Levels: 3, SNP: true}
}

// Sample draws n rows from the directed acyclic graph g. nodes fixes the
// column order of the returned dataset and must name every vertex of g.
// Each node draws from its own seeded stream, so adding a node does not
// perturb the others.
// Complexity: O(n · (V + E)).
func Sample(g *core.Graph, nodes []Node, n int, opts ...Option) (*dataset.Dataset, error) {
	cfg := newSampleConfig(opts...)
	if n < dataset.MinSamples {
		return nil, builderErrorf(MethodSample, fmt.Errorf("%w: n=%d", ErrTooFewSamples, n))
	}
	if g == nil || !g.Directed() {
		return nil, builderErrorf(MethodSample, ErrNotDAG)
	}
	order, err := dfs.TopologicalSort(g)
	if err != nil {
		return nil, builderErrorf(MethodSample, fmt.Errorf("%w: %v", ErrNotDAG, err))
	}

	col := make(map[string]int, len(nodes))
	vars := make([]dataset.Variable, len(nodes))
	for j, nd := range nodes {
		if !g.HasVertex(nd.Name) {
			return nil, builderErrorf(MethodSample, fmt.Errorf("%w: %q is not a graph vertex", ErrMissingNode, nd.Name))
		}
		if nd.Type == dataset.Categorical && nd.Levels < 2 || nd.Type == dataset.Continuous && (nd.Levels != 1 || nd.SNP) {
			return nil, builderErrorf(MethodSample, fmt.Errorf("%w: %q", ErrInvalidNode, nd.Name))
		}
		col[nd.Name] = j
		vars[j] = dataset.Variable{Name: nd.Name, Type: nd.Type, Levels: nd.Levels, SNP: nd.SNP}
	}
	if len(col) != g.VertexCount() {
		return nil, builderErrorf(MethodSample, fmt.Errorf("%w: %d nodes for %d vertices", ErrMissingNode, len(col), g.VertexCount()))
	}

	data := make([][]float64, len(nodes))
	for _, id := range order {
		j := col[id]
		nd := nodes[j]
		parents, err := g.InNeighbors(id)
		if err != nil {
			return nil, builderErrorf(MethodSample, err)
		}

		eta := make([]float64, n)
		for _, e := range parents {
			beta := e.Weight
			if beta == 0 {
				beta = cfg.effect
			}
			pj := col[e.From]
			for i := range eta {
				eta[i] += beta * score(nodes[pj], data[pj][i])
			}
		}

		src := rng.Stream(cfg.seed, uint64(j)+1)
		x := make([]float64, n)
		if nd.Type == dataset.Continuous {
			noise := distuv.Normal{Mu: 0, Sigma: cfg.noise, Src: src}
			for i := range x {
				x[i] = eta[i]
				if cfg.noise > 0 {
					x[i] += noise.Rand()
				}
			}
		} else {
			w := make([]float64, nd.Levels)
			for i := range x {
				for k := range w {
					w[k] = expClamp(cfg.sharp * classScore(k, nd.Levels) * eta[i])
				}
				x[i] = distuv.NewCategorical(w, src).Rand()
			}
		}
		data[j] = x
	}

	return dataset.New(data, vars, dataset.WithWeights(cfg.w))
}

// score maps a parent value onto the additive scale.
func score(nd Node, x float64) float64 {
	if nd.Type == dataset.Continuous {
		return x
	}

	return classScore(int(x), nd.Levels)
}

// classScore spreads codes 0..L-1 evenly over [-1, 1].
func classScore(k, levels int) float64 {
	return 2*float64(k)/float64(levels-1) - 1
}
