// SPDX-License-Identifier: MIT

package orient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/mixdag/core"
	"github.com/katalvlaran/mixdag/ctxlog"
	"github.com/katalvlaran/mixdag/dataset"
	"github.com/katalvlaran/mixdag/dfs"
	"github.com/katalvlaran/mixdag/diag"
	"github.com/katalvlaran/mixdag/skeleton"
)

// Stage is the pipeline stage number reported in warnings.
const Stage = 3

// ErrCyclic indicates the exported graph failed topological verification.
var ErrCyclic = errors.New("orient: search produced a cyclic graph")

// MoveKind enumerates the single-arc moves in tie-break order.
type MoveKind uint8

const (
	// MoveAdd inserts an arc on an unoriented skeleton edge.
	MoveAdd MoveKind = iota
	MoveDelete
	MoveReverse
)

// String returns "add", "delete" or "reverse".
func (k MoveKind) String() string {
	switch k {
	case MoveAdd:
		return "add"
	case MoveDelete:
		return "delete"
	case MoveReverse:
		return "reverse"
	default:
		return fmt.Sprintf("MoveKind(%d)", uint8(k))
	}
}

// Move is one candidate or accepted step of the search.
type Move struct {
	Kind     MoveKind
	From, To int
	Gain     float64
}

// Arc is one directed edge of the result.
type Arc struct {
	From, To int
	// Strength is the score lost by deleting the arc.
	Strength float64
	// Reversible marks arcs whose reversal is acyclic and score-neutral
	// within Tolerance; their direction came from the tie-break order.
	Reversible bool
}

// Result is the Stage 3 output.
type Result struct {
	// Arcs are ordered by (From, To).
	Arcs []Arc
	// Skeleton holds exactly the oriented edges.
	Skeleton *skeleton.Skeleton
	// Graph is the DAG over variable names; vertex metadata carries the
	// variable type and level.
	Graph *core.Graph
	// Order is a topological order of variable indices.
	Order []int
	// Score is the total BIC of the final DAG.
	Score float64
	// Moves lists the accepted moves in order.
	Moves    []Move
	Warnings []diag.Warning
}

// Orient hill-climbs from the empty graph over arcs allowed by sk and
// returns the best DAG found.
// Complexity: O(iter · E · (V + A)) reachability plus one regression per
// distinct (v, parent set).
func Orient(ctx context.Context, ds *dataset.Dataset, sk *skeleton.Skeleton, cfg Config) (*Result, error) {
	log := ctxlog.FromContext(ctx)
	start := time.Now()

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := ds.P()
	if sk.P() != p {
		return nil, fmt.Errorf("%w: skeleton has %d vertices, dataset %d variables", skeleton.ErrSizeMismatch, sk.P(), p)
	}
	if err := ds.CheckSampleSize(); err != nil {
		return nil, err
	}

	sc, err := newScorer(ds, cfg.Ridge)
	if err != nil {
		return nil, err
	}
	s := &search{sk: sk, a: newArena(p), sc: sc, tol: cfg.Tolerance, node: make([]float64, p)}
	for v := 0; v < p; v++ {
		ls, err := sc.local(v, nil)
		if err != nil {
			return nil, err
		}
		s.node[v] = ls
	}

	var warn diag.Collector
	res := &Result{}
	converged := false
	for iter := 0; iter < cfg.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mv, ok, err := s.best()
		if err != nil {
			return nil, err
		}
		if !ok {
			converged = true
			break
		}
		if err := s.apply(mv); err != nil {
			return nil, err
		}
		res.Moves = append(res.Moves, mv)
		log.Debug("move accepted", "kind", mv.Kind.String(),
			"from", ds.Var(mv.From).Name, "to", ds.Var(mv.To).Name, "gain", mv.Gain)
	}
	if !converged {
		warn.Addf(diag.KindConvergence, Stage, nil, "search stopped after %d moves without reaching a local optimum", cfg.MaxIter)
	}
	if sc.unconverged > 0 {
		warn.Addf(diag.KindConvergence, Stage, nil, "%d local regression(s) did not converge", sc.unconverged)
	}

	if err := s.finish(ds, res); err != nil {
		return nil, err
	}
	res.Warnings = warn.Warnings()
	log.Info("stage 3 complete: orientation search",
		"arcs", len(res.Arcs), "moves", len(res.Moves), "score", res.Score,
		"fits", sc.fits, "elapsed", time.Since(start))

	return res, nil
}

// search couples the arena with its cached node scores.
type search struct {
	sk   *skeleton.Skeleton
	a    *arena
	sc   *scorer
	tol  float64
	node []float64
}

func (s *search) score(v int, parents []int) (float64, error) {
	return s.sc.local(v, parents)
}

// gain returns the score change of the move in the current state.
func (s *search) gain(kind MoveKind, u, v int) (float64, error) {
	switch kind {
	case MoveAdd:
		nv, err := s.score(v, with(s.a.parents[v], u))
		return nv - s.node[v], err
	case MoveDelete:
		nv, err := s.score(v, without(s.a.parents[v], u))
		return nv - s.node[v], err
	default:
		nv, err := s.score(v, without(s.a.parents[v], u))
		if err != nil {
			return 0, err
		}
		nu, err := s.score(u, with(s.a.parents[u], v))
		return nv - s.node[v] + nu - s.node[u], err
	}
}

// legal reports whether mv keeps the arena acyclic and inside the skeleton.
func (s *search) legal(kind MoveKind, u, v int) bool {
	switch kind {
	case MoveAdd:
		return s.sk.Has(u, v) && !s.a.hasArc(u, v) && !s.a.hasArc(v, u) && !s.a.reaches(v, u, -1, -1)
	case MoveDelete:
		return s.a.hasArc(u, v)
	default:
		return s.a.hasArc(u, v) && !s.a.reaches(u, v, u, v)
	}
}

// best scans moves in tie-break order and returns the first one with the
// largest gain above tol. Gains within tol of each other are ties.
func (s *search) best() (Move, bool, error) {
	var bm Move
	found := false
	p := s.sk.P()
	for _, kind := range []MoveKind{MoveAdd, MoveDelete, MoveReverse} {
		for u := 0; u < p; u++ {
			for v := 0; v < p; v++ {
				if u == v || !s.legal(kind, u, v) {
					continue
				}
				g, err := s.gain(kind, u, v)
				if err != nil {
					return Move{}, false, err
				}
				if g > s.tol && (!found || g > bm.Gain+s.tol) {
					bm = Move{Kind: kind, From: u, To: v, Gain: g}
					found = true
				}
			}
		}
	}

	return bm, found, nil
}

func (s *search) apply(mv Move) error {
	u, v := mv.From, mv.To
	switch mv.Kind {
	case MoveAdd:
		s.a.addArc(u, v)
	case MoveDelete:
		s.a.deleteArc(u, v)
	case MoveReverse:
		s.a.deleteArc(u, v)
		s.a.addArc(v, u)
	}
	for _, x := range [2]int{u, v} {
		sc, err := s.score(x, s.a.parents[x])
		if err != nil {
			return err
		}
		s.node[x] = sc
	}

	return nil
}

// finish fills arcs, skeleton, graph and order from the final arena.
func (s *search) finish(ds *dataset.Dataset, res *Result) error {
	p := ds.P()
	res.Skeleton = skeleton.New(p)
	for _, sc := range s.node {
		res.Score += sc
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, v := range ds.Vars() {
		meta := map[string]interface{}{"type": v.Type.String(), "levels": v.Levels, "snp": v.SNP}
		if err := g.AddVertexWithMeta(v.Name, meta); err != nil {
			return err
		}
	}

	for _, uv := range s.a.arcs() {
		u, v := uv[0], uv[1]
		drop, err := s.gain(MoveDelete, u, v)
		if err != nil {
			return err
		}
		arc := Arc{From: u, To: v, Strength: -drop}
		if s.legal(MoveReverse, u, v) {
			rev, err := s.gain(MoveReverse, u, v)
			if err != nil {
				return err
			}
			arc.Reversible = rev >= -s.tol
		}
		res.Arcs = append(res.Arcs, arc)
		if err := res.Skeleton.Set(u, v, arc.Strength); err != nil {
			return err
		}
		if _, err := g.AddEdge(ds.Var(u).Name, ds.Var(v).Name, arc.Strength); err != nil {
			return err
		}
	}

	names, err := dfs.TopologicalSort(g)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCyclic, err)
	}
	res.Order = make([]int, len(names))
	for k, name := range names {
		j, _ := ds.Index(name)
		res.Order[k] = j
	}
	res.Graph = g

	return nil
}
