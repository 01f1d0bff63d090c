// Package mixdag learns a directed acyclic graph of dependencies among
// variables measured on mixed scales (continuous, categorical and
// SNP-coded genotypes) from observational samples.
//
// The pipeline runs three sequential stages:
//
//	Stage 1  blanket  nodewise elastic-net regressions (Gaussian for
//	                  continuous targets, multinomial for categorical ones)
//	                  selected by EBIC or cross-validation, thresholded and
//	                  combined with the AND / OR rule into a candidate skeleton
//	Stage 2  refine   conditional-independence permutation tests restricted
//	                  to the candidate edges (PC-style subset search)
//	Stage 3  orient   greedy BIC hill climbing over arcs of the refined
//	                  skeleton with acyclicity enforced on every move
//
// Each stage returns a fresh skeleton; the chain Stage 3 ⊆ Stage 2 ⊆ Stage 1
// always holds.
//
// Quick start:
//
//	ds, _ := dataset.FromSpec(names, columns, "ggggc", []int{1, 1, 1, 1, 2}, []int{0, 0, 0, 0, 0}, nil)
//	res, err := mixdag.Learn(ctx, ds, mixdag.WithNPerm(500), mixdag.WithSeed(7))
//	for _, a := range res.Arcs {
//		fmt.Println(a.From, "→", a.To)
//	}
//
// Subpackages:
//
//	dataset/     variables, weights, design-matrix encoding
//	regression/  Gaussian / multinomial elastic net, EBIC and CV selection
//	blanket/     Stage 1 Markov-blanket estimation
//	citest/      residual permutation test of conditional independence
//	refine/      Stage 2 skeleton refinement
//	orient/      Stage 3 orientation search
//	skeleton/    symmetric adjacency with weights
//	core/, dfs/  named DAG export and topological verification
//	config/      HCL pipeline files
//	builder/     seeded synthetic data from a generating DAG
//
// Errors: configuration problems are diag.ConfigError (errors.Is diag.ErrConfig)
// and are reported before any stage runs; unusable data is diag.DataError.
// Non-fatal conditions (non-converged fits, coarse permutation p-values,
// Stage 2 timeouts) are collected in Result.Warnings.
//
// Progress is logged through the slog logger attached with ctxlog.WithLogger.
package mixdag
