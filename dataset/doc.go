// Package dataset holds the immutable mixed-type sample matrix consumed by
// every pipeline stage, together with its per-variable metadata and the
// design-matrix encodings shared by the regression and testing code.
//
// Encodings:
//
//   - Continuous ('g'): one numeric column.
//   - Categorical ('c'): k-1 treatment dummies over the observed categories
//     (the lowest observed value is the reference).
//   - SNP-coded categorical: one additive dosage column (the raw code), so a
//     genotype enters as a single predictor instead of a dummy block.
//
// Observed categorical values are mapped to codes 0..k-1 in ascending order.
// Weights are rescaled to sum to n so that likelihoods keep their scale.
package dataset
