// SPDX-License-Identifier: MIT
// Package blanket implements Stage 1 of the pipeline: Markov-blanket
// estimation by nodewise regularised regression.
//
// For every variable i the package regresses i on all other variables
// (continuous → one standardised column, categorical → L−1 standardised
// dummies, SNP → one standardised dosage column) with the model family
// chosen by i's type, selects λ/α by EBIC or CV, thresholds the coefficients
// and records the directed estimate
//
//	E[i][j] = mean |β| over j's column group (and over classes).
//
// The two directed estimates of each pair are combined under RuleAND (both
// nonzero) or RuleOR (either nonzero) into a symmetric skeleton whose edge
// weight is the mean of the nonzero directed magnitudes.
//
// Thresholds (applied per nodewise model, d = nonzero coefficients of the
// model, ‖β‖₂ their Euclidean norm over all classes, P = predictor columns,
// n = sample size):
//
//	LW:   τ = √d · ‖β‖₂ · √(log P / n)
//	HW:   τ = d · √(log P / n)
//	none: τ = 0
//
// Nodewise fits run in parallel (errgroup, bounded by Config.Workers); each
// worker writes only its own row of the directed matrix.
package blanket
