// SPDX-License-Identifier: MIT
// Package citest implements the conditional-independence test used to
// refine the skeleton: a residual-based dependence statistic with a seeded
// permutation null.
//
// For a pair (i, j) and conditioning set S:
//
//  1. Encode i and j (continuous → value, categorical → L−1 dummies,
//     SNP → dosage) into blocks Yᵢ, Yⱼ.
//  2. Regress both blocks on [1, standardised encoding of S] by weighted
//     least squares and keep the residuals Rᵢ, Rⱼ.
//  3. With ũ = √w·Rᵢ,a and ṽ = √w·Rⱼ,b the statistic is
//
//     T = Σₐ Σ_b ⟨ũ, ṽ⟩² / (‖ũ‖²‖ṽ‖²)
//
//     i.e. the sum of squared weighted partial correlations; for two
//     continuous variables it is the squared partial correlation.
//  4. The null permutes the rows of the weighted residual block of j
//     nperm times; p = (1 + #{T* ≥ T}) / (nperm + 1).
//
// The p-value therefore lies in [1/(nperm+1), 1].
package citest
