// SPDX-License-Identifier: MIT
// Package regression fits the per-variable models used by every pipeline
// stage: penalised Gaussian regression for continuous targets and penalised
// multinomial regression for categorical targets.
//
// Both families share one weighted elastic-net coordinate-descent kernel:
//
//	minimise  (1/2W)·Σ vᵢ(zᵢ − b₀ − xᵢβ)²  +  λ·(α‖β‖₁ + (1−α)/2·‖β‖²)
//
// where W is the total sample weight. Gaussian fits solve it once with
// v = w and z = y; multinomial fits solve it per class inside an IRLS loop
// with working weights wᵢ·pᵢ(1−pᵢ).
//
// A regularisation path of NLambda geometric values from λmax downward is
// fitted with warm starts, and a single λ (and α from AlphaSeq) is picked
// by EBIC or k-fold cross-validation (see Select).
//
// Dispatch on the target type goes through ForVariable, so callers never
// branch on type strings:
//
//	m := regression.ForVariable(ds.Var(j))
//	fit, err := regression.Select(m, X, y, ds.Weights(), cfg)
package regression
