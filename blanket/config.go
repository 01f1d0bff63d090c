// SPDX-License-Identifier: MIT

package blanket

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/mixdag/regression"
)

// Rule combines the two directed estimates of a pair.
type Rule uint8

const (
	// RuleOR keeps an edge when either directed estimate is nonzero.
	RuleOR Rule = iota
	// RuleAND keeps an edge only when both directed estimates are nonzero.
	RuleAND
)

// String returns "OR" or "AND".
func (r Rule) String() string {
	switch r {
	case RuleOR:
		return "OR"
	case RuleAND:
		return "AND"
	default:
		return fmt.Sprintf("Rule(%d)", uint8(r))
	}
}

// ParseRule accepts "AND" or "OR" (case-insensitive).
func ParseRule(s string) (Rule, error) {
	switch strings.ToUpper(s) {
	case "OR":
		return RuleOR, nil
	case "AND":
		return RuleAND, nil
	default:
		return 0, fmt.Errorf("unknown combination rule %q (want AND or OR)", s)
	}
}

// Threshold selects the coefficient cut-off applied to each nodewise model.
type Threshold uint8

const (
	// ThresholdLW is τ = √d·‖β‖₂·√(log P / n) (Loh–Wainwright).
	ThresholdLW Threshold = iota
	// ThresholdHW is τ = d·√(log P / n).
	ThresholdHW
	// ThresholdNone keeps every nonzero coefficient.
	ThresholdNone
)

// String returns "LW", "HW" or "none".
func (t Threshold) String() string {
	switch t {
	case ThresholdLW:
		return "LW"
	case ThresholdHW:
		return "HW"
	case ThresholdNone:
		return "none"
	default:
		return fmt.Sprintf("Threshold(%d)", uint8(t))
	}
}

// ParseThreshold accepts "LW", "HW" or "none" (case-insensitive).
func ParseThreshold(s string) (Threshold, error) {
	switch strings.ToLower(s) {
	case "lw":
		return ThresholdLW, nil
	case "hw":
		return ThresholdHW, nil
	case "none":
		return ThresholdNone, nil
	default:
		return 0, fmt.Errorf("unknown threshold %q (want LW, HW or none)", s)
	}
}

// Config parameterises Stage 1. The zero value is usable: OR rule, LW
// threshold, EBIC selection of λ and α, α ∈ {1}, one worker.
type Config struct {
	// LambdaGamma is the EBIC hyperparameter γ.
	LambdaGamma float64
	Rule        Rule
	LambdaSel   regression.Criterion
	AlphaSel    regression.Criterion
	// AlphaSeq lists candidate elastic-net mixing values.
	AlphaSeq []float64
	// Folds is k for CV selection.
	Folds     int
	Threshold Threshold
	// Seed fixes CV fold assignments (each node derives its own stream).
	Seed uint64
	// Workers bounds concurrent nodewise fits (≤ 0 means 1).
	Workers int
	// Path tunes the regularisation path; zero fields take regression defaults.
	Path regression.PathConfig
}

// tau returns the per-model threshold for d nonzero coefficients with
// Euclidean norm norm, over P predictor columns and n samples.
func (c Config) tau(d, P, n int, norm float64) float64 {
	if P < 2 || n < 1 || d == 0 {
		return 0
	}
	base := math.Sqrt(math.Log(float64(P)) / float64(n))
	switch c.Threshold {
	case ThresholdLW:
		return math.Sqrt(float64(d)) * norm * base
	case ThresholdHW:
		return float64(d) * base
	default:
		return 0
	}
}
