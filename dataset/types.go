// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/mixdag/diag"
)

// VariableType tags a column as continuous or categorical.
type VariableType uint8

const (
	// Continuous variables are modelled with Gaussian regressions ('g').
	Continuous VariableType = iota
	// Categorical variables are modelled with multinomial regressions ('c').
	Categorical
)

// String returns the single-letter tag used by the flat interface.
func (t VariableType) String() string {
	switch t {
	case Continuous:
		return "g"
	case Categorical:
		return "c"
	default:
		return fmt.Sprintf("VariableType(%d)", uint8(t))
	}
}

// ParseType converts 'g' / 'c' into a VariableType.
func ParseType(r rune) (VariableType, error) {
	switch r {
	case 'g':
		return Continuous, nil
	case 'c':
		return Categorical, nil
	default:
		return 0, fmt.Errorf("unknown variable type %q (want 'g' or 'c')", r)
	}
}

// Variable describes one column.
type Variable struct {
	// Name identifies the variable in arcs and node maps.
	Name string
	// Type is Continuous or Categorical.
	Type VariableType
	// Levels is the declared category count (1 for continuous).
	Levels int
	// SNP marks a genotype-coded categorical variable.
	SNP bool
}

// validate checks the static metadata of v at column j.
func (v Variable) validate(j int) error {
	field := fmt.Sprintf("variable[%d]", j)
	if v.Name == "" {
		return diag.Configf(field, "empty name")
	}
	switch v.Type {
	case Continuous:
		if v.Levels != 1 {
			return diag.Configf(field, "continuous variable %q must have level 1, got %d", v.Name, v.Levels)
		}
		if v.SNP {
			return diag.Configf(field, "SNP flag requires a categorical variable, %q is continuous", v.Name)
		}
	case Categorical:
		if v.Levels < 2 {
			return diag.Configf(field, "categorical variable %q must have level >= 2, got %d", v.Name, v.Levels)
		}
	default:
		return diag.Configf(field, "invalid type %d for %q", uint8(v.Type), v.Name)
	}

	return nil
}
