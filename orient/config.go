// SPDX-License-Identifier: MIT

package orient

import "github.com/katalvlaran/mixdag/diag"

const (
	// DefaultMaxIter caps accepted moves.
	DefaultMaxIter = 1000
	// DefaultRidge is the L2 penalty of every local regression.
	DefaultRidge = 1e-6
	// DefaultTolerance is the smallest score gain accepted as an improvement.
	DefaultTolerance = 1e-6
)

// Config parameterises the search. Zero fields take the defaults, so a
// ridge or tolerance of exactly zero cannot be requested; use a tiny positive
// value such as 1e-12 instead.
type Config struct {
	// MaxIter caps accepted moves.
	MaxIter int
	// Ridge is the L2 penalty of the local regressions (> 0 after defaults).
	Ridge float64
	// Tolerance is the smallest gain accepted and the tie width (> 0 after defaults).
	Tolerance float64
}

func (c Config) withDefaults() Config {
	if c.MaxIter == 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Ridge == 0 {
		c.Ridge = DefaultRidge
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}

	return c
}

// Validate reports a negative field as a diag.ConfigError.
func (c Config) Validate() error {
	if c.MaxIter < 0 {
		return diag.Configf("max_iter", "must be non-negative, got %d", c.MaxIter)
	}
	if c.Ridge < 0 {
		return diag.Configf("ridge", "must be non-negative, got %v", c.Ridge)
	}
	if c.Tolerance < 0 {
		return diag.Configf("tolerance", "must be non-negative, got %v", c.Tolerance)
	}

	return nil
}
