// SPDX-License-Identifier: MIT

package refine

import (
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/mixdag/diag"
)

// DefaultMaxCondSize bounds the conditioning sets searched per edge.
const DefaultMaxCondSize = 3

// Pool selects which variables may enter an edge's conditioning sets.
type Pool uint8

const (
	// PoolUnion conditions on adj(i) ∪ adj(j) minus {i, j}.
	PoolUnion Pool = iota
	// PoolCommon conditions on adj(i) ∩ adj(j).
	PoolCommon
)

// String returns "union" or "common".
func (p Pool) String() string {
	switch p {
	case PoolUnion:
		return "union"
	case PoolCommon:
		return "common"
	default:
		return fmt.Sprintf("Pool(%d)", uint8(p))
	}
}

// ParsePool accepts "union" or "common" (case-insensitive).
func ParsePool(s string) (Pool, error) {
	switch strings.ToLower(s) {
	case "union":
		return PoolUnion, nil
	case "common":
		return PoolCommon, nil
	default:
		return 0, fmt.Errorf("unknown conditioning pool %q (want union or common)", s)
	}
}

// Config parameterises Stage 2.
type Config struct {
	// Alpha is the significance level; p ≥ Alpha removes the edge.
	Alpha float64
	// NPerm is the number of permutations per test.
	NPerm int
	// MaxCondSize is the largest conditioning set tried (0 = marginal only).
	MaxCondSize int
	Pool        Pool
	// Seed roots the per-edge permutation streams.
	Seed uint64
	// Workers bounds concurrently searched edges (≤ 0 means 1).
	Workers int
	// Timeout bounds the whole stage; 0 disables it.
	Timeout time.Duration
}

func (c Config) validate() error {
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return diag.Configf("alpha", "must lie in (0,1), got %v", c.Alpha)
	}
	if c.NPerm < 1 {
		return diag.Configf("nperm", "must be positive, got %d", c.NPerm)
	}
	if c.MaxCondSize < 0 {
		return diag.Configf("max_cond_size", "must be non-negative, got %d", c.MaxCondSize)
	}
	if c.Pool != PoolUnion && c.Pool != PoolCommon {
		return diag.Configf("pool", "unknown value %d", c.Pool)
	}
	if c.Timeout < 0 {
		return diag.Configf("timeout", "must be non-negative, got %s", c.Timeout)
	}

	return nil
}

// coarse reports whether the smallest attainable p-value exceeds Alpha.
func (c Config) coarse() bool {
	return 1/float64(c.NPerm+1) > c.Alpha
}
