// SPDX-License-Identifier: MIT

package diag

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind classifies a non-fatal condition.
type Kind string

const (
	// KindConvergence marks a regression fit that hit its iteration cap.
	KindConvergence Kind = "convergence"
	// KindNumerical marks permutation p-values coarser than the significance level.
	KindNumerical Kind = "numerical"
	// KindTimeout marks Stage 2 edges whose search was cut short by the deadline.
	KindTimeout Kind = "timeout"
)

// Warning is a degraded-but-usable condition recorded during a run.
type Warning struct {
	Kind      Kind
	Stage     int
	Variables []string
	Message   string
}

// String renders the warning on a single line.
func (w Warning) String() string {
	if len(w.Variables) == 0 {
		return fmt.Sprintf("stage %d %s: %s", w.Stage, w.Kind, w.Message)
	}

	return fmt.Sprintf("stage %d %s [%s]: %s", w.Stage, w.Kind, strings.Join(w.Variables, ","), w.Message)
}

// Collector gathers warnings from concurrent workers.
// The zero value is ready to use.
type Collector struct {
	mu   sync.Mutex
	list []Warning
}

// Add records w.
func (c *Collector) Add(w Warning) {
	c.mu.Lock()
	c.list = append(c.list, w)
	c.mu.Unlock()
}

// Addf records a warning built from a format string.
func (c *Collector) Addf(kind Kind, stage int, vars []string, format string, args ...any) {
	c.Add(Warning{Kind: kind, Stage: stage, Variables: vars, Message: fmt.Sprintf(format, args...)})
}

// Warnings returns a copy of the collected warnings in a deterministic order
// (stage, kind, first variable, message) so concurrent producers do not
// change the output between runs.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	out := make([]Warning, len(c.list))
	copy(out, c.list)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Stage != b.Stage {
			return a.Stage < b.Stage
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if fa, fb := first(a.Variables), first(b.Variables); fa != fb {
			return fa < fb
		}
		return a.Message < b.Message
	})

	return out
}

// Len reports the number of collected warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.list)
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}

	return s[0]
}
