// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/mixdag/diag"
)

// MinSamples is the smallest sample size any stage accepts.
const MinSamples = 3

// Dataset is an immutable n×p column-major sample matrix with metadata.
// Accessors return internal slices; callers must treat them as read-only.
type Dataset struct {
	vars    []Variable
	cols    [][]float64 // raw values, one slice per variable
	codes   [][]int     // category codes 0..k-1 (nil for continuous)
	labels  [][]float64 // observed category values in code order
	weights []float64   // rescaled to sum to n
	index   map[string]int
	n       int
}

// Option configures dataset construction.
type Option func(*buildOptions)

type buildOptions struct {
	weights []float64
}

// WithWeights sets per-sample weights (length n, nonnegative, finite, not all zero).
// A nil slice keeps the default of unit weights.
func WithWeights(w []float64) Option {
	return func(o *buildOptions) { o.weights = w }
}

// New validates columns and metadata and returns an immutable Dataset.
// ConfigError for shape/metadata problems, DataError for values the
// variable cannot hold (non-finite values, undeclared categories).
// Complexity: O(n·p·log n) (category discovery sorts each categorical column).
func New(columns [][]float64, vars []Variable, opts ...Option) (*Dataset, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	p := len(vars)
	if p == 0 {
		return nil, diag.Configf("variables", "at least one variable is required")
	}
	if len(columns) != p {
		return nil, diag.Configf("data", "got %d columns for %d variables", len(columns), p)
	}
	n := len(columns[0])
	if n == 0 {
		return nil, diag.Configf("data", "no samples")
	}

	ds := &Dataset{
		vars:   make([]Variable, p),
		cols:   make([][]float64, p),
		codes:  make([][]int, p),
		labels: make([][]float64, p),
		index:  make(map[string]int, p),
		n:      n,
	}
	copy(ds.vars, vars)

	for j, v := range vars {
		if err := v.validate(j); err != nil {
			return nil, err
		}
		if _, dup := ds.index[v.Name]; dup {
			return nil, diag.Configf(fmt.Sprintf("variable[%d]", j), "duplicate name %q", v.Name)
		}
		ds.index[v.Name] = j

		if len(columns[j]) != n {
			return nil, diag.Configf(fmt.Sprintf("data[%d]", j), "column %q has %d rows, want %d", v.Name, len(columns[j]), n)
		}
		col := make([]float64, n)
		for i, x := range columns[j] {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, diag.Dataf(v.Name, "non-finite value at row %d (missing data is not supported)", i)
			}
			col[i] = x
		}
		ds.cols[j] = col

		if v.Type == Categorical {
			codes, labels := encodeCategories(col)
			if len(labels) > v.Levels {
				return nil, diag.Dataf(v.Name, "observed %d categories, declared level %d", len(labels), v.Levels)
			}
			ds.codes[j], ds.labels[j] = codes, labels
		}
	}

	w, err := normalizeWeights(bo.weights, n)
	if err != nil {
		return nil, err
	}
	ds.weights = w

	return ds, nil
}

// FromSpec builds a Dataset from the flat interface: a type string of
// 'g'/'c' letters, a level per variable and 0/1 SNP flags. Empty names are
// replaced by "V1".."Vp".
func FromSpec(names []string, columns [][]float64, types string, levels []int, snp []int, weights []float64) (*Dataset, error) {
	tags := []rune(types)
	p := len(columns)
	if len(tags) != p {
		return nil, diag.Configf("type", "length %d does not match %d columns", len(tags), p)
	}
	if len(levels) != p {
		return nil, diag.Configf("level", "length %d does not match %d columns", len(levels), p)
	}
	if len(snp) != p {
		return nil, diag.Configf("SNP", "length %d does not match %d columns", len(snp), p)
	}
	if names != nil && len(names) != p {
		return nil, diag.Configf("names", "length %d does not match %d columns", len(names), p)
	}

	vars := make([]Variable, p)
	for j := 0; j < p; j++ {
		t, err := ParseType(tags[j])
		if err != nil {
			return nil, diag.Configf(fmt.Sprintf("type[%d]", j), "%v", err)
		}
		if snp[j] != 0 && snp[j] != 1 {
			return nil, diag.Configf(fmt.Sprintf("SNP[%d]", j), "flag must be 0 or 1, got %d", snp[j])
		}
		name := "V" + strconv.Itoa(j+1)
		if names != nil && names[j] != "" {
			name = names[j]
		}
		vars[j] = Variable{Name: name, Type: t, Levels: levels[j], SNP: snp[j] == 1}
	}

	return New(columns, vars, WithWeights(weights))
}

// encodeCategories maps observed values to ascending codes.
func encodeCategories(col []float64) ([]int, []float64) {
	seen := make(map[float64]struct{})
	for _, x := range col {
		seen[x] = struct{}{}
	}
	labels := make([]float64, 0, len(seen))
	for x := range seen {
		labels = append(labels, x)
	}
	sort.Float64s(labels)

	lookup := make(map[float64]int, len(labels))
	for c, x := range labels {
		lookup[x] = c
	}
	codes := make([]int, len(col))
	for i, x := range col {
		codes[i] = lookup[x]
	}

	return codes, labels
}

// normalizeWeights validates w and rescales it to sum to n.
func normalizeWeights(w []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	if w == nil {
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	if len(w) != n {
		return nil, diag.Configf("weights", "length %d does not match %d samples", len(w), n)
	}
	var sum float64
	for i, x := range w {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return nil, diag.Configf("weights", "weight %d must be finite and nonnegative, got %v", i, x)
		}
		sum += x
	}
	if sum <= 0 {
		return nil, diag.Configf("weights", "weights sum to zero")
	}
	scale := float64(n) / sum
	for i, x := range w {
		out[i] = x * scale
	}

	return out, nil
}

// N returns the sample count.
func (d *Dataset) N() int { return d.n }

// P returns the variable count.
func (d *Dataset) P() int { return len(d.vars) }

// Var returns the metadata of variable j.
func (d *Dataset) Var(j int) Variable { return d.vars[j] }

// Vars returns a copy of all variable metadata.
func (d *Dataset) Vars() []Variable {
	out := make([]Variable, len(d.vars))
	copy(out, d.vars)

	return out
}

// Names returns the variable names in column order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.vars))
	for j, v := range d.vars {
		out[j] = v.Name
	}

	return out
}

// Index returns the column of the named variable.
func (d *Dataset) Index(name string) (int, bool) {
	j, ok := d.index[name]

	return j, ok
}

// Column returns the raw values of variable j (read-only).
func (d *Dataset) Column(j int) []float64 { return d.cols[j] }

// Codes returns the category codes of variable j (nil when continuous).
func (d *Dataset) Codes(j int) []int { return d.codes[j] }

// Categories returns the number of observed categories of variable j
// (1 for continuous variables).
func (d *Dataset) Categories(j int) int {
	if d.vars[j].Type != Categorical {
		return 1
	}

	return len(d.labels[j])
}

// Weights returns the normalised sample weights (read-only).
func (d *Dataset) Weights() []float64 { return d.weights }

// Permute returns a Dataset whose rows are reordered by perm (row i of the
// result is row perm[i] of d). Weights follow their rows.
func (d *Dataset) Permute(perm []int) (*Dataset, error) {
	if len(perm) != d.n {
		return nil, diag.Configf("perm", "length %d does not match %d samples", len(perm), d.n)
	}
	cols := make([][]float64, len(d.cols))
	for j, col := range d.cols {
		cols[j] = make([]float64, d.n)
		for i, src := range perm {
			if src < 0 || src >= d.n {
				return nil, diag.Configf("perm", "index %d out of range", src)
			}
			cols[j][i] = col[src]
		}
	}
	w := make([]float64, d.n)
	for i, src := range perm {
		w[i] = d.weights[src]
	}

	return New(cols, d.vars, WithWeights(w))
}
