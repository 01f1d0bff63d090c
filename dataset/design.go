// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/mixdag/diag"
)

// varianceTol is the relative variance below which a column is degenerate.
const varianceTol = 1e-12

// Design is an encoded, optionally standardised block of predictor columns.
// Group[k] is the dataset variable that produced column k.
type Design struct {
	Cols   [][]float64
	Group  []int
	Means  []float64
	Scales []float64
}

// Width returns the number of encoded columns.
func (ds *Design) Width() int { return len(ds.Cols) }

// Columns returns the encoded column indices that belong to variable j.
func (ds *Design) Columns(j int) []int {
	var out []int
	for k, g := range ds.Group {
		if g == j {
			out = append(out, k)
		}
	}

	return out
}

// CheckSampleSize returns a DataError when fewer than MinSamples rows carry weight.
func (d *Dataset) CheckSampleSize() error {
	var active int
	for _, w := range d.weights {
		if w > 0 {
			active++
		}
	}
	if active < MinSamples {
		return diag.Dataf("", "insufficient sample size: %d weighted samples, need at least %d", active, MinSamples)
	}

	return nil
}

// Degenerate returns a DataError when variable j cannot be modelled:
// zero weighted variance for continuous columns, a single observed category
// for categorical ones. Rows with zero weight are ignored.
func (d *Dataset) Degenerate(j int) error {
	v := d.vars[j]
	if v.Type == Categorical {
		seen := -1
		for i, c := range d.codes[j] {
			if d.weights[i] == 0 {
				continue
			}
			if seen == -1 {
				seen = c
			} else if c != seen {
				return nil
			}
		}
		return diag.Dataf(v.Name, "single observed category")
	}

	mean, variance := stat.MeanVariance(d.cols[j], d.weights)
	if !(variance > varianceTol*math.Max(1, mean*mean)) {
		return diag.Dataf(v.Name, "zero variance")
	}

	return nil
}

// Encode returns the raw (unstandardised) encoding columns of variable j.
func (d *Dataset) Encode(j int) [][]float64 {
	v := d.vars[j]
	if v.Type == Continuous || v.SNP {
		return [][]float64{d.cols[j]}
	}

	k := len(d.labels[j])
	out := make([][]float64, 0, k-1)
	for c := 1; c < k; c++ {
		col := make([]float64, d.n)
		for i, code := range d.codes[j] {
			if code == c {
				col[i] = 1
			}
		}
		out = append(out, col)
	}

	return out
}

// Design encodes the listed variables into one block. With standardize set,
// every column is centred and scaled to unit weighted variance; a column
// that cannot be scaled yields a DataError naming its variable.
// Complexity: O(n·width).
func (d *Dataset) Design(vars []int, standardize bool) (*Design, error) {
	out := &Design{}
	for _, j := range vars {
		if j < 0 || j >= len(d.vars) {
			return nil, fmt.Errorf("dataset: Design: variable index %d out of range", j)
		}
		for _, raw := range d.Encode(j) {
			col := make([]float64, d.n)
			copy(col, raw)
			mean, scale := 0.0, 1.0
			if standardize {
				var variance float64
				mean, variance = stat.MeanVariance(col, d.weights)
				if !(variance > varianceTol) {
					return nil, diag.Dataf(d.vars[j].Name, "encoded column has zero variance")
				}
				scale = math.Sqrt(variance)
				for i := range col {
					col[i] = (col[i] - mean) / scale
				}
			}
			out.Cols = append(out.Cols, col)
			out.Group = append(out.Group, j)
			out.Means = append(out.Means, mean)
			out.Scales = append(out.Scales, scale)
		}
	}

	return out, nil
}

// Others returns every variable index except j, in ascending order.
func (d *Dataset) Others(j int) []int {
	out := make([]int, 0, len(d.vars)-1)
	for k := range d.vars {
		if k != j {
			out = append(out, k)
		}
	}

	return out
}
