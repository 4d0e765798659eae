/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Datascope Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stats computes read-only summaries of datasets: per-column
// overviews, descriptive statistics, value counts, Pearson correlation
// and the density estimate backing the distribution chart.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/datascope/datascope/core/dataset"
)

// ColumnOverview describes one column for the overview table.
type ColumnOverview struct {
	Name    string
	Kind    dataset.Kind
	Missing int
}

// Overview returns the per-column inferred type and missing-value count.
func Overview(ds *dataset.Dataset) []ColumnOverview {
	out := make([]ColumnOverview, 0, ds.NumCols())
	for _, c := range ds.Columns() {
		missing := 0
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				missing++
			}
		}
		out = append(out, ColumnOverview{Name: c.Name(), Kind: c.Kind(), Missing: missing})
	}
	return out
}

// Summary holds the describe-all-columns statistics for one column.
// Numeric fields are NaN for categorical columns and vice versa.
type Summary struct {
	Name  string
	Kind  dataset.Kind
	Count int

	// Numeric columns.
	Mean, Std, Min, Q1, Median, Q3, Max float64

	// Categorical columns.
	Unique int
	Top    string
	Freq   int
}

// Describe computes per-column statistics: count and, for numeric
// columns, mean/std/min/quartiles/max (sample std, linear-interpolated
// quantiles); for categorical columns, distinct count, mode and mode
// frequency.
func Describe(ds *dataset.Dataset) []Summary {
	out := make([]Summary, 0, ds.NumCols())
	for _, c := range ds.Columns() {
		s := Summary{Name: c.Name(), Kind: c.Kind()}
		switch col := c.(type) {
		case *dataset.NumberColumn:
			values := NumericValues(col)
			s.Count = len(values)
			if len(values) == 0 {
				s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan7()
				break
			}
			sort.Float64s(values)
			s.Mean = stat.Mean(values, nil)
			s.Std = stat.StdDev(values, nil)
			s.Min = values[0]
			s.Max = values[len(values)-1]
			s.Q1 = stat.Quantile(0.25, stat.LinInterp, values, nil)
			s.Median = stat.Quantile(0.5, stat.LinInterp, values, nil)
			s.Q3 = stat.Quantile(0.75, stat.LinInterp, values, nil)
		default:
			counts := ValueCounts(c)
			for _, vc := range counts {
				s.Count += vc.Count
			}
			s.Unique = len(counts)
			if len(counts) > 0 {
				s.Top = counts[0].Value
				s.Freq = counts[0].Count
			}
			s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan7()
		}
		out = append(out, s)
	}
	return out
}

func nan7() (float64, float64, float64, float64, float64, float64, float64) {
	n := math.NaN()
	return n, n, n, n, n, n, n
}

// NumericValues returns the non-missing values of a numeric column, or
// nil for a categorical column.
func NumericValues(c dataset.Column) []float64 {
	col, ok := c.(*dataset.NumberColumn)
	if !ok {
		return nil
	}
	values := make([]float64, 0, col.Len())
	for _, v := range col.Values() {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// ValueCount is the observed frequency of one value.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns the distinct values of a column by descending
// frequency, ties broken by first appearance. Missing cells are
// excluded.
func ValueCounts(c dataset.Column) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Cell(i)
		if at, seen := index[v]; seen {
			counts[at].Count++
		} else {
			index[v] = len(counts)
			counts = append(counts, ValueCount{Value: v, Count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// CorrMatrix is a pairwise Pearson correlation matrix over the numeric
// columns of a dataset.
type CorrMatrix struct {
	Names  []string
	Values [][]float64
}

// Correlation computes the Pearson correlation matrix over the numeric
// columns, using pairwise-complete observations. ok is false when fewer
// than two numeric columns exist.
func Correlation(ds *dataset.Dataset) (*CorrMatrix, bool) {
	var numeric []*dataset.NumberColumn
	var names []string
	for _, c := range ds.Columns() {
		if col, isNum := c.(*dataset.NumberColumn); isNum {
			numeric = append(numeric, col)
			names = append(names, c.Name())
		}
	}
	if len(numeric) < 2 {
		return nil, false
	}

	values := make([][]float64, len(numeric))
	for i := range numeric {
		values[i] = make([]float64, len(numeric))
		values[i][i] = 1
		for j := 0; j < i; j++ {
			r := pairwisePearson(numeric[i].Values(), numeric[j].Values())
			values[i][j] = r
			values[j][i] = r
		}
	}
	return &CorrMatrix{Names: names, Values: values}, true
}

// pairwisePearson correlates two columns over the rows where both are
// present. NaN when fewer than two complete pairs exist or a column is
// constant.
func pairwisePearson(a, b []float64) float64 {
	var xs, ys []float64
	for i := range a {
		if !math.IsNaN(a[i]) && !math.IsNaN(b[i]) {
			xs = append(xs, a[i])
			ys = append(ys, b[i])
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// KDE evaluates a Gaussian kernel density estimate of the values at
// points evenly spaced across the padded data range, using Silverman's
// rule-of-thumb bandwidth. Returns nil slices when a density cannot be
// estimated (fewer than two values or zero spread).
func KDE(values []float64, points int) (xs, ys []float64) {
	if len(values) < 2 || points < 2 {
		return nil, nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sigma := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.LinInterp, sorted, nil) - stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	spread := sigma
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	if spread <= 0 || math.IsNaN(spread) {
		return nil, nil
	}
	h := 0.9 * spread * math.Pow(float64(len(sorted)), -0.2)

	lo := sorted[0] - 3*h
	hi := sorted[len(sorted)-1] + 3*h
	step := (hi - lo) / float64(points-1)

	xs = make([]float64, points)
	ys = make([]float64, points)
	norm := 1 / (float64(len(sorted)) * h * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		var density float64
		for _, v := range sorted {
			z := (x - v) / h
			density += math.Exp(-0.5 * z * z)
		}
		xs[i] = x
		ys[i] = density * norm
	}
	return xs, ys
}
