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

package dataset

import (
	"math"
	"strconv"
)

// Kind is the inferred scalar type of a column. It is assigned once at
// ingestion and used consistently by filtering, summaries and charts
// instead of re-inspecting runtime values.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing cell.
	Numeric Kind = iota
	// Categorical columns hold strings with an explicit missing mask.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return "unknown"
}

// Column is a named, ordered collection of cells of a single Kind.
// Implementations are immutable once built; Select produces a new column.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsMissing(i int) bool
	// Cell returns the display string for a cell, "" when missing.
	Cell(i int) string
	// Select materializes a new column from row indices. Index -1 yields
	// a missing cell, which is how joins fill unmatched rows.
	Select(rows []int) Column
	// Rename returns a copy of the column under a new name, sharing data.
	Rename(name string) Column
}

// NumberColumn stores numeric data as float64, with NaN as the missing
// marker.
type NumberColumn struct {
	name string
	data []float64
}

// NewNumberColumn creates a numeric column. The slice is owned by the
// column afterwards.
func NewNumberColumn(name string, data []float64) *NumberColumn {
	return &NumberColumn{name: name, data: data}
}

func (c *NumberColumn) Name() string { return c.name }

func (c *NumberColumn) Kind() Kind { return Numeric }

func (c *NumberColumn) Len() int { return len(c.data) }

func (c *NumberColumn) IsMissing(i int) bool { return math.IsNaN(c.data[i]) }

// Value returns the raw float64 value; NaN when missing.
func (c *NumberColumn) Value(i int) float64 { return c.data[i] }

// Values returns the backing slice. Callers must not modify it.
func (c *NumberColumn) Values() []float64 { return c.data }

func (c *NumberColumn) Cell(i int) string {
	if math.IsNaN(c.data[i]) {
		return ""
	}
	return strconv.FormatFloat(c.data[i], 'g', -1, 64)
}

func (c *NumberColumn) Select(rows []int) Column {
	data := make([]float64, len(rows))
	for i, r := range rows {
		if r < 0 {
			data[i] = math.NaN()
		} else {
			data[i] = c.data[r]
		}
	}
	return &NumberColumn{name: c.name, data: data}
}

func (c *NumberColumn) Rename(name string) Column {
	return &NumberColumn{name: name, data: c.data}
}

// StringColumn stores categorical data as strings with a parallel missing
// mask, so that an empty string remains distinguishable from a missing
// cell.
type StringColumn struct {
	name    string
	data    []string
	missing []bool
}

// NewStringColumn creates a categorical column. missing may be nil when
// no cell is missing.
func NewStringColumn(name string, data []string, missing []bool) *StringColumn {
	if missing == nil {
		missing = make([]bool, len(data))
	}
	return &StringColumn{name: name, data: data, missing: missing}
}

func (c *StringColumn) Name() string { return c.name }

func (c *StringColumn) Kind() Kind { return Categorical }

func (c *StringColumn) Len() int { return len(c.data) }

func (c *StringColumn) IsMissing(i int) bool { return c.missing[i] }

// Value returns the raw string value and whether the cell is present.
func (c *StringColumn) Value(i int) (string, bool) {
	return c.data[i], !c.missing[i]
}

func (c *StringColumn) Cell(i int) string {
	if c.missing[i] {
		return ""
	}
	return c.data[i]
}

func (c *StringColumn) Select(rows []int) Column {
	data := make([]string, len(rows))
	missing := make([]bool, len(rows))
	for i, r := range rows {
		if r < 0 {
			missing[i] = true
		} else {
			data[i] = c.data[r]
			missing[i] = c.missing[r]
		}
	}
	return &StringColumn{name: c.name, data: data, missing: missing}
}

func (c *StringColumn) Rename(name string) Column {
	return &StringColumn{name: name, data: c.data, missing: c.missing}
}

// DistinctValues returns the distinct observed values of a column in
// first-seen order. Missing cells are dropped, so an allow-list built
// from this enumeration never admits missing values implicitly.
func DistinctValues(c Column) []string {
	seen := make(map[string]bool)
	var values []string
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			continue
		}
		v := c.Cell(i)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
