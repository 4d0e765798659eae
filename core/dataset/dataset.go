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
	"fmt"
	"math"
)

// Dataset is an in-memory table: ordered columns of equal length.
// Datasets are immutable once built; Project and Take return new ones.
type Dataset struct {
	cols  []Column
	index map[string]int
}

// New creates a Dataset from columns. Column names must be unique and
// all columns must have the same length.
func New(cols ...Column) (*Dataset, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		name := c.Name()
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		index[name] = i
		if c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, c.Len(), cols[0].Len())
		}
	}
	return &Dataset{cols: cols, index: index}, nil
}

// NumRows returns the number of rows. A dataset with no columns has zero
// rows.
func (d *Dataset) NumRows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

func (d *Dataset) NumCols() int { return len(d.cols) }

// Columns returns the columns in order. Callers must not modify the
// slice.
func (d *Dataset) Columns() []Column { return d.cols }

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name()
	}
	return names
}

// Column returns a column by name, or nil if not present.
func (d *Dataset) Column(name string) Column {
	i, ok := d.index[name]
	if !ok {
		return nil
	}
	return d.cols[i]
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Project returns a new dataset with exactly the named columns, in the
// given order. The columns share data with the receiver.
func (d *Dataset) Project(names []string) (*Dataset, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c := d.Column(name)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Take materializes a new dataset from row indices, applied to every
// column. Index -1 yields a missing cell.
func (d *Dataset) Take(rows []int) *Dataset {
	cols := make([]Column, len(d.cols))
	for i, c := range d.cols {
		cols[i] = c.Select(rows)
	}
	ds, _ := New(cols...)
	return ds
}

// Row returns the display strings for one row.
func (d *Dataset) Row(i int) []string {
	cells := make([]string, len(d.cols))
	for j, c := range d.cols {
		cells[j] = c.Cell(i)
	}
	return cells
}

// Head returns the display strings of the first n rows.
func (d *Dataset) Head(n int) [][]string {
	if n > d.NumRows() {
		n = d.NumRows()
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, d.Row(i))
	}
	return rows
}

// Equal reports whether two datasets have the same columns in the same
// order with equal cells. Missing numeric cells (NaN) compare equal to
// each other.
func Equal(a, b *Dataset) bool {
	if a.NumCols() != b.NumCols() || a.NumRows() != b.NumRows() {
		return false
	}
	for i := range a.cols {
		ca, cb := a.cols[i], b.cols[i]
		if ca.Name() != cb.Name() || ca.Kind() != cb.Kind() {
			return false
		}
		for r := 0; r < ca.Len(); r++ {
			if ca.IsMissing(r) != cb.IsMissing(r) {
				return false
			}
			if ca.IsMissing(r) {
				continue
			}
			switch na := ca.(type) {
			case *NumberColumn:
				nb := cb.(*NumberColumn)
				if na.Value(r) != nb.Value(r) && !(math.IsNaN(na.Value(r)) && math.IsNaN(nb.Value(r))) {
					return false
				}
			default:
				if ca.Cell(r) != cb.Cell(r) {
					return false
				}
			}
		}
	}
	return true
}
