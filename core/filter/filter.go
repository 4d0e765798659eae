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

// Package filter narrows a dataset to a column subset and, per
// categorical column, a value allow-list.
package filter

import (
	"errors"
	"fmt"

	"github.com/datascope/datascope/core/dataset"
)

// ErrEmptySelection marks a filter with no selected columns.
var ErrEmptySelection = errors.New("select at least one column")

// Spec describes a filter: an ordered column subset and per-column
// allow-lists. A categorical column without an allow-list entry is
// unrestricted; a missing cell is excluded unless its column has no
// allow-list at all (distinct-value enumeration drops missing values, so
// an allow-list can never name them).
type Spec struct {
	Columns []string
	Allow   map[string][]string
}

// Restricted reports whether the spec restricts rows of the dataset,
// i.e. some selected categorical column has an allow-list smaller than
// its observed distinct values.
func (s Spec) Restricted(ds *dataset.Dataset) bool {
	for _, name := range s.Columns {
		allowed, ok := s.Allow[name]
		if !ok {
			continue
		}
		c := ds.Column(name)
		if c == nil || c.Kind() != dataset.Categorical {
			continue
		}
		if len(allowed) < len(dataset.DistinctValues(c)) {
			return true
		}
	}
	return false
}

// Apply produces a new dataset containing only the selected columns, in
// the given order, and only rows whose categorical values are all within
// their respective allow-lists. Inputs are not mutated.
func Apply(ds *dataset.Dataset, spec Spec) (*dataset.Dataset, error) {
	if len(spec.Columns) == 0 {
		return nil, ErrEmptySelection
	}
	projected, err := ds.Project(spec.Columns)
	if err != nil {
		return nil, fmt.Errorf("cannot filter: %w", err)
	}

	var restricted []restriction
	for _, name := range spec.Columns {
		allowed, ok := spec.Allow[name]
		if !ok {
			continue
		}
		c := projected.Column(name)
		if c.Kind() != dataset.Categorical {
			// Allow-lists only apply to categorical columns.
			continue
		}
		set := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			set[v] = true
		}
		if coversAllValues(c, set) {
			// An allow-list naming every observed value is no
			// restriction at all, so rows with missing cells survive.
			continue
		}
		restricted = append(restricted, restriction{col: c, allowed: set})
	}

	if len(restricted) == 0 {
		return projected, nil
	}

	var rows []int
	for i := 0; i < projected.NumRows(); i++ {
		if keepRow(restricted, i) {
			rows = append(rows, i)
		}
	}
	return projected.Take(rows), nil
}

func coversAllValues(c dataset.Column, allowed map[string]bool) bool {
	for _, v := range dataset.DistinctValues(c) {
		if !allowed[v] {
			return false
		}
	}
	return true
}

type restriction struct {
	col     dataset.Column
	allowed map[string]bool
}

func keepRow(restricted []restriction, row int) bool {
	for _, r := range restricted {
		if r.col.IsMissing(row) {
			return false
		}
		if !r.allowed[r.col.Cell(row)] {
			return false
		}
	}
	return true
}
