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

// Package join computes relational joins between two datasets using a
// hash join over the shared key columns. Inputs are never mutated; the
// result is a new dataset.
package join

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/datascope/datascope/core/dataset"
)

// Kind selects the relational join semantics.
type Kind int

const (
	Inner Kind = iota
	Left
	Right
	Outer
)

func (k Kind) String() string {
	switch k {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Right:
		return "right"
	case Outer:
		return "outer"
	}
	return "unknown"
}

// Kinds lists the supported join kinds in UI order.
func Kinds() []Kind {
	return []Kind{Inner, Left, Right, Outer}
}

// ParseKind parses a join kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "inner":
		return Inner, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "outer":
		return Outer, nil
	}
	return Inner, fmt.Errorf("%w: unknown join kind %q", ErrInvalidSpec, s)
}

// ErrInvalidSpec marks a join request that cannot be executed: no keys,
// keys absent from one side, or incompatible key types.
var ErrInvalidSpec = errors.New("invalid join spec")

// Suffixes appended to colliding non-key column names, left and right.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// pair addresses one output row: a row index per side, -1 for the
// unmatched side.
type pair struct {
	left, right int
}

// Join joins two datasets on the named key columns. Every key must be
// present in both datasets with the same kind. Rows with a missing key
// value never match; key equality is type-aware (numeric by value,
// categorical by string). Non-key columns whose name appears in both
// inputs are suffixed "_x"/"_y" in the output.
func Join(left, right *dataset.Dataset, keys []string, kind Kind) (*dataset.Dataset, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no join columns selected", ErrInvalidSpec)
	}
	for _, key := range keys {
		lc, rc := left.Column(key), right.Column(key)
		if lc == nil || rc == nil {
			return nil, fmt.Errorf("%w: column %q is not present in both datasets", ErrInvalidSpec, key)
		}
		if lc.Kind() != rc.Kind() {
			return nil, fmt.Errorf("%w: column %q is %s on one side and %s on the other",
				ErrInvalidSpec, key, lc.Kind(), rc.Kind())
		}
	}

	pairs := matchRows(left, right, keys, kind)
	return materialize(left, right, keys, pairs)
}

// matchRows computes the output row pairs for the given kind.
func matchRows(left, right *dataset.Dataset, keys []string, kind Kind) []pair {
	if kind == Right {
		// Right join is the mirror of left join but keeps right-major
		// row order, so index the left side instead.
		index := buildKeyIndex(left, keys)
		pairs := make([]pair, 0, right.NumRows())
		for ri := 0; ri < right.NumRows(); ri++ {
			k, ok := rowKey(right, keys, ri)
			if ok {
				if matches := index[k]; len(matches) > 0 {
					for _, li := range matches {
						pairs = append(pairs, pair{left: li, right: ri})
					}
					continue
				}
			}
			pairs = append(pairs, pair{left: -1, right: ri})
		}
		return pairs
	}

	index := buildKeyIndex(right, keys)
	matchedRight := make(map[int]bool)
	var pairs []pair
	for li := 0; li < left.NumRows(); li++ {
		k, ok := rowKey(left, keys, li)
		if ok {
			if matches := index[k]; len(matches) > 0 {
				for _, ri := range matches {
					pairs = append(pairs, pair{left: li, right: ri})
					matchedRight[ri] = true
				}
				continue
			}
		}
		if kind == Left || kind == Outer {
			pairs = append(pairs, pair{left: li, right: -1})
		}
	}
	if kind == Outer {
		for ri := 0; ri < right.NumRows(); ri++ {
			if !matchedRight[ri] {
				pairs = append(pairs, pair{left: -1, right: ri})
			}
		}
	}
	return pairs
}

// buildKeyIndex maps each observed key tuple to its row indices.
func buildKeyIndex(ds *dataset.Dataset, keys []string) map[string][]int {
	index := make(map[string][]int, ds.NumRows())
	for i := 0; i < ds.NumRows(); i++ {
		if k, ok := rowKey(ds, keys, i); ok {
			index[k] = append(index[k], i)
		}
	}
	return index
}

// rowKey encodes the key tuple of one row. ok is false when any key cell
// is missing, which excludes the row from matching entirely.
func rowKey(ds *dataset.Dataset, keys []string, row int) (string, bool) {
	var sb strings.Builder
	for i, key := range keys {
		c := ds.Column(key)
		if c.IsMissing(row) {
			return "", false
		}
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		switch col := c.(type) {
		case *dataset.NumberColumn:
			sb.WriteString(strconv.FormatFloat(col.Value(row), 'g', -1, 64))
		default:
			sb.WriteString(c.Cell(row))
		}
	}
	return sb.String(), true
}

// materialize builds the output dataset from row pairs. Key columns
// appear once, at their position in the left dataset's column order,
// followed by the remaining right columns.
func materialize(left, right *dataset.Dataset, keys []string, pairs []pair) (*dataset.Dataset, error) {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	collisions := make(map[string]bool)
	for _, name := range left.ColumnNames() {
		if !keySet[name] && right.HasColumn(name) {
			collisions[name] = true
		}
	}

	leftRows := make([]int, len(pairs))
	rightRows := make([]int, len(pairs))
	for i, p := range pairs {
		leftRows[i] = p.left
		rightRows[i] = p.right
	}

	var cols []dataset.Column
	for _, c := range left.Columns() {
		name := c.Name()
		if keySet[name] {
			cols = append(cols, mergeKeyColumn(c, right.Column(name), pairs))
			continue
		}
		out := c.Select(leftRows)
		if collisions[name] {
			out = out.Rename(name + LeftSuffix)
		}
		cols = append(cols, out)
	}
	for _, c := range right.Columns() {
		name := c.Name()
		if keySet[name] {
			continue
		}
		out := c.Select(rightRows)
		if collisions[name] {
			out = out.Rename(name + RightSuffix)
		}
		cols = append(cols, out)
	}

	return dataset.New(cols...)
}

// mergeKeyColumn materializes a key column, taking each cell from
// whichever side of the pair is present (the left side wins when both
// are, and both carry the same value by construction).
func mergeKeyColumn(lc, rc dataset.Column, pairs []pair) dataset.Column {
	switch lcol := lc.(type) {
	case *dataset.NumberColumn:
		rcol := rc.(*dataset.NumberColumn)
		data := make([]float64, len(pairs))
		for i, p := range pairs {
			switch {
			case p.left >= 0:
				data[i] = lcol.Value(p.left)
			case p.right >= 0:
				data[i] = rcol.Value(p.right)
			default:
				data[i] = math.NaN()
			}
		}
		return dataset.NewNumberColumn(lc.Name(), data)
	default:
		scol := lc.(*dataset.StringColumn)
		rcol := rc.(*dataset.StringColumn)
		data := make([]string, len(pairs))
		missing := make([]bool, len(pairs))
		for i, p := range pairs {
			switch {
			case p.left >= 0:
				v, present := scol.Value(p.left)
				data[i] = v
				missing[i] = !present
			case p.right >= 0:
				v, present := rcol.Value(p.right)
				data[i] = v
				missing[i] = !present
			default:
				missing[i] = true
			}
		}
		return dataset.NewStringColumn(lc.Name(), data, missing)
	}
}

// SharedColumns returns the column names present in both datasets, in
// the left dataset's order. The UI offers these as join key candidates.
func SharedColumns(left, right *dataset.Dataset) []string {
	var shared []string
	for _, name := range left.ColumnNames() {
		if right.HasColumn(name) {
			shared = append(shared, name)
		}
	}
	return shared
}
