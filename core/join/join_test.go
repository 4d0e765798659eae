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

package join

import (
	"errors"
	"reflect"
	"testing"

	"github.com/datascope/datascope/core/dataset"
)

// tableA is columns [id, val] rows [(1,10),(2,20)].
func tableA(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewNumberColumn("id", []float64{1, 2}),
		dataset.NewNumberColumn("val", []float64{10, 20}),
	)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}

// tableB is columns [id, val2] rows [(1,100),(3,300)].
func tableB(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewNumberColumn("id", []float64{1, 3}),
		dataset.NewNumberColumn("val2", []float64{100, 300}),
	)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}

func TestInnerJoin(t *testing.T) {
	out, err := Join(tableA(t), tableB(t), []string{"id"}, Inner)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", out.NumRows())
	}
	if got := out.Row(0); !reflect.DeepEqual(got, []string{"1", "10", "100"}) {
		t.Errorf("expected [1 10 100], got %v", got)
	}
	if got := out.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "val", "val2"}) {
		t.Errorf("unexpected columns: %v", got)
	}
}

func TestLeftJoin(t *testing.T) {
	out, err := Join(tableA(t), tableB(t), []string{"id"}, Left)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.NumRows())
	}
	val2 := out.Column("val2")
	if val2.IsMissing(0) {
		t.Error("matched row should carry the right value")
	}
	if !val2.IsMissing(1) {
		t.Error("unmatched left row should have a missing val2")
	}
}

func TestRightJoin(t *testing.T) {
	out, err := Join(tableA(t), tableB(t), []string{"id"}, Right)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.NumRows())
	}
	// Right-major order: id 1 (matched), then id 3 (unmatched).
	if got := out.Column("id").Cell(1); got != "3" {
		t.Errorf("expected id 3 in second row, got %q", got)
	}
	if !out.Column("val").IsMissing(1) {
		t.Error("unmatched right row should have a missing val")
	}
}

func TestOuterJoin(t *testing.T) {
	out, err := Join(tableA(t), tableB(t), []string{"id"}, Outer)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.NumRows())
	}
	// The unmatched right row keeps its key value.
	if got := out.Column("id").Cell(2); got != "3" {
		t.Errorf("expected key carried from the right side, got %q", got)
	}
}

// Row coverage: outer ⊇ left ⊇ inner and outer ⊇ right ⊇ inner.
func TestJoinRowCoverageOrdering(t *testing.T) {
	counts := make(map[Kind]int)
	for _, kind := range Kinds() {
		out, err := Join(tableA(t), tableB(t), []string{"id"}, kind)
		if err != nil {
			t.Fatalf("%v join failed: %v", kind, err)
		}
		counts[kind] = out.NumRows()
	}
	if counts[Inner] > counts[Left] || counts[Inner] > counts[Right] {
		t.Errorf("inner join produced more rows than a one-sided join: %v", counts)
	}
	if counts[Left] > counts[Outer] || counts[Right] > counts[Outer] {
		t.Errorf("one-sided join produced more rows than outer: %v", counts)
	}
}

func TestCollisionSuffixes(t *testing.T) {
	left, _ := dataset.New(
		dataset.NewNumberColumn("id", []float64{1}),
		dataset.NewStringColumn("x", []string{"l"}, nil),
	)
	right, _ := dataset.New(
		dataset.NewNumberColumn("id", []float64{1}),
		dataset.NewStringColumn("x", []string{"r"}, nil),
	)

	out, err := Join(left, right, []string{"id"}, Inner)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	names := out.ColumnNames()
	if !reflect.DeepEqual(names, []string{"id", "x_x", "x_y"}) {
		t.Fatalf("expected suffixed columns, got %v", names)
	}
	if out.Column("x_x").Cell(0) != "l" || out.Column("x_y").Cell(0) != "r" {
		t.Error("suffixed columns carry the wrong side's values")
	}
}

func TestMissingKeysNeverMatch(t *testing.T) {
	left, _ := dataset.New(
		dataset.NewStringColumn("k", []string{"a", ""}, []bool{false, true}),
		dataset.NewNumberColumn("v", []float64{1, 2}),
	)
	right, _ := dataset.New(
		dataset.NewStringColumn("k", []string{"a", ""}, []bool{false, true}),
		dataset.NewNumberColumn("w", []float64{10, 20}),
	)

	out, err := Join(left, right, []string{"k"}, Inner)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 1 {
		t.Errorf("missing keys must not match each other, got %d rows", out.NumRows())
	}
}

func TestDuplicateKeysMultiply(t *testing.T) {
	left, _ := dataset.New(dataset.NewNumberColumn("id", []float64{1, 1}))
	right, _ := dataset.New(
		dataset.NewNumberColumn("id", []float64{1, 1, 1}),
		dataset.NewNumberColumn("v", []float64{1, 2, 3}),
	)
	out, err := Join(left, right, []string{"id"}, Inner)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if out.NumRows() != 6 {
		t.Errorf("expected 2x3=6 combinations, got %d", out.NumRows())
	}
}

func TestInvalidSpecs(t *testing.T) {
	a, b := tableA(t), tableB(t)

	if _, err := Join(a, b, nil, Inner); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("empty key set: expected ErrInvalidSpec, got %v", err)
	}
	if _, err := Join(a, b, []string{"val"}, Inner); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("key absent on one side: expected ErrInvalidSpec, got %v", err)
	}

	typed, _ := dataset.New(dataset.NewStringColumn("id", []string{"1"}, nil))
	if _, err := Join(a, typed, []string{"id"}, Inner); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("kind mismatch: expected ErrInvalidSpec, got %v", err)
	}

	if _, err := ParseKind("cross"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("unknown kind: expected ErrInvalidSpec, got %v", err)
	}
}

func TestJoinDoesNotMutateInputs(t *testing.T) {
	a, b := tableA(t), tableB(t)
	before := a.Row(0)
	if _, err := Join(a, b, []string{"id"}, Outer); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !reflect.DeepEqual(a.Row(0), before) || a.NumRows() != 2 || b.NumRows() != 2 {
		t.Error("join mutated an input dataset")
	}
}

func TestSharedColumns(t *testing.T) {
	got := SharedColumns(tableA(t), tableB(t))
	if !reflect.DeepEqual(got, []string{"id"}) {
		t.Errorf("expected [id], got %v", got)
	}
}
