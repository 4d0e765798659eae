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

package views

import (
	"net/url"
	"strings"
	"testing"

	"github.com/datascope/datascope/core/dataset"
	"github.com/datascope/datascope/core/filter"
	"github.com/datascope/datascope/core/query"
	"github.com/datascope/datascope/core/registry"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewNumberColumn("age", []float64{30, 40, 50}),
		dataset.NewStringColumn("species", []string{"A", "B", "A"}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func stateFor(t *testing.T, rawQuery string) *query.State {
	t.Helper()
	u, err := url.Parse("/dataset?" + rawQuery)
	if err != nil {
		t.Fatal(err)
	}
	return query.NewState(u)
}

func TestBuildLanding(t *testing.T) {
	reg := registry.New()
	reg.Put("pets", testDataset(t))

	vm := BuildLanding(reg, []Message{{Kind: "info", Text: "hi"}})
	if len(vm.Datasets) != 1 {
		t.Fatalf("got %d datasets, want 1", len(vm.Datasets))
	}
	info := vm.Datasets[0]
	if info.Name != "pets" || info.Rows != 3 || info.Cols != 2 {
		t.Errorf("unexpected dataset info: %+v", info)
	}
	if info.AnalyzeURL != "/dataset?name=pets" {
		t.Errorf("AnalyzeURL = %q", info.AnalyzeURL)
	}
	if vm.CanJoin {
		t.Error("CanJoin should require two datasets")
	}
	if len(vm.JoinKinds) != 4 {
		t.Errorf("got %d join kinds, want 4", len(vm.JoinKinds))
	}
	if len(vm.Messages) != 1 || vm.Messages[0].Text != "hi" {
		t.Errorf("messages not carried: %+v", vm.Messages)
	}
}

func TestColumnChoicesDefaultSelection(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets")
	vm := BuildAnalysis(ds, ds, state, 5, nil)

	if len(vm.Columns) != 2 {
		t.Fatalf("got %d column choices, want 2", len(vm.Columns))
	}
	for _, c := range vm.Columns {
		if !c.Selected {
			t.Errorf("column %q should be selected by default", c.Name)
		}
	}
	if got := vm.Columns[1].Values; len(got) != 2 {
		t.Errorf("species values = %+v, want A and B", got)
	}
}

func TestToggleColumnURL(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets")
	vm := BuildAnalysis(ds, ds, state, 5, nil)

	// Deselecting "age" under the select-all default leaves species only.
	u, err := url.Parse(vm.Columns[0].ToggleURL)
	if err != nil {
		t.Fatal(err)
	}
	next := query.NewState(u)
	if !next.ColumnsSet {
		t.Error("toggle should make the selection explicit")
	}
	if len(next.Columns) != 1 || next.Columns[0] != "species" {
		t.Errorf("Columns = %v, want [species]", next.Columns)
	}
}

func TestToggleValueURL(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets")
	vm := BuildAnalysis(ds, ds, state, 5, nil)

	species := vm.Columns[1]
	u, err := url.Parse(species.Values[0].ToggleURL)
	if err != nil {
		t.Fatal(err)
	}
	next := query.NewState(u)
	if got := next.Allow["species"]; len(got) != 1 || got[0] != "B" {
		t.Errorf("allow list = %v, want [B]", got)
	}

	// Toggling the value back on covers the full set and drops the list.
	vm2 := BuildAnalysis(ds, ds, next, 5, nil)
	u2, err := url.Parse(vm2.Columns[1].Values[0].ToggleURL)
	if err != nil {
		t.Fatal(err)
	}
	back := query.NewState(u2)
	if _, ok := back.Allow["species"]; ok {
		t.Errorf("full allow list should be dropped, got %v", back.Allow)
	}
}

func TestSummaryRowsFormatted(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets")
	vm := BuildAnalysis(ds, ds, state, 5, nil)

	if len(vm.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(vm.Summaries))
	}
	age := vm.Summaries[0]
	if age.Mean != "40.00" {
		t.Errorf("age mean = %q, want 40.00", age.Mean)
	}
	if age.Unique != "" || age.Top != "" {
		t.Errorf("numeric summary has categorical cells: %+v", age)
	}
	species := vm.Summaries[1]
	if species.Top != "A" || species.Freq != "2" {
		t.Errorf("species mode = %q/%q, want A/2", species.Top, species.Freq)
	}
	if species.Mean != "" {
		t.Errorf("categorical summary has numeric cells: %+v", species)
	}
}

func TestChartURLsCarryFilter(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets&allow:species=A&col=age")
	view, err := filter.Apply(ds, state.FilterSpec())
	if err != nil {
		t.Fatal(err)
	}
	vm := BuildAnalysis(ds, view, state, 5, nil)

	if !strings.Contains(vm.UnivariateURL, "allow%3Aspecies=A") {
		t.Errorf("univariate URL lost the filter: %q", vm.UnivariateURL)
	}
	if !strings.Contains(vm.ExportURL, "allow%3Aspecies=A") {
		t.Errorf("export URL lost the filter: %q", vm.ExportURL)
	}
}

func TestCorrelationMessage(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewStringColumn("species", []string{"A", "B"}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	state := stateFor(t, "name=pets")
	vm := BuildAnalysis(ds, ds, state, 5, nil)
	if vm.HeatmapURL != "" {
		t.Errorf("heatmap URL should be empty, got %q", vm.HeatmapURL)
	}
	if vm.CorrelationMessage == "" {
		t.Error("expected a correlation message")
	}
}

func TestEmptySelectionView(t *testing.T) {
	ds := testDataset(t)
	state := stateFor(t, "name=pets&columns=")
	vm := BuildAnalysis(ds, nil, state, 5, []Message{{Kind: "warning", Text: "select at least one column"}})
	if len(vm.Columns) != 2 {
		t.Fatalf("column choices missing: %d", len(vm.Columns))
	}
	for _, c := range vm.Columns {
		if c.Selected {
			t.Errorf("column %q should be deselected", c.Name)
		}
	}
	if vm.NumRows != 0 || len(vm.HeadRows) != 0 {
		t.Error("empty selection should render no data")
	}
}
