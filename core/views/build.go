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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/datascope/datascope/core/dataset"
	"github.com/datascope/datascope/core/join"
	"github.com/datascope/datascope/core/query"
	"github.com/datascope/datascope/core/registry"
	"github.com/datascope/datascope/core/stats"
)

// BuildLanding assembles the landing view model from the session
// registry and any flash messages carried on the request.
func BuildLanding(reg *registry.Registry, messages []Message) *LandingViewModel {
	vm := &LandingViewModel{
		Title:    "Datascope",
		Subtitle: "Upload tabular data, join it and explore it.",
		Messages: messages,
	}
	for _, kind := range join.Kinds() {
		vm.JoinKinds = append(vm.JoinKinds, kind.String())
	}
	for _, name := range reg.Names() {
		ds := reg.Get(name)
		if ds == nil {
			continue
		}
		vm.Datasets = append(vm.Datasets, DatasetInfo{
			Name:       name,
			Rows:       ds.NumRows(),
			Cols:       ds.NumCols(),
			Columns:    strings.Join(ds.ColumnNames(), ", "),
			AnalyzeURL: datasetURL(&query.State{Name: name}),
		})
	}
	vm.CanJoin = len(vm.Datasets) >= 2
	return vm
}

// BuildAnalysis assembles the analysis view model. ds is the full
// dataset from the registry; view is the dataset after the state's
// column selection and allow-lists have been applied. view may be nil
// when the selection is empty, in which case only the column choices
// and messages are rendered.
func BuildAnalysis(ds *dataset.Dataset, view *dataset.Dataset, state *query.State, previewRows int, messages []Message) *AnalysisViewModel {
	vm := &AnalysisViewModel{
		Title:    state.Name + " - Datascope",
		Name:     state.Name,
		Messages: messages,
		Columns:  columnChoices(ds, state),
		BackURL:  "/",
	}
	if view == nil {
		return vm
	}

	vm.NumRows = view.NumRows()
	vm.NumCols = view.NumCols()
	vm.Headers = view.ColumnNames()
	vm.HeadRows = view.Head(previewRows)

	for _, row := range stats.Overview(view) {
		vm.Overview = append(vm.Overview, OverviewRow{
			Name:    row.Name,
			Kind:    row.Kind.String(),
			Missing: row.Missing,
		})
	}
	for _, s := range stats.Describe(view) {
		vm.Summaries = append(vm.Summaries, summaryRow(s))
	}

	vm.UnivariateOptions, vm.UnivariateURL = univariateOptions(view, state)
	vm.XOptions, vm.YOptions, vm.TrendURL = trendOptions(view, state)

	if _, ok := stats.Correlation(view); ok {
		vm.HeatmapURL = chartURL("/chart/heatmap", state)
	} else {
		vm.CorrelationMessage = "not enough numeric columns"
	}

	vm.ExportURL = "/export?" + state.Encode().Encode()
	return vm
}

// columnChoices lists every column of the full dataset with its
// selection toggle and, for categorical columns, the value toggles.
func columnChoices(ds *dataset.Dataset, state *query.State) []ColumnChoice {
	selected := selectedSet(ds, state)
	var out []ColumnChoice
	for _, c := range ds.Columns() {
		choice := ColumnChoice{
			Name:      c.Name(),
			Kind:      c.Kind().String(),
			Selected:  selected[c.Name()],
			ToggleURL: toggleColumnURL(ds, state, c.Name()),
		}
		if c.Kind() == dataset.Categorical {
			distinct := dataset.DistinctValues(c)
			allowed := allowedSet(c.Name(), distinct, state)
			for _, v := range distinct {
				choice.Values = append(choice.Values, ValueChoice{
					Value:     v,
					Allowed:   allowed[v],
					ToggleURL: toggleValueURL(state, c.Name(), v, distinct, allowed),
				})
			}
		}
		out = append(out, choice)
	}
	return out
}

// selectedSet resolves the state's column selection against the
// dataset: an absent columns parameter selects everything.
func selectedSet(ds *dataset.Dataset, state *query.State) map[string]bool {
	selected := make(map[string]bool)
	if !state.ColumnsSet {
		for _, name := range ds.ColumnNames() {
			selected[name] = true
		}
		return selected
	}
	for _, name := range state.Columns {
		selected[name] = true
	}
	return selected
}

// allowedSet resolves the allow-list of one column: no allow-list, or
// one covering every distinct value, allows everything.
func allowedSet(col string, distinct []string, state *query.State) map[string]bool {
	listed, ok := state.Allow[col]
	if !ok {
		allowed := make(map[string]bool, len(distinct))
		for _, v := range distinct {
			allowed[v] = true
		}
		return allowed
	}
	allowed := make(map[string]bool, len(listed))
	for _, v := range listed {
		allowed[v] = true
	}
	return allowed
}

// toggleColumnURL returns the analysis URL with one column flipped in
// or out of the selection. Deselecting under the select-all default
// makes the selection explicit first.
func toggleColumnURL(ds *dataset.Dataset, state *query.State, name string) string {
	next := cloneState(state)
	next.ColumnsSet = true
	current := state.Columns
	if !state.ColumnsSet {
		current = ds.ColumnNames()
	}
	next.Columns = nil
	found := false
	for _, c := range current {
		if c == name {
			found = true
			continue
		}
		next.Columns = append(next.Columns, c)
	}
	if !found {
		next.Columns = append(next.Columns, name)
	}
	return datasetURL(next)
}

// toggleValueURL returns the analysis URL with one categorical value
// flipped in or out of its column's allow-list. A resulting allow-list
// covering every distinct value is dropped so the URL stays minimal.
func toggleValueURL(state *query.State, col, value string, distinct []string, allowed map[string]bool) string {
	next := cloneState(state)
	var list []string
	for _, v := range distinct {
		keep := allowed[v]
		if v == value {
			keep = !keep
		}
		if keep {
			list = append(list, v)
		}
	}
	if len(list) == len(distinct) {
		delete(next.Allow, col)
	} else {
		next.Allow[col] = list
	}
	return datasetURL(next)
}

// univariateOptions lists every selected column as a univariate chart
// choice and returns the image URL for the active one.
func univariateOptions(view *dataset.Dataset, state *query.State) ([]ChartOption, string) {
	col := state.Col
	if col == "" || !view.HasColumn(col) {
		col = ""
		if view.NumCols() > 0 {
			col = view.ColumnNames()[0]
		}
	}
	var opts []ChartOption
	for _, name := range view.ColumnNames() {
		next := cloneState(state)
		next.Col = name
		opts = append(opts, ChartOption{
			Name:     name,
			Selected: name == col,
			URL:      datasetURL(next),
		})
	}
	if col == "" {
		return opts, ""
	}
	active := cloneState(state)
	active.Col = col
	return opts, chartURL("/chart/univariate", active)
}

// trendOptions lists every column as an x choice, the numeric columns
// as y choices, and returns the image URL when both ends are chosen. A
// categorical x axis plots against the row index.
func trendOptions(view *dataset.Dataset, state *query.State) (xs, ys []ChartOption, img string) {
	var numeric []string
	for _, c := range view.Columns() {
		if c.Kind() == dataset.Numeric {
			numeric = append(numeric, c.Name())
		}
	}

	x := state.X
	if x != "" && !view.HasColumn(x) {
		x = ""
	}
	ySelected := make(map[string]bool)
	for _, y := range state.Ys {
		if view.HasColumn(y) {
			ySelected[y] = true
		}
	}

	for _, name := range view.ColumnNames() {
		next := cloneState(state)
		next.X = name
		xs = append(xs, ChartOption{Name: name, Selected: name == x, URL: datasetURL(next)})
	}
	for _, name := range numeric {
		next := cloneState(state)
		next.Ys = nil
		for _, y := range numeric {
			keep := ySelected[y]
			if y == name {
				keep = !keep
			}
			if keep {
				next.Ys = append(next.Ys, y)
			}
		}
		ys = append(ys, ChartOption{Name: name, Selected: ySelected[name], URL: datasetURL(next)})
	}

	if x == "" || len(ySelected) == 0 {
		return xs, ys, ""
	}
	return xs, ys, chartURL("/chart/trend", state)
}

func summaryRow(s stats.Summary) SummaryRow {
	row := SummaryRow{
		Name:  s.Name,
		Kind:  s.Kind.String(),
		Count: strconv.Itoa(s.Count),
	}
	if s.Kind == dataset.Numeric {
		row.Mean = fmtStat(s.Mean)
		row.Std = fmtStat(s.Std)
		row.Min = fmtStat(s.Min)
		row.Q1 = fmtStat(s.Q1)
		row.Median = fmtStat(s.Median)
		row.Q3 = fmtStat(s.Q3)
		row.Max = fmtStat(s.Max)
	} else {
		row.Unique = strconv.Itoa(s.Unique)
		row.Top = s.Top
		row.Freq = strconv.Itoa(s.Freq)
	}
	return row
}

func fmtStat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

func cloneState(s *query.State) *query.State {
	next := &query.State{
		Name:       s.Name,
		Columns:    append([]string(nil), s.Columns...),
		ColumnsSet: s.ColumnsSet,
		Allow:      make(map[string][]string, len(s.Allow)),
		Col:        s.Col,
		X:          s.X,
		Ys:         append([]string(nil), s.Ys...),
	}
	for col, values := range s.Allow {
		next.Allow[col] = append([]string(nil), values...)
	}
	return next
}

func datasetURL(s *query.State) string {
	return "/dataset?" + s.Encode().Encode()
}

func chartURL(path string, s *query.State) string {
	return path + "?" + s.Encode().Encode()
}
