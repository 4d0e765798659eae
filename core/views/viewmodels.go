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

// Package views builds the template view models for the landing page
// and the per-dataset analysis page.
package views

// Message is a user-visible notice. Kind is one of "info", "warning",
// "error", "success" and selects the banner style.
type Message struct {
	Kind string
	Text string
}

// DatasetInfo summarizes one registry entry on the landing page.
type DatasetInfo struct {
	Name       string
	Rows       int
	Cols       int
	Columns    string // comma-separated column names, for the join form
	AnalyzeURL string
}

// LandingViewModel drives the landing template: upload form, dataset
// listing and the join form.
type LandingViewModel struct {
	Title     string
	Subtitle  string
	Messages  []Message
	Datasets  []DatasetInfo
	JoinKinds []string
	// CanJoin is true when at least two datasets are registered.
	CanJoin bool
}

// OverviewRow is one column in the data-info table.
type OverviewRow struct {
	Name    string
	Kind    string
	Missing int
}

// SummaryRow is one column of the describe-all-columns table, cells
// already formatted for display ("" where a statistic does not apply).
type SummaryRow struct {
	Name   string
	Kind   string
	Count  string
	Mean   string
	Std    string
	Min    string
	Q1     string
	Median string
	Q3     string
	Max    string
	Unique string
	Top    string
	Freq   string
}

// ValueChoice is one distinct value of a categorical column together
// with the link that toggles it in the allow-list.
type ValueChoice struct {
	Value     string
	Allowed   bool
	ToggleURL string
}

// ColumnChoice is one column of the dataset with its selection state
// and, for categorical columns, the allow-list values.
type ColumnChoice struct {
	Name      string
	Kind      string
	Selected  bool
	ToggleURL string
	Values    []ValueChoice
}

// ChartOption is a selectable column for one of the chart views.
type ChartOption struct {
	Name     string
	Selected bool
	URL      string
}

// AnalysisViewModel drives the analysis template.
type AnalysisViewModel struct {
	Title    string
	Name     string
	Messages []Message

	// Column selection and allow-lists.
	Columns []ColumnChoice

	// Filtered view shape.
	NumRows int
	NumCols int

	// Raw-data preview.
	Headers  []string
	HeadRows [][]string

	Overview  []OverviewRow
	Summaries []SummaryRow

	// Univariate view.
	UnivariateOptions []ChartOption
	UnivariateURL     string

	// Trend view.
	XOptions []ChartOption
	YOptions []ChartOption
	TrendURL string

	// Correlation view.
	HeatmapURL         string
	CorrelationMessage string

	ExportURL string
	BackURL   string
}
