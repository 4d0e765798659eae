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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/datascope/datascope/core/views"
)

func TestRenderLanding(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	vm := &views.LandingViewModel{
		Title:    "Datascope",
		Subtitle: "subtitle",
		Messages: []views.Message{{Kind: "error", Text: "bad file"}},
		Datasets: []views.DatasetInfo{
			{Name: "pets", Rows: 3, Cols: 2, AnalyzeURL: "/dataset?name=pets"},
			{Name: "owners", Rows: 5, Cols: 4, AnalyzeURL: "/dataset?name=owners"},
		},
		JoinKinds: []string{"inner", "left", "right", "outer"},
		CanJoin:   true,
	}

	var buf bytes.Buffer
	if err := r.RenderLanding(&buf, vm); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{"pets", "owners", "bad file", "/dataset?name=pets", "inner", "outer", "/upload", "/join"} {
		if !strings.Contains(html, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
}

func TestRenderLandingEscapes(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	vm := &views.LandingViewModel{
		Title: "Datascope",
		Datasets: []views.DatasetInfo{
			{Name: "<script>alert(1)</script>", Rows: 1, Cols: 1, AnalyzeURL: "/dataset?name=x"},
		},
	}

	var buf bytes.Buffer
	if err := r.RenderLanding(&buf, vm); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("dataset name was not escaped")
	}
}

func TestRenderAnalysis(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	vm := &views.AnalysisViewModel{
		Title:   "pets - Datascope",
		Name:    "pets",
		NumRows: 3,
		NumCols: 2,
		Columns: []views.ColumnChoice{
			{Name: "age", Kind: "numeric", Selected: true, ToggleURL: "/dataset?name=pets&columns=species"},
			{Name: "species", Kind: "categorical", Selected: true, ToggleURL: "/dataset?name=pets&columns=age",
				Values: []views.ValueChoice{{Value: "A", Allowed: true, ToggleURL: "/dataset?name=pets"}}},
		},
		Headers:  []string{"age", "species"},
		HeadRows: [][]string{{"30", "A"}, {"40", "B"}},
		Overview: []views.OverviewRow{{Name: "age", Kind: "numeric", Missing: 0}},
		Summaries: []views.SummaryRow{
			{Name: "age", Kind: "numeric", Count: "3", Mean: "40.00"},
		},
		UnivariateURL:      "/chart/univariate?name=pets&col=age",
		CorrelationMessage: "not enough numeric columns",
		ExportURL:          "/export?name=pets",
		BackURL:            "/",
	}

	var buf bytes.Buffer
	if err := r.RenderAnalysis(&buf, vm); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{"pets", "40.00", "species", "not enough numeric columns", "Export CSV"} {
		if !strings.Contains(html, want) {
			t.Errorf("analysis page missing %q", want)
		}
	}
	if !strings.Contains(html, "img") {
		t.Error("analysis page missing chart image")
	}
}
