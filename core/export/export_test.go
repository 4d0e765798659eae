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

package export

import (
	"strings"
	"testing"

	"github.com/datascope/datascope/core/dataset"
	"github.com/datascope/datascope/core/ingest"
)

func TestCSVHeaderAndRows(t *testing.T) {
	ds, _ := dataset.New(
		dataset.NewStringColumn("name", []string{"Alice", "Bob"}, nil),
		dataset.NewNumberColumn("age", []float64{30, 25}),
	)
	out, err := CSV(ds)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	want := "name,age\nAlice,30\nBob,25\n"
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, string(out))
	}
}

func TestCSVQuotesDelimiters(t *testing.T) {
	ds, _ := dataset.New(dataset.NewStringColumn("note", []string{"a,b"}, nil))
	out, err := CSV(ds)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(out), `"a,b"`) {
		t.Errorf("embedded delimiter should be quoted, got %q", string(out))
	}
}

// parseCSV(serializeCSV(D)) == D for datasets needing no escaping.
func TestRoundTrip(t *testing.T) {
	ds, _ := dataset.New(
		dataset.NewStringColumn("species", []string{"A", "B", "C"}, nil),
		dataset.NewNumberColumn("weight", []float64{1.5, 2, 3.25}),
	)
	out, err := CSV(ds)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	back, err := ingest.FromCSV(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !dataset.Equal(ds, back) {
		t.Error("round-tripped dataset differs from the original")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("sales.csv", false); got != "sales.csv.csv" {
		t.Errorf("unexpected plain name: %q", got)
	}
	if got := FileName("sales.csv", true); got != "sales.csv_selected.csv" {
		t.Errorf("unexpected selected name: %q", got)
	}
}
