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

// Package export serializes datasets for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/datascope/datascope/core/dataset"
)

// CSV serializes a dataset to UTF-8 CSV bytes: a header row of column
// names followed by one record per row, no index column, standard
// quoting only.
func CSV(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.ColumnNames()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < ds.NumRows(); i++ {
		if err := w.Write(ds.Row(i)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the download name for a dataset export. selected
// marks exports of a column/row-filtered view.
func FileName(datasetName string, selected bool) string {
	if selected {
		return datasetName + "_selected.csv"
	}
	return datasetName + ".csv"
}
