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

// Package ingest turns uploaded files into named datasets. A CSV file
// produces one dataset named after the file; a workbook produces one
// dataset per sheet. Column kinds are inferred once here and carried by
// the dataset from then on.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/datascope/datascope/core/dataset"
)

// ErrUnsupported marks a file whose extension is not handled.
var ErrUnsupported = errors.New("unsupported file type")

// SampleSize is the number of rows sampled for column type detection.
const SampleSize = 100

// Named pairs a registry display name with its dataset.
type Named struct {
	Name string
	Data *dataset.Dataset
}

// Ingest parses a file into one or more named datasets based on its
// extension (.csv, .xlsx, .xls). A failure means the file contributes
// zero datasets; the caller surfaces the error as a message.
func Ingest(fileName string, content []byte) ([]Named, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		ds, err := FromCSV(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		return []Named{{Name: fileName, Data: ds}}, nil
	case ".xlsx":
		sheets, err := sheetsFromXLSX(content)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		return namedFromSheets(fileName, sheets)
	case ".xls":
		sheets, err := sheetsFromXLS(content)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		return namedFromSheets(fileName, sheets)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, fileName)
}

// sheet is an intermediate parse result shared by the workbook loaders.
type sheet struct {
	name string
	rows [][]string
}

// namedFromSheets builds one dataset per non-empty sheet, named
// "<fileName> - <sheetName>". Header-only and empty sheets are skipped.
func namedFromSheets(fileName string, sheets []sheet) ([]Named, error) {
	var out []Named
	for _, s := range sheets {
		if len(s.rows) < 2 {
			continue
		}
		ds, err := fromRecords(s.rows)
		if err != nil {
			return nil, fmt.Errorf("parsing %s sheet %q: %w", fileName, s.name, err)
		}
		out = append(out, Named{Name: fileName + " - " + s.name, Data: ds})
	}
	return out, nil
}

// FromCSV parses CSV content with a header row into a dataset.
func FromCSV(r io.Reader) (*dataset.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return fromRecords(records)
}

// fromRecords builds a dataset from a header row plus data rows.
// A column is numeric iff every non-empty sampled cell parses as a
// float; otherwise it is categorical. In numeric columns empty and
// unparseable cells become missing (NaN); in categorical columns empty
// cells become missing.
func fromRecords(records [][]string) (*dataset.Dataset, error) {
	headers := records[0]
	dataRows := records[1:]

	kinds := detectColumnKinds(headers, dataRows, SampleSize)

	cols := make([]dataset.Column, 0, len(headers))
	for i, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if kinds[i] == dataset.Numeric {
			data := make([]float64, len(dataRows))
			for r, row := range dataRows {
				data[r] = parseCell(cell(row, i))
			}
			cols = append(cols, dataset.NewNumberColumn(name, data))
		} else {
			data := make([]string, len(dataRows))
			missing := make([]bool, len(dataRows))
			for r, row := range dataRows {
				v := cell(row, i)
				data[r] = v
				missing[r] = v == ""
			}
			cols = append(cols, dataset.NewStringColumn(name, data, missing))
		}
	}

	return dataset.New(cols...)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCell(value string) float64 {
	if value == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// detectColumnKinds samples data rows to decide whether each column is
// numeric or categorical.
func detectColumnKinds(headers []string, dataRows [][]string, sampleSize int) []dataset.Kind {
	kinds := make([]dataset.Kind, len(headers))

	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i := range headers {
		isNumeric := true
		hasNonEmpty := false

		for j := 0; j < rowsToSample; j++ {
			value := cell(dataRows[j], i)
			if value == "" {
				continue
			}
			hasNonEmpty = true
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isNumeric = false
				break
			}
		}

		if isNumeric && hasNonEmpty {
			kinds[i] = dataset.Numeric
		} else {
			kinds[i] = dataset.Categorical
		}
	}

	return kinds
}
