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

package ingest

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// sheetsFromXLSX extracts every sheet of an .xlsx workbook as raw string
// rows, in workbook sheet order.
func sheetsFromXLSX(content []byte) ([]sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, sheet{name: name, rows: rows})
	}
	return sheets, nil
}

// sheetsFromXLS extracts every sheet of a legacy .xls (BIFF8) workbook.
func sheetsFromXLS(content []byte) ([]sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	var sheets []sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		// Trim trailing all-empty rows so a sparse sheet does not turn
		// into thousands of missing-only records.
		for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
			rows = rows[:len(rows)-1]
		}
		sheets = append(sheets, sheet{name: ws.Name, rows: rows})
	}
	return sheets, nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
