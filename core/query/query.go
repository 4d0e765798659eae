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

// Package query parses and rebuilds the URL state of an analysis view.
package query

import (
	"net/url"
	"strings"

	"github.com/datascope/datascope/core/filter"
)

// allowPrefix marks per-column allow-list parameters, one value per
// occurrence: allow:species=A&allow:species=B.
const allowPrefix = "allow:"

// State is the parsed state of an analysis URL.
type State struct {
	// Name of the dataset under analysis.
	Name string
	// Columns selected for analysis, in selection order.
	Columns []string
	// ColumnsSet distinguishes an absent columns parameter (analyze
	// every column, the default) from an explicitly empty selection,
	// which is the invalid state the UI must warn about.
	ColumnsSet bool
	// Allow maps a categorical column to its value allow-list.
	Allow map[string][]string

	// Col is the column of the univariate view.
	Col string
	// X and Ys drive the trend view.
	X  string
	Ys []string
}

// NewState parses a State from an analysis URL.
func NewState(u *url.URL) *State {
	q := u.Query()
	s := &State{
		Name:  q.Get("name"),
		Allow: make(map[string][]string),
		Col:   q.Get("col"),
		X:     q.Get("x"),
	}

	if q.Has("columns") {
		s.ColumnsSet = true
		if cols := q.Get("columns"); cols != "" {
			s.Columns = strings.Split(cols, ",")
		}
	}
	if ys := q.Get("y"); ys != "" {
		s.Ys = strings.Split(ys, ",")
	}

	for key, values := range q {
		if !strings.HasPrefix(key, allowPrefix) {
			continue
		}
		col := strings.TrimPrefix(key, allowPrefix)
		if col == "" {
			continue
		}
		s.Allow[col] = append(s.Allow[col], values...)
	}

	return s
}

// FilterSpec converts the state into the filter applied before any
// summary, chart or export.
func (s *State) FilterSpec() filter.Spec {
	return filter.Spec{Columns: s.Columns, Allow: s.Allow}
}

// Encode rebuilds the query parameters of the state, used when views
// construct chart and export links that must carry the active filter.
func (s *State) Encode() url.Values {
	v := url.Values{}
	if s.Name != "" {
		v.Set("name", s.Name)
	}
	if s.ColumnsSet {
		v.Set("columns", strings.Join(s.Columns, ","))
	}
	for col, allowed := range s.Allow {
		for _, value := range allowed {
			v.Add(allowPrefix+col, value)
		}
	}
	if s.Col != "" {
		v.Set("col", s.Col)
	}
	if s.X != "" {
		v.Set("x", s.X)
	}
	if len(s.Ys) > 0 {
		v.Set("y", strings.Join(s.Ys, ","))
	}
	return v
}
