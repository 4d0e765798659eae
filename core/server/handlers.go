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

package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/datascope/datascope/core/charts"
	"github.com/datascope/datascope/core/dataset"
	"github.com/datascope/datascope/core/export"
	"github.com/datascope/datascope/core/filter"
	"github.com/datascope/datascope/core/ingest"
	"github.com/datascope/datascope/core/join"
	"github.com/datascope/datascope/core/query"
	"github.com/datascope/datascope/core/registry"
	"github.com/datascope/datascope/core/stats"
	"github.com/datascope/datascope/core/views"
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	reg := s.session(w, r)
	messages := flashMessages(r.URL.Query())
	if reg.Len() == 0 {
		if err := seedExample(reg); err != nil {
			s.logger.Error("seed example dataset", "error", err)
		} else {
			messages = append(messages, views.Message{Kind: "info", Text: "no file uploaded yet, using the example dataset"})
		}
	}
	vm := views.BuildLanding(reg, messages)
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.logger.Error("render landing", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reg := s.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		redirectWithFlash(w, r, "/", url.Values{"err": {"upload too large or malformed"}})
		return
	}

	flash := url.Values{}
	loaded := 0
	for _, header := range r.MultipartForm.File["files"] {
		named, err := s.ingestUpload(header)
		if err != nil {
			flash.Add("err", fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		for _, n := range named {
			reg.Put(n.Name, n.Data)
			loaded++
		}
	}
	if loaded > 0 {
		flash.Add("msg", fmt.Sprintf("loaded %d dataset(s)", loaded))
	}
	s.logger.Info("upload", "datasets", loaded, "errors", len(flash["err"]))
	redirectWithFlash(w, r, "/", flash)
}

// ingestUpload reads one uploaded file and turns it into datasets. A
// failure anywhere in the file registers nothing from it.
func (s *Server) ingestUpload(header *multipart.FileHeader) ([]ingest.Named, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ingest.Ingest(header.Filename, content)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reg := s.session(w, r)

	leftName := r.FormValue("left")
	rightName := r.FormValue("right")
	kind, err := join.ParseKind(r.FormValue("kind"))
	if err != nil {
		redirectWithFlash(w, r, "/", url.Values{"err": {err.Error()}})
		return
	}
	var keys []string
	for _, k := range strings.Split(r.FormValue("keys"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	left := reg.Get(leftName)
	right := reg.Get(rightName)
	if left == nil || right == nil {
		redirectWithFlash(w, r, "/", url.Values{"err": {"join: unknown dataset"}})
		return
	}

	flash := url.Values{}
	if leftName == rightName {
		flash.Add("info", "joining a dataset with itself")
	}
	if len(join.SharedColumns(left, right)) == 0 {
		flash.Add("info", "the datasets share no column names")
	}

	joined, err := join.Join(left, right, keys, kind)
	if err != nil {
		flash.Add("err", "join: "+err.Error())
		redirectWithFlash(w, r, "/", flash)
		return
	}

	name := registry.JoinedName(leftName, rightName)
	reg.Put(name, joined)
	s.logger.Info("join", "name", name, "kind", kind.String(), "rows", joined.NumRows())

	state := &query.State{Name: name}
	target := "/dataset?" + state.Encode().Encode()
	if len(flash) > 0 {
		target += "&" + flash.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	reg := s.session(w, r)
	state := query.NewState(r.URL)

	ds := reg.Get(state.Name)
	if ds == nil {
		http.NotFound(w, r)
		return
	}

	messages := flashMessages(r.URL.Query())
	view, err := s.filteredView(ds, state)
	if err != nil {
		kind := "error"
		if errors.Is(err, filter.ErrEmptySelection) {
			kind = "warning"
		}
		messages = append(messages, views.Message{Kind: kind, Text: err.Error()})
	}

	vm := views.BuildAnalysis(ds, view, state, s.cfg.PreviewRows, messages)
	if err := s.renderer.RenderAnalysis(w, vm); err != nil {
		s.logger.Error("render analysis", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// effectiveSpec resolves the filter spec against the dataset: an absent
// columns parameter selects every column, so allow-lists restrict rows
// even when the URL never names a column selection.
func effectiveSpec(ds *dataset.Dataset, state *query.State) filter.Spec {
	spec := state.FilterSpec()
	if !state.ColumnsSet {
		spec.Columns = ds.ColumnNames()
	}
	return spec
}

// filteredView applies the state's column selection and allow-lists.
func (s *Server) filteredView(ds *dataset.Dataset, state *query.State) (*dataset.Dataset, error) {
	return filter.Apply(ds, effectiveSpec(ds, state))
}

// chartView resolves the dataset and filtered view for a chart or
// export request, writing the HTTP error itself when it fails.
func (s *Server) chartView(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, *dataset.Dataset, *query.State, bool) {
	reg := s.session(w, r)
	state := query.NewState(r.URL)

	ds := reg.Get(state.Name)
	if ds == nil {
		http.NotFound(w, r)
		return nil, nil, nil, false
	}
	view, err := s.filteredView(ds, state)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, nil, false
	}
	return ds, view, state, true
}

func (s *Server) handleUnivariate(w http.ResponseWriter, r *http.Request) {
	_, view, state, ok := s.chartView(w, r)
	if !ok {
		return
	}

	col := view.Column(state.Col)
	if col == nil {
		http.Error(w, "unknown column", http.StatusNotFound)
		return
	}

	var png []byte
	var err error
	if col.Kind() == dataset.Numeric {
		png, err = charts.Histogram(col.Name(), stats.NumericValues(col), s.cfg.HistogramBins)
	} else {
		png, err = charts.BarChart(col.Name(), stats.ValueCounts(col))
	}
	s.writeChart(w, png, err)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	_, view, state, ok := s.chartView(w, r)
	if !ok {
		return
	}

	xcol := view.Column(state.X)
	if xcol == nil {
		http.Error(w, "unknown x column", http.StatusBadRequest)
		return
	}
	// A categorical x axis plots against the row index.
	var xs []float64
	if nc, ok := xcol.(*dataset.NumberColumn); ok {
		xs = nc.Values()
	} else {
		xs = make([]float64, view.NumRows())
		for i := range xs {
			xs[i] = float64(i)
		}
	}

	var series []charts.Series
	for _, name := range state.Ys {
		yc, okY := view.Column(name).(*dataset.NumberColumn)
		if !okY {
			http.Error(w, "y must be a numeric column", http.StatusBadRequest)
			return
		}
		series = append(series, charts.Series{Name: name, Xs: xs, Ys: yc.Values()})
	}

	png, err := charts.LineChart(state.Name, state.X, series)
	s.writeChart(w, png, err)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	_, view, _, ok := s.chartView(w, r)
	if !ok {
		return
	}

	m, ok := stats.Correlation(view)
	if !ok {
		http.Error(w, "not enough numeric columns", http.StatusBadRequest)
		return
	}
	png, err := charts.Heatmap(m)
	s.writeChart(w, png, err)
}

func (s *Server) writeChart(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("render chart", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		s.logger.Error("write chart", "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ds, view, state, ok := s.chartView(w, r)
	if !ok {
		return
	}

	data, err := export.CSV(view)
	if err != nil {
		s.logger.Error("export", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	selected := effectiveSpec(ds, state).Restricted(ds) ||
		(state.ColumnsSet && len(state.Columns) < ds.NumCols())
	name := export.FileName(state.Name, selected)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write export", "error", err)
	}
}
