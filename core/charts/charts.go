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

// Package charts renders datasets to PNG bytes served behind <img>
// tags: frequency bars and line trends via go-chart, distribution
// histograms and the correlation heatmap via gonum/plot.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/datascope/datascope/core/stats"
)

// ErrNoData marks a chart request with nothing to draw.
var ErrNoData = errors.New("no data to plot")

// BarChart renders a descending-frequency bar chart of categorical
// value counts.
func BarChart(title string, counts []stats.ValueCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, vc := range counts {
		bars = append(bars, chart.Value{Label: vc.Value, Value: float64(vc.Count)})
	}

	width := 640
	if w := 48 * len(bars); w > width {
		width = w
	}
	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		Width:      width,
		Height:     420,
		BarWidth:   36,
		Bars:       bars,
		YAxis: chart.YAxis{
			Name: "Count",
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Series is one named line of a trend chart.
type Series struct {
	Name string
	Xs   []float64
	Ys   []float64
}

// seriesStyle colors lines in selection order.
func seriesStyle(i int) chart.Style {
	colors := []drawing.Color{
		chart.ColorBlue,
		chart.ColorGreen,
		chart.ColorRed,
		chart.ColorOrange,
		chart.ColorCyan,
		chart.ColorAlternateGray,
	}
	c := colors[i%len(colors)]
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 1.75,
	}
}

// LineChart renders one line per series against a shared x axis, in the
// given order. Rows where x or y is missing are dropped per series.
func LineChart(title, xLabel string, series []Series) ([]byte, error) {
	var rendered []chart.Series
	for i, s := range series {
		xs, ys := completePairs(s.Xs, s.Ys)
		if len(xs) == 0 {
			continue
		}
		// go-chart cannot scale an axis over a single x value, so pad
		// a degenerate series with a nearby second point.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		rendered = append(rendered, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(i),
		})
	}
	if len(rendered) == 0 {
		return nil, ErrNoData
	}

	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		Width:      720,
		Height:     420,
		XAxis:      chart.XAxis{Name: xLabel},
		YAxis:      chart.YAxis{Name: "Values"},
		Series:     rendered,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render line chart: %w", err)
	}
	return buf.Bytes(), nil
}

func completePairs(xs, ys []float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	var outX, outY []float64
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}
