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

package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/datascope/datascope/core/stats"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 of the
// matrix is drawn at the top.
type corrGrid struct {
	m *stats.CorrMatrix
}

func (g corrGrid) Dims() (int, int) { return len(g.m.Names), len(g.m.Names) }

func (g corrGrid) X(c int) float64 { return float64(c) }

func (g corrGrid) Y(r int) float64 { return float64(r) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.Values[len(g.m.Names)-1-r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Heatmap renders an annotated Pearson correlation heatmap, cell values
// rounded to two decimals.
func Heatmap(m *stats.CorrMatrix) ([]byte, error) {
	n := len(m.Names)
	if n < 2 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(256))
	hm.Min = -1
	hm.Max = 1
	p.Add(hm)

	ticks := make([]plot.Tick, n)
	for i, name := range m.Names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	yTicks := make([]plot.Tick, n)
	for i, name := range m.Names {
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	labels := plotter.XYLabels{}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := m.Values[r][c]
			text := "n/a"
			if !math.IsNaN(v) {
				text = fmt.Sprintf("%.2f", v)
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c) - 0.18, Y: float64(n-1-r) - 0.08})
			labels.Labels = append(labels.Labels, text)
		}
	}
	annot, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to build annotations: %w", err)
	}
	p.Add(annot)

	side := vg.Length(1.2*float64(n)+2) * vg.Inch
	return writePNG(p, side, side)
}
