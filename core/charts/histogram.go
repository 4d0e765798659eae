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
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/datascope/datascope/core/stats"
)

// Histogram renders a binned distribution of a numeric column,
// normalized to a density, with the kernel density estimate overlaid
// when one can be computed. bins <= 0 selects Sturges' rule.
func Histogram(title string, values []float64, bins int) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = sturgesBins(len(values))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Value"
	p.Y.Label.Text = "Density"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("failed to bin values: %w", err)
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xb0}
	p.Add(h)

	if xs, ys := stats.KDE(values, 200); xs != nil {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to build density line: %w", err)
		}
		line.Color = color.RGBA{R: 0xdd, G: 0x84, B: 0x52, A: 0xff}
		line.Width = vg.Points(2)
		p.Add(line)
	}

	return writePNG(p, 6*vg.Inch, 4*vg.Inch)
}

// sturgesBins is the default bin count: ceil(log2 n) + 1.
func sturgesBins(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func writePNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
