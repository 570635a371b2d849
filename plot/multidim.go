// Copyright 2024 Fantom Foundation
// This file is part of prior-plot, the prior sampling and plotting tool.
//
// prior-plot is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// prior-plot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with prior-plot. If not, see <http://www.gnu.org/licenses/>.

// Package plot renders samples as a corner plot: marginal histograms on the
// diagonal and two-dimensional densities below it.
package plot

import (
	"fmt"

	"github.com/gwpe/prior-plot/prior"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// marginalPercentiles are marked by dashed lines in the marginal histograms.
var marginalPercentiles = []float64{5, 50, 95}

// Figure is a grid of panels, row j and column i show parameter j against
// parameter i; only panels with i <= j are populated.
type Figure struct {
	params  []string
	labels  []string
	ranges  []axisRange
	panels  [][]*plot.Plot
	hists   []*plotter.Histogram
	grids   map[[2]int]*densityGrid
	samples *prior.Samples
	opts    Options
}

// Params returns the plotted parameters in panel order.
func (f *Figure) Params() []string {
	return f.params
}

// Size returns the width and height of the rendered figure.
func (f *Figure) Size() (vg.Length, vg.Length) {
	side := f.opts.PanelSize * vg.Length(len(f.params))
	return side, side
}

// Panel returns the panel in row j and column i, nil for empty panels.
func (f *Figure) Panel(j, i int) *plot.Plot {
	return f.panels[j][i]
}

// NewMultidimPlot creates the corner plot of the given parameters. labels
// maps parameters to axis labels; missing labels default to the name.
func NewMultidimPlot(params []string, labels map[string]string, samples *prior.Samples, opts Options) (*Figure, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no parameters to plot")
	}
	if samples.Len() == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	f := &Figure{
		params:  params,
		labels:  make([]string, len(params)),
		ranges:  make([]axisRange, len(params)),
		panels:  make([][]*plot.Plot, len(params)),
		hists:   make([]*plotter.Histogram, len(params)),
		grids:   map[[2]int]*densityGrid{},
		samples: samples,
		opts:    opts,
	}
	for i, p := range params {
		col, err := samples.Column(p)
		if err != nil {
			return nil, err
		}
		f.labels[i] = p
		if label, found := labels[p]; found && label != "" {
			f.labels[i] = label
		}
		f.ranges[i] = newAxisRange(col, lookup(opts.Mins, p), lookup(opts.Maxs, p))
	}

	n := len(params)
	for j := 0; j < n; j++ {
		f.panels[j] = make([]*plot.Plot, n)
		for i := 0; i <= j; i++ {
			var err error
			if i == j {
				err = f.addMarginal(i)
			} else {
				err = f.addJoint(j, i)
			}
			if err != nil {
				return nil, fmt.Errorf("cannot plot %v against %v; %w", params[j], params[i], err)
			}
			f.decorate(j, i)
		}
	}
	return f, nil
}

func lookup(m map[string]float64, key string) *float64 {
	if v, found := m[key]; found {
		return &v
	}
	return nil
}

// inRange returns the values of param within the plotted range.
func (f *Figure) inRange(i int) []float64 {
	var res []float64
	for _, x := range f.samples.Columns[f.params[i]] {
		if f.ranges[i].contains(x) {
			res = append(res, x)
		}
	}
	return res
}

// addMarginal creates the histogram panel of parameter i.
func (f *Figure) addMarginal(i int) error {
	values := f.inRange(i)
	if len(values) == 0 {
		return fmt.Errorf("no samples of %v within [%v, %v]", f.params[i], f.ranges[i].min, f.ranges[i].max)
	}
	hist, err := plotter.NewHist(plotter.Values(values), f.opts.Bins)
	if err != nil {
		return err
	}
	hist.Normalize(1)
	f.hists[i] = hist
	if !f.opts.Marginal {
		return nil
	}

	p := plot.New()
	hist.FillColor = histogramColor
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	top := 0.0
	for _, bin := range hist.Bins {
		if bin.Weight > top {
			top = bin.Weight
		}
	}
	for _, x := range prior.Percentiles(values, marginalPercentiles...) {
		line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
		if err != nil {
			return err
		}
		line.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		line.LineStyle.Width = vg.Points(0.75)
		p.Add(line)
	}
	p.Y.Min = 0
	p.Y.Max = top * 1.05
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick { return nil })
	f.panels[i][i] = p
	return nil
}

// addJoint creates the panel of parameter j (vertical) against i (horizontal).
func (f *Figure) addJoint(j, i int) error {
	p := plot.New()
	xs, ys := f.samples.Columns[f.params[i]], f.samples.Columns[f.params[j]]

	if f.opts.Density || f.opts.Contours {
		grid := newDensityGrid(xs, ys, f.ranges[i], f.ranges[j], f.opts.GridSize)
		f.grids[[2]int{j, i}] = grid
		if f.opts.Density && grid.max() > 0 {
			heat := plotter.NewHeatMap(grid, densityPalette)
			p.Add(heat)
		}
		if f.opts.Contours {
			if levels := contourLevels(grid, f.opts.ContourPercentiles); len(levels) > 0 {
				contour := plotter.NewContour(grid, levels, contourPalette)
				p.Add(contour)
			}
		}
	}
	if f.opts.Scatter {
		pts := make(plotter.XYs, 0, f.opts.MaxScatterPoints)
		stride := max(1, len(xs)/f.opts.MaxScatterPoints)
		for k := 0; k < len(xs) && len(pts) < f.opts.MaxScatterPoints; k += stride {
			if f.ranges[i].contains(xs[k]) && f.ranges[j].contains(ys[k]) {
				pts = append(pts, plotter.XY{X: xs[k], Y: ys[k]})
			}
		}
		if len(pts) > 0 {
			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			scatter.GlyphStyle.Color = scatterColor
			scatter.GlyphStyle.Radius = vg.Points(0.6)
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(scatter)
		}
	}
	p.Y.Min, p.Y.Max = f.ranges[j].min, f.ranges[j].max
	f.panels[j][i] = p
	return nil
}

// decorate fixes the horizontal range and labels the outer axes only.
func (f *Figure) decorate(j, i int) {
	p := f.panels[j][i]
	if p == nil {
		return
	}
	p.X.Min, p.X.Max = f.ranges[i].min, f.ranges[i].max
	if j == len(f.params)-1 {
		p.X.Label.Text = f.labels[i]
	} else {
		p.X.Tick.Marker = unlabeledTicks
	}
	if i == j {
		return
	}
	if i == 0 {
		p.Y.Label.Text = f.labels[j]
	} else {
		p.Y.Tick.Marker = unlabeledTicks
	}
}

// unlabeledTicks keeps the default tick positions of inner panels but drops their labels.
var unlabeledTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for k := range ticks {
		ticks[k].Label = ""
	}
	return ticks
})

// Draw renders all panels on the canvas.
func (f *Figure) Draw(dc draw.Canvas) {
	n := len(f.params)
	tiles := draw.Tiles{
		Rows:      n,
		Cols:      n,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	canvases := plot.Align(f.panels, tiles, dc)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if f.panels[j][i] != nil {
				f.panels[j][i].Draw(canvases[j][i])
			}
		}
	}
}
