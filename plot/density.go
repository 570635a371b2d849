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

package plot

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// axisRange is the plotted interval of a parameter.
type axisRange struct {
	min, max float64
}

func (r axisRange) contains(x float64) bool {
	return x >= r.min && x <= r.max
}

// newAxisRange uses the overrides if given, the sample extent otherwise.
// Degenerate ranges are widened so that every panel has a positive extent.
func newAxisRange(values []float64, min, max *float64) axisRange {
	r := axisRange{min: floats.Min(values), max: floats.Max(values)}
	if min != nil {
		r.min = *min
	}
	if max != nil {
		r.max = *max
	}
	if r.max <= r.min {
		pad := math.Max(math.Abs(r.min)*1e-3, 1e-3)
		r.min, r.max = r.min-pad, r.min+pad
	}
	return r
}

// densityGrid is a binned and smoothed two-dimensional density estimate.
// It implements plotter.GridXYZ.
type densityGrid struct {
	xs, ys []float64   // cell centers
	z      [][]float64 // z[c][r] is the density at (xs[c], ys[r])
	dx, dy float64     // cell sizes
}

func (g *densityGrid) Dims() (c, r int) {
	return len(g.xs), len(g.ys)
}

func (g *densityGrid) Z(c, r int) float64 {
	return g.z[c][r]
}

func (g *densityGrid) X(c int) float64 {
	return g.xs[c]
}

func (g *densityGrid) Y(r int) float64 {
	return g.ys[r]
}

// max returns the largest density of the grid.
func (g *densityGrid) max() float64 {
	res := 0.0
	for _, col := range g.z {
		res = math.Max(res, floats.Max(col))
	}
	return res
}

// cellCenters splits r into n cells and returns their centers and width.
func cellCenters(r axisRange, n int) ([]float64, float64) {
	width := (r.max - r.min) / float64(n)
	centers := make([]float64, n)
	for i := range centers {
		centers[i] = r.min + (float64(i)+0.5)*width
	}
	return centers, width
}

// cellIndex returns the cell of x, clamping the upper boundary into the last cell.
func cellIndex(x float64, r axisRange, n int) int {
	i := int((x - r.min) / (r.max - r.min) * float64(n))
	if i == n {
		i--
	}
	return i
}

// newDensityGrid bins the samples into an n x n grid and smooths the counts
// with a Gaussian kernel whose width follows Scott's rule. The result is
// normalized to unit probability mass.
func newDensityGrid(xs, ys []float64, xr, yr axisRange, n int) *densityGrid {
	g := &densityGrid{z: make([][]float64, n)}
	g.xs, g.dx = cellCenters(xr, n)
	g.ys, g.dy = cellCenters(yr, n)
	for c := range g.z {
		g.z[c] = make([]float64, n)
	}
	var inside []int
	for i := range xs {
		if xr.contains(xs[i]) && yr.contains(ys[i]) {
			g.z[cellIndex(xs[i], xr, n)][cellIndex(ys[i], yr, n)]++
			inside = append(inside, i)
		}
	}
	if len(inside) == 0 {
		return g
	}

	// Scott's rule in two dimensions: h = sigma * n^(-1/6)
	factor := math.Pow(float64(len(inside)), -1.0/6.0)
	sx := bandwidthInCells(xs, inside, factor, g.dx)
	sy := bandwidthInCells(ys, inside, factor, g.dy)
	g.z = smoothColumns(g.z, sy)
	g.z = transpose(smoothColumns(transpose(g.z), sx))

	total := 0.0
	for _, col := range g.z {
		total += floats.Sum(col)
	}
	if total > 0 {
		scale := 1 / (total * g.dx * g.dy)
		for _, col := range g.z {
			floats.Scale(scale, col)
		}
	}
	return g
}

// bandwidthInCells converts the kernel width of the selected values into grid cells.
func bandwidthInCells(values []float64, selected []int, factor, cell float64) float64 {
	sel := make([]float64, len(selected))
	for i, idx := range selected {
		sel[i] = values[idx]
	}
	sigma := stat.StdDev(sel, nil)
	if math.IsNaN(sigma) || sigma == 0 {
		return 0
	}
	return sigma * factor / cell
}

// smoothColumns convolves every column with a Gaussian of sigma cells.
func smoothColumns(z [][]float64, sigma float64) [][]float64 {
	if sigma < 1e-3 {
		return z
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	res := make([][]float64, len(z))
	for c, col := range z {
		res[c] = make([]float64, len(col))
		for r := range col {
			sum := 0.0
			for k, w := range kernel {
				if idx := r + k - radius; idx >= 0 && idx < len(col) {
					sum += w * col[idx]
				}
			}
			res[c][r] = sum
		}
	}
	return res
}

func transpose(z [][]float64) [][]float64 {
	if len(z) == 0 {
		return z
	}
	res := make([][]float64, len(z[0]))
	for r := range res {
		res[r] = make([]float64, len(z))
		for c := range z {
			res[r][c] = z[c][r]
		}
	}
	return res
}

// contourLevels returns, for every percentile, the density above which the
// grid holds that fraction of the total probability mass. Levels are sorted
// ascending and without duplicates.
func contourLevels(g *densityGrid, percentiles []float64) []float64 {
	var values []float64
	for _, col := range g.z {
		values = append(values, col...)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	total := floats.Sum(values)
	if total <= 0 {
		return nil
	}
	cumulative := make([]float64, len(values))
	floats.CumSum(cumulative, values)

	var levels []float64
	for _, pct := range percentiles {
		target := pct / 100 * total
		idx := sort.SearchFloat64s(cumulative, target)
		if idx >= len(values) {
			idx = len(values) - 1
		}
		if values[idx] > 0 {
			levels = append(levels, values[idx])
		}
	}
	sort.Float64s(levels)
	return dedupe(levels)
}

func dedupe(sorted []float64) []float64 {
	var res []float64
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			res = append(res, v)
		}
	}
	return res
}

// gradient is a palette fading linearly between two colors.
type gradient struct {
	from, to color.RGBA
	n        int
}

func (g gradient) Colors() []color.Color {
	res := make([]color.Color, g.n)
	for i := range res {
		t := float64(i) / float64(g.n-1)
		mix := func(a, b uint8) uint8 {
			return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
		}
		res[i] = color.RGBA{
			R: mix(g.from.R, g.to.R),
			G: mix(g.from.G, g.to.G),
			B: mix(g.from.B, g.to.B),
			A: mix(g.from.A, g.to.A),
		}
	}
	return res
}

// Colors of the figure.
var (
	densityPalette = gradient{from: color.RGBA{R: 255, G: 255, B: 255, A: 255}, to: color.RGBA{R: 8, G: 48, B: 107, A: 255}, n: 64}
	contourPalette = gradient{from: color.RGBA{A: 255}, to: color.RGBA{A: 255}, n: 2}
	histogramColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	scatterColor   = color.RGBA{R: 60, G: 60, B: 60, A: 120}
)
