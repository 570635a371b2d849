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
	"fmt"

	"gonum.org/v1/plot/vg"
)

// Default values of the plot options.
const (
	DefaultBins             = 50
	DefaultGridSize         = 40
	DefaultMaxScatterPoints = 2000
	DefaultPanelSize        = 2 * vg.Inch
)

// DefaultContourPercentiles are the probability masses enclosed by contours.
var DefaultContourPercentiles = []float64{50, 90}

// Options selects what the multi-dimensional plot shows.
type Options struct {
	Marginal           bool      // histograms on the diagonal
	Scatter            bool      // samples in the off-diagonal panels
	Density            bool      // smoothed density in the off-diagonal panels
	Contours           bool      // credible contours in the off-diagonal panels
	ContourPercentiles []float64 // enclosed probability in percent
	Bins               int       // histogram bins
	GridSize           int       // density grid points per axis
	MaxScatterPoints   int       // scatter is thinned to this many points

	Mins map[string]float64 // lower axis limits, sample minimum if missing
	Maxs map[string]float64 // upper axis limits, sample maximum if missing

	PanelSize vg.Length // width and height of a single panel
}

// DefaultOptions shows marginals, density and contours.
func DefaultOptions() Options {
	percentiles := make([]float64, len(DefaultContourPercentiles))
	copy(percentiles, DefaultContourPercentiles)
	return Options{
		Marginal:           true,
		Density:            true,
		Contours:           true,
		ContourPercentiles: percentiles,
		Bins:               DefaultBins,
		GridSize:           DefaultGridSize,
		MaxScatterPoints:   DefaultMaxScatterPoints,
		Mins:               map[string]float64{},
		Maxs:               map[string]float64{},
		PanelSize:          DefaultPanelSize,
	}
}

// validate checks the options and fills in missing defaults.
// Validate reports invalid options without filling in defaults.
func (o Options) Validate() error {
	return o.validate()
}

func (o *Options) validate() error {
	if o.Bins <= 0 {
		return fmt.Errorf("number of bins must be positive, got %d", o.Bins)
	}
	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	if o.GridSize < 2 {
		return fmt.Errorf("density grid needs at least 2 points per axis, got %d", o.GridSize)
	}
	if o.MaxScatterPoints <= 0 {
		o.MaxScatterPoints = DefaultMaxScatterPoints
	}
	if o.PanelSize <= 0 {
		o.PanelSize = DefaultPanelSize
	}
	for _, p := range o.ContourPercentiles {
		if !(p > 0 && p < 100) {
			return fmt.Errorf("contour percentiles must be in (0, 100), got %v", p)
		}
	}
	if o.Mins == nil {
		o.Mins = map[string]float64{}
	}
	if o.Maxs == nil {
		o.Maxs = map[string]float64{}
	}
	return nil
}
