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

package prior

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryPercentiles are the percentiles reported for every parameter.
var SummaryPercentiles = []float64{5, 50, 95}

// Summary holds the descriptive statistics of one parameter.
type Summary struct {
	Param       string
	Count       int
	Mean        float64
	StdDev      float64
	Min         float64
	Max         float64
	Percentiles []float64 // values at SummaryPercentiles
}

// Summarize computes descriptive statistics for every parameter.
func Summarize(s *Samples) []Summary {
	res := make([]Summary, 0, len(s.Params))
	for _, p := range s.Params {
		col := s.Columns[p]
		sum := Summary{Param: p, Count: len(col)}
		if len(col) > 0 {
			sum.Mean, sum.StdDev = stat.MeanStdDev(col, nil)
			sum.Min = floats.Min(col)
			sum.Max = floats.Max(col)
			sum.Percentiles = Percentiles(col, SummaryPercentiles...)
		}
		res = append(res, sum)
	}
	return res
}

// Percentiles returns the empirical percentiles (0-100) of values.
func Percentiles(values []float64, percentiles ...float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	res := make([]float64, len(percentiles))
	for i, pct := range percentiles {
		res[i] = stat.Quantile(pct/100, stat.Empirical, sorted, nil)
	}
	return res
}
