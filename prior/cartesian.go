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

// Cartesian returns every combination of one value per axis. The last axis
// varies fastest; an empty axis yields no combinations.
func Cartesian(axes ...[]float64) [][]float64 {
	if len(axes) == 0 {
		return nil
	}
	total := 1
	for _, axis := range axes {
		total *= len(axis)
	}
	res := make([][]float64, 0, total)
	if total == 0 {
		return res
	}
	idx := make([]int, len(axes))
	for {
		point := make([]float64, len(axes))
		for i, axis := range axes {
			point[i] = axis[idx[i]]
		}
		res = append(res, point)

		// advance the odometer
		k := len(axes) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(axes[k]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return res
		}
	}
}
