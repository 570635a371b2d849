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
	"fmt"
)

// Samples stores drawn values column-wise, one column per parameter.
type Samples struct {
	Params  []string             // parameter order
	Columns map[string][]float64 // values of every parameter, all of equal length
}

// NewSamples creates empty columns with room for capacity values.
func NewSamples(params []string, capacity int) *Samples {
	s := &Samples{
		Params:  make([]string, len(params)),
		Columns: make(map[string][]float64, len(params)),
	}
	copy(s.Params, params)
	for _, p := range params {
		s.Columns[p] = make([]float64, 0, capacity)
	}
	return s
}

// Len returns the number of samples.
func (s *Samples) Len() int {
	if len(s.Params) == 0 {
		return 0
	}
	return len(s.Columns[s.Params[0]])
}

// Column returns the values of a parameter.
func (s *Samples) Column(param string) ([]float64, error) {
	col, found := s.Columns[param]
	if !found {
		return nil, fmt.Errorf("no samples for parameter %v", param)
	}
	return col, nil
}

// Point returns the i-th sample as a parameter to value map.
func (s *Samples) Point(i int) map[string]float64 {
	point := make(map[string]float64, len(s.Params))
	for _, p := range s.Params {
		point[p] = s.Columns[p][i]
	}
	return point
}

// Merge adds the columns of other, which must hold the same number of
// samples and no parameter already present.
func (s *Samples) Merge(other *Samples) error {
	if len(s.Params) > 0 && other.Len() != s.Len() {
		return fmt.Errorf("cannot merge %d samples into %d samples", other.Len(), s.Len())
	}
	for _, p := range other.Params {
		if _, found := s.Columns[p]; found {
			return fmt.Errorf("parameter %v sampled twice", p)
		}
	}
	for _, p := range other.Params {
		s.Params = append(s.Params, p)
		s.Columns[p] = other.Columns[p]
	}
	return nil
}

// Append adds the rows of other, which must have the same parameters.
func (s *Samples) Append(other *Samples) error {
	for _, p := range s.Params {
		if _, found := other.Columns[p]; !found {
			return fmt.Errorf("parameter %v missing in appended samples", p)
		}
	}
	for _, p := range s.Params {
		s.Columns[p] = append(s.Columns[p], other.Columns[p]...)
	}
	return nil
}

// Filter keeps the samples for which keep returns true.
func (s *Samples) Filter(keep func(point map[string]float64) bool) *Samples {
	res := NewSamples(s.Params, s.Len())
	for i := 0; i < s.Len(); i++ {
		if !keep(s.Point(i)) {
			continue
		}
		for _, p := range s.Params {
			res.Columns[p] = append(res.Columns[p], s.Columns[p][i])
		}
	}
	return res
}

// Truncate drops all but the first n samples.
func (s *Samples) Truncate(n int) {
	if n >= s.Len() {
		return
	}
	for _, p := range s.Params {
		s.Columns[p] = s.Columns[p][:n]
	}
}

// Subset returns the samples of the given parameters, sharing their columns.
func (s *Samples) Subset(params []string) (*Samples, error) {
	res := &Samples{Columns: make(map[string][]float64, len(params))}
	for _, p := range params {
		col, err := s.Column(p)
		if err != nil {
			return nil, err
		}
		res.Params = append(res.Params, p)
		res.Columns[p] = col
	}
	return res, nil
}
