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
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// MaxRejectionBatches bounds the number of batches drawn while rejecting
// samples that violate a constraint.
const MaxRejectionBatches = 100

// maxBatchFactor caps a rejection batch at maxBatchFactor times the requested samples.
const maxBatchFactor = 10

// JointDistribution combines independent distributions into one distribution
// over all variable parameters, restricted by constraints.
type JointDistribution struct {
	params      []string
	dists       []Distribution
	constraints []Constraint
}

// NewJointDistribution checks that every parameter is covered by exactly one
// distribution and that constraints only read known parameters.
func NewJointDistribution(params []string, dists []Distribution, constraints []Constraint) (*JointDistribution, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no variable parameters")
	}
	owner := make(map[string]string, len(params))
	for _, d := range dists {
		for _, p := range d.Params() {
			if other, found := owner[p]; found {
				return nil, fmt.Errorf("parameter %v has two distributions (%v and %v)", p, other, d.Name())
			}
			owner[p] = d.Name()
		}
	}
	known := make(map[string]bool, len(params))
	for _, p := range params {
		if _, found := owner[p]; !found {
			return nil, fmt.Errorf("parameter %v has no distribution", p)
		}
		known[p] = true
	}
	for p := range owner {
		if !known[p] {
			return nil, fmt.Errorf("distribution given for %v which is not a variable parameter", p)
		}
	}
	for _, c := range constraints {
		for _, p := range c.Params() {
			if !known[p] {
				return nil, fmt.Errorf("constraint %q uses unknown parameter %v", c, p)
			}
		}
	}
	j := &JointDistribution{
		params:      make([]string, len(params)),
		dists:       dists,
		constraints: constraints,
	}
	copy(j.params, params)
	return j, nil
}

// Params returns the variable parameters.
func (j *JointDistribution) Params() []string {
	res := make([]string, len(j.params))
	copy(res, j.params)
	return res
}

// Distributions returns the component distributions.
func (j *JointDistribution) Distributions() []Distribution {
	return j.dists
}

// Constraints returns the constraints of the distribution.
func (j *JointDistribution) Constraints() []Constraint {
	return j.constraints
}

// Bounds returns the support of every parameter.
func (j *JointDistribution) Bounds() map[string]Bounds {
	res := make(map[string]Bounds, len(j.params))
	for _, d := range j.dists {
		for p, b := range d.Bounds() {
			res[p] = b
		}
	}
	return res
}

// satisfied reports whether point passes all constraints.
func (j *JointDistribution) satisfied(point map[string]float64) bool {
	for _, c := range j.constraints {
		if !c.Satisfied(point) {
			return false
		}
	}
	return true
}

// LogPdf returns the unnormalized log density; constraints cut the support
// without renormalizing.
func (j *JointDistribution) LogPdf(point map[string]float64) float64 {
	if !j.satisfied(point) {
		return math.Inf(-1)
	}
	res := 0.0
	for _, d := range j.dists {
		res += d.LogPdf(point)
	}
	return res
}

// draw samples n values from all components.
func (j *JointDistribution) draw(rg *rand.Rand, n int) (*Samples, error) {
	res := NewSamples(nil, n)
	for _, d := range j.dists {
		if err := res.Merge(d.Rvs(rg, n)); err != nil {
			return nil, err
		}
	}
	// keep the columns in the order of the variable parameters
	sort.SliceStable(res.Params, func(a, b int) bool {
		return j.index(res.Params[a]) < j.index(res.Params[b])
	})
	return res, nil
}

func (j *JointDistribution) index(param string) int {
	for i, p := range j.params {
		if p == param {
			return i
		}
	}
	return len(j.params)
}

// Rvs draws exactly n independent samples. With constraints, samples are
// drawn in batches and rejected until n of them satisfy all constraints.
func (j *JointDistribution) Rvs(rg *rand.Rand, n int) (*Samples, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of samples must be positive, got %d", n)
	}
	if len(j.constraints) == 0 {
		return j.draw(rg, n)
	}
	res := NewSamples(j.params, n)
	batch := n
	for i := 0; i < MaxRejectionBatches && res.Len() < n; i++ {
		drawn, err := j.draw(rg, batch)
		if err != nil {
			return nil, err
		}
		accepted := drawn.Filter(j.satisfied)
		if err := res.Append(accepted); err != nil {
			return nil, err
		}
		// scale the next batch by the observed acceptance rate
		if accepted.Len() > 0 {
			missing := n - res.Len()
			batch = int(math.Ceil(float64(missing) * float64(batch) / float64(accepted.Len())))
		} else {
			batch *= 2
		}
		batch = max(1, min(batch, maxBatchFactor*n))
	}
	if res.Len() < n {
		return nil, fmt.Errorf("constraints reject too many samples; only %d of %d drawn after %d batches", res.Len(), n, MaxRejectionBatches)
	}
	res.Truncate(n)
	return res, nil
}
