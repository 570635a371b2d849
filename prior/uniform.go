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

	"gonum.org/v1/gonum/stat/distuv"
)

// Configuration names of the uniform family.
const (
	UniformName         = "uniform"
	UniformLog10Name    = "uniform_log10"
	UniformRadiusName   = "uniform_radius"
	UniformPowerLawName = "uniform_power_law"
)

// uniform is flat between its bounds.
type uniform struct {
	dist distuv.Uniform
}

func newUniformComponent(b Bounds) *uniform {
	return &uniform{dist: distuv.Uniform{Min: b.Min, Max: b.Max}}
}

func (u *uniform) quantile(p float64) float64 {
	return u.dist.Quantile(p)
}

func (u *uniform) logPdf(x float64) float64 {
	return u.dist.LogProb(x)
}

func (u *uniform) support() Bounds {
	return Bounds{Min: u.dist.Min, Max: u.dist.Max}
}

// powerLaw has a density proportional to x^(dim-1) between its bounds. A
// dimension of zero gives the log-uniform density 1/x.
type powerLaw struct {
	bounds  Bounds
	dim     float64
	logNorm float64
}

func newPowerLawComponent(b Bounds, dim float64) (*powerLaw, error) {
	if dim <= 0 && b.Min <= 0 {
		return nil, fmt.Errorf("lower bound must be positive for dimension %v, got %v", dim, b.Min)
	}
	if b.Min < 0 {
		return nil, fmt.Errorf("lower bound must not be negative, got %v", b.Min)
	}
	pl := &powerLaw{bounds: b, dim: dim}
	if dim == 0 {
		pl.logNorm = math.Log(math.Log(b.Max / b.Min))
	} else {
		pl.logNorm = math.Log((math.Pow(b.Max, dim) - math.Pow(b.Min, dim)) / dim)
	}
	return pl, nil
}

func (pl *powerLaw) quantile(p float64) float64 {
	lo, hi := pl.bounds.Min, pl.bounds.Max
	if pl.dim == 0 {
		return lo * math.Pow(hi/lo, p)
	}
	lod, hid := math.Pow(lo, pl.dim), math.Pow(hi, pl.dim)
	return math.Pow(lod+p*(hid-lod), 1/pl.dim)
}

func (pl *powerLaw) logPdf(x float64) float64 {
	return (pl.dim-1)*math.Log(x) - pl.logNorm
}

func (pl *powerLaw) support() Bounds {
	return pl.bounds
}

// NewUniform creates a flat distribution over the given parameters.
func NewUniform(bounds map[string]Bounds, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		b, found := bounds[p]
		if !found {
			return nil, fmt.Errorf("no bounds for parameter %v", p)
		}
		if b.Min >= b.Max {
			return nil, fmt.Errorf("invalid bounds %v for parameter %v", b, p)
		}
		comps[i] = newUniformComponent(b)
	}
	return newProduct(UniformName, params, comps), nil
}

// NewUniformPowerLaw creates a distribution with density x^(dim-1) for every parameter.
func NewUniformPowerLaw(name string, bounds map[string]Bounds, dims map[string]float64, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		b, found := bounds[p]
		if !found {
			return nil, fmt.Errorf("no bounds for parameter %v", p)
		}
		if b.Min >= b.Max {
			return nil, fmt.Errorf("invalid bounds %v for parameter %v", b, p)
		}
		pl, err := newPowerLawComponent(b, dims[p])
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", p, err)
		}
		comps[i] = pl
	}
	return newProduct(name, params, comps), nil
}

func readRequiredBounds(r optionReader, params []string) (map[string]Bounds, error) {
	bounds := make(map[string]Bounds, len(params))
	for _, p := range params {
		b, err := r.requiredBounds(p)
		if err != nil {
			return nil, err
		}
		bounds[p] = b
	}
	return bounds, nil
}

func newUniformFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readRequiredBounds(r, params)
	if err != nil {
		return nil, err
	}
	return NewUniform(bounds, params...)
}

func newUniformLog10FromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readRequiredBounds(r, params)
	if err != nil {
		return nil, err
	}
	return NewUniformPowerLaw(UniformLog10Name, bounds, map[string]float64{}, params...)
}

func newUniformRadiusFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readRequiredBounds(r, params)
	if err != nil {
		return nil, err
	}
	dims := make(map[string]float64, len(params))
	for _, p := range params {
		dims[p] = 3
	}
	return NewUniformPowerLaw(UniformRadiusName, bounds, dims, params...)
}

func newUniformPowerLawFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readRequiredBounds(r, params)
	if err != nil {
		return nil, err
	}
	dims := make(map[string]float64, len(params))
	for _, p := range params {
		if dims[p], err = r.required("dim", p); err != nil {
			return nil, err
		}
	}
	return NewUniformPowerLaw(UniformPowerLawName, bounds, dims, params...)
}
