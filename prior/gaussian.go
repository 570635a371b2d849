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

const GaussianName = "gaussian"

// gaussian is a normal distribution, optionally truncated to its bounds.
type gaussian struct {
	normal         distuv.Normal
	bounds         Bounds
	cdfMin, cdfMax float64
	logMass        float64
}

// GaussianParams configures one parameter of a gaussian distribution.
type GaussianParams struct {
	Mean     float64
	Variance float64
	Bounds   Bounds // infinite bounds disable the truncation
}

func newGaussianComponent(gp GaussianParams) (*gaussian, error) {
	if !(gp.Variance > 0) || math.IsInf(gp.Variance, 1) {
		return nil, fmt.Errorf("variance must be positive and finite, got %v", gp.Variance)
	}
	if gp.Bounds.Min >= gp.Bounds.Max {
		return nil, fmt.Errorf("invalid bounds %v", gp.Bounds)
	}
	g := &gaussian{
		normal: distuv.Normal{Mu: gp.Mean, Sigma: math.Sqrt(gp.Variance)},
		bounds: gp.Bounds,
	}
	g.cdfMin = g.normal.CDF(gp.Bounds.Min)
	g.cdfMax = g.normal.CDF(gp.Bounds.Max)
	mass := g.cdfMax - g.cdfMin
	if !(mass > 0) {
		return nil, fmt.Errorf("bounds %v hold no probability mass for mean %v and variance %v", gp.Bounds, gp.Mean, gp.Variance)
	}
	g.logMass = math.Log(mass)
	return g, nil
}

func (g *gaussian) quantile(p float64) float64 {
	q := g.cdfMin + p*(g.cdfMax-g.cdfMin)
	// the untruncated tails map to +-Inf, so stay inside the open interval
	q = math.Max(q, math.SmallestNonzeroFloat64)
	q = math.Min(q, math.Nextafter(1, 0))
	x := g.normal.Quantile(q)
	return math.Min(math.Max(x, g.bounds.Min), g.bounds.Max)
}

func (g *gaussian) logPdf(x float64) float64 {
	return g.normal.LogProb(x) - g.logMass
}

func (g *gaussian) support() Bounds {
	return g.bounds
}

// NewGaussian creates independent, possibly truncated, normal distributions.
func NewGaussian(gps map[string]GaussianParams, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		gp, found := gps[p]
		if !found {
			return nil, fmt.Errorf("no mean and variance for parameter %v", p)
		}
		g, err := newGaussianComponent(gp)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", p, err)
		}
		comps[i] = g
	}
	return newProduct(GaussianName, params, comps), nil
}

func newGaussianFromConfig(r optionReader, params []string) (Distribution, error) {
	gps := make(map[string]GaussianParams, len(params))
	for _, p := range params {
		mean, err := r.required("mean", p)
		if err != nil {
			return nil, err
		}
		variance, err := r.required("var", p)
		if err != nil {
			return nil, err
		}
		bounds, err := r.bounds(p, Bounds{Min: math.Inf(-1), Max: math.Inf(1)})
		if err != nil {
			return nil, err
		}
		gps[p] = GaussianParams{Mean: mean, Variance: variance, Bounds: bounds}
	}
	return NewGaussian(gps, params...)
}
