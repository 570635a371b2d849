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
)

// Configuration names of the angular distributions.
const (
	UniformAngleName      = "uniform_angle"
	SinAngleName          = "sin_angle"
	CosAngleName          = "cos_angle"
	UniformSolidAngleName = "uniform_solidangle"
	UniformSkyName        = "uniform_sky"
)

// Default supports of the angular distributions.
var (
	uniformAngleDomain = Bounds{Min: 0, Max: 2 * math.Pi}
	sinAngleDomain     = Bounds{Min: 0, Max: math.Pi}
	cosAngleDomain     = Bounds{Min: -math.Pi / 2, Max: math.Pi / 2}
)

// Default parameter names of the solid-angle distributions.
const (
	defaultPolarAngle     = "theta"
	defaultAzimuthalAngle = "phi"
	skyPolarAngle         = "dec"
	skyAzimuthalAngle     = "ra"
)

// sinAngle has a density proportional to sin(x), i.e. an isotropic polar angle.
type sinAngle struct {
	bounds Bounds
	norm   float64 // cos(min) - cos(max)
}

func newSinAngleComponent(b Bounds) (*sinAngle, error) {
	if b.Min < sinAngleDomain.Min || b.Max > sinAngleDomain.Max {
		return nil, fmt.Errorf("bounds %v exceed the domain %v", b, sinAngleDomain)
	}
	return &sinAngle{bounds: b, norm: math.Cos(b.Min) - math.Cos(b.Max)}, nil
}

func (s *sinAngle) quantile(p float64) float64 {
	return math.Acos(math.Cos(s.bounds.Min) - p*s.norm)
}

func (s *sinAngle) logPdf(x float64) float64 {
	return math.Log(math.Sin(x)) - math.Log(s.norm)
}

func (s *sinAngle) support() Bounds {
	return s.bounds
}

// cosAngle has a density proportional to cos(x), i.e. an isotropic declination.
type cosAngle struct {
	bounds Bounds
	norm   float64 // sin(max) - sin(min)
}

func newCosAngleComponent(b Bounds) (*cosAngle, error) {
	if b.Min < cosAngleDomain.Min || b.Max > cosAngleDomain.Max {
		return nil, fmt.Errorf("bounds %v exceed the domain %v", b, cosAngleDomain)
	}
	return &cosAngle{bounds: b, norm: math.Sin(b.Max) - math.Sin(b.Min)}, nil
}

func (c *cosAngle) quantile(p float64) float64 {
	return math.Asin(math.Sin(c.bounds.Min) + p*c.norm)
}

func (c *cosAngle) logPdf(x float64) float64 {
	return math.Log(math.Cos(x)) - math.Log(c.norm)
}

func (c *cosAngle) support() Bounds {
	return c.bounds
}

// readAngleBounds reads min/max of every parameter, defaulting to domain.
func readAngleBounds(r optionReader, params []string, domain Bounds) (map[string]Bounds, error) {
	bounds := make(map[string]Bounds, len(params))
	for _, p := range params {
		b, err := r.bounds(p, domain)
		if err != nil {
			return nil, err
		}
		bounds[p] = b
	}
	return bounds, nil
}

// NewUniformAngle creates a flat distribution of angles; bounds default to [0, 2pi].
func NewUniformAngle(bounds map[string]Bounds, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		b, found := bounds[p]
		if !found {
			b = uniformAngleDomain
		}
		if b.Min >= b.Max {
			return nil, fmt.Errorf("invalid bounds %v for parameter %v", b, p)
		}
		comps[i] = newUniformComponent(b)
	}
	return newProduct(UniformAngleName, params, comps), nil
}

// NewSinAngle creates a sine distribution of angles; bounds default to [0, pi].
func NewSinAngle(bounds map[string]Bounds, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		b, found := bounds[p]
		if !found {
			b = sinAngleDomain
		}
		c, err := newSinAngleComponent(b)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", p, err)
		}
		comps[i] = c
	}
	return newProduct(SinAngleName, params, comps), nil
}

// NewCosAngle creates a cosine distribution of angles; bounds default to [-pi/2, pi/2].
func NewCosAngle(bounds map[string]Bounds, params ...string) (Distribution, error) {
	comps := make([]component, len(params))
	for i, p := range params {
		b, found := bounds[p]
		if !found {
			b = cosAngleDomain
		}
		c, err := newCosAngleComponent(b)
		if err != nil {
			return nil, fmt.Errorf("parameter %v: %w", p, err)
		}
		comps[i] = c
	}
	return newProduct(CosAngleName, params, comps), nil
}

// NewUniformSolidAngle creates an isotropic distribution on the sphere with a
// polar angle in [0, pi] and an azimuthal angle in [0, 2pi].
func NewUniformSolidAngle(polar, azimuthal string, polarBounds, azimuthalBounds Bounds) (Distribution, error) {
	return newSolidAngle(UniformSolidAngleName, polar, azimuthal, polarBounds, azimuthalBounds, false)
}

// NewUniformSky creates an isotropic sky distribution with a declination in
// [-pi/2, pi/2] and a right ascension in [0, 2pi].
func NewUniformSky(polar, azimuthal string, polarBounds, azimuthalBounds Bounds) (Distribution, error) {
	return newSolidAngle(UniformSkyName, polar, azimuthal, polarBounds, azimuthalBounds, true)
}

func newSolidAngle(name, polar, azimuthal string, polarBounds, azimuthalBounds Bounds, sky bool) (Distribution, error) {
	if polar == azimuthal {
		return nil, fmt.Errorf("polar and azimuthal angle must differ, both are %v", polar)
	}
	var polarComp component
	var err error
	if sky {
		polarComp, err = newCosAngleComponent(polarBounds)
	} else {
		polarComp, err = newSinAngleComponent(polarBounds)
	}
	if err != nil {
		return nil, fmt.Errorf("polar angle %v: %w", polar, err)
	}
	if azimuthalBounds.Min >= azimuthalBounds.Max {
		return nil, fmt.Errorf("invalid bounds %v for azimuthal angle %v", azimuthalBounds, azimuthal)
	}
	return newProduct(name, []string{polar, azimuthal}, []component{polarComp, newUniformComponent(azimuthalBounds)}), nil
}

func newUniformAngleFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readAngleBounds(r, params, uniformAngleDomain)
	if err != nil {
		return nil, err
	}
	return NewUniformAngle(bounds, params...)
}

func newSinAngleFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readAngleBounds(r, params, sinAngleDomain)
	if err != nil {
		return nil, err
	}
	return NewSinAngle(bounds, params...)
}

func newCosAngleFromConfig(r optionReader, params []string) (Distribution, error) {
	bounds, err := readAngleBounds(r, params, cosAngleDomain)
	if err != nil {
		return nil, err
	}
	return NewCosAngle(bounds, params...)
}

// solidAngleFromConfig reads the angle names and bounds of a solid-angle
// section; the section tag must list exactly the two angles.
func solidAngleFromConfig(r optionReader, params []string, sky bool) (Distribution, error) {
	polarDefault, azimuthalDefault, polarDomain := defaultPolarAngle, defaultAzimuthalAngle, sinAngleDomain
	if sky {
		polarDefault, azimuthalDefault, polarDomain = skyPolarAngle, skyAzimuthalAngle, cosAngleDomain
	}
	polar, err := r.name("polar-angle", polarDefault)
	if err != nil {
		return nil, err
	}
	azimuthal, err := r.name("azimuthal-angle", azimuthalDefault)
	if err != nil {
		return nil, err
	}
	if len(params) != 2 || !containsAll(params, polar, azimuthal) {
		return nil, fmt.Errorf("section [%v] must be tagged with the angles %v and %v, got %v", r.section, polar, azimuthal, params)
	}
	polarBounds, err := r.bounds(polar, polarDomain)
	if err != nil {
		return nil, err
	}
	azimuthalBounds, err := r.bounds(azimuthal, uniformAngleDomain)
	if err != nil {
		return nil, err
	}
	if sky {
		return NewUniformSky(polar, azimuthal, polarBounds, azimuthalBounds)
	}
	return NewUniformSolidAngle(polar, azimuthal, polarBounds, azimuthalBounds)
}

func newUniformSolidAngleFromConfig(r optionReader, params []string) (Distribution, error) {
	return solidAngleFromConfig(r, params, false)
}

func newUniformSkyFromConfig(r optionReader, params []string) (Distribution, error) {
	return solidAngleFromConfig(r, params, true)
}

// containsAll reports whether every name is in list.
func containsAll(list []string, names ...string) bool {
	for _, name := range names {
		found := false
		for _, item := range list {
			if item == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
