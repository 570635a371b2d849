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

// Package prior builds prior distributions from workflow configuration files,
// combines them into a joint distribution and draws samples from it.
package prior

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gwpe/prior-plot/inifile"
	"golang.org/x/exp/rand"
)

// Bounds is the closed interval [Min, Max] of a parameter.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether x lies within the bounds.
func (b Bounds) Contains(x float64) bool {
	return x >= b.Min && x <= b.Max
}

// Width returns the length of the interval.
func (b Bounds) Width() float64 {
	return b.Max - b.Min
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Min, b.Max)
}

// Distribution is a prior over one or more parameters.
type Distribution interface {
	// Name returns the configuration name of the distribution, e.g. uniform.
	Name() string
	// Params returns the parameters the distribution is defined over.
	Params() []string
	// Bounds returns the support of every parameter.
	Bounds() map[string]Bounds
	// Rvs draws n independent samples.
	Rvs(rg *rand.Rand, n int) *Samples
	// LogPdf returns the log density at point, -Inf outside the support.
	LogPdf(point map[string]float64) float64
}

// component is a one-dimensional distribution sampled by inverse transform.
type component interface {
	// quantile maps a probability p in [0, 1) to a value of the parameter.
	quantile(p float64) float64
	logPdf(x float64) float64
	support() Bounds
}

// product is a distribution of independent parameters.
type product struct {
	name   string
	params []string
	comps  []component
}

func newProduct(name string, params []string, comps []component) *product {
	return &product{name: name, params: params, comps: comps}
}

func (d *product) Name() string {
	return d.name
}

func (d *product) Params() []string {
	res := make([]string, len(d.params))
	copy(res, d.params)
	return res
}

func (d *product) Bounds() map[string]Bounds {
	res := make(map[string]Bounds, len(d.params))
	for i, p := range d.params {
		res[p] = d.comps[i].support()
	}
	return res
}

func (d *product) Rvs(rg *rand.Rand, n int) *Samples {
	s := NewSamples(d.params, n)
	for i := 0; i < n; i++ {
		for j, p := range d.params {
			s.Columns[p] = append(s.Columns[p], d.comps[j].quantile(rg.Float64()))
		}
	}
	return s
}

func (d *product) LogPdf(point map[string]float64) float64 {
	res := 0.0
	for i, p := range d.params {
		x, found := point[p]
		if !found || !d.comps[i].support().Contains(x) {
			return math.Inf(-1)
		}
		res += d.comps[i].logPdf(x)
	}
	return res
}

// newFunc constructs a distribution from the section <prefix>-<tag>.
type newFunc func(r optionReader, params []string) (Distribution, error)

// registry maps the configuration names to their constructors.
var registry = map[string]newFunc{
	UniformName:           newUniformFromConfig,
	UniformAngleName:      newUniformAngleFromConfig,
	SinAngleName:          newSinAngleFromConfig,
	CosAngleName:          newCosAngleFromConfig,
	UniformSolidAngleName: newUniformSolidAngleFromConfig,
	UniformSkyName:        newUniformSkyFromConfig,
	GaussianName:          newGaussianFromConfig,
	UniformLog10Name:      newUniformLog10FromConfig,
	UniformRadiusName:     newUniformRadiusFromConfig,
	UniformPowerLawName:   newUniformPowerLawFromConfig,
}

// Names returns the sorted names of all supported distributions.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromConfig builds the distribution described by [<section>-<tag>].
// The tag names the parameters joined by VarArgsDelim.
func NewFromConfig(cfg *inifile.Config, section, tag string) (Distribution, error) {
	sectionName := section + inifile.SubsectionDelim + tag
	r := optionReader{cfg: cfg, section: sectionName}
	name, err := r.name("name", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("section [%v] does not name a distribution", sectionName)
	}
	create, found := registry[name]
	if !found {
		return nil, fmt.Errorf("unknown distribution %q in [%v]; supported are %v", name, sectionName, strings.Join(Names(), ", "))
	}
	params := strings.Split(tag, VarArgsDelim)
	for _, p := range params {
		if p == "" {
			return nil, fmt.Errorf("empty parameter name in section [%v]", sectionName)
		}
	}
	dist, err := create(r, params)
	if err != nil {
		return nil, fmt.Errorf("cannot create %v distribution; %w", name, err)
	}
	return dist, nil
}
