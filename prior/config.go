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
	"sort"
	"strings"

	"github.com/gwpe/prior-plot/inifile"
)

// Well-known section names of a prior configuration.
const (
	DefaultPriorSection   = "prior"
	VariableParamsSection = "variable_params"
	StaticParamsSection   = "static_params"
	ConstraintSection     = "constraint"
)

// VarArgsDelim separates the parameters of a multi-dimensional distribution
// in a section tag, e.g. [prior-ra+dec].
const VarArgsDelim = "+"

// ParamsConfig describes the parameters declared in a configuration.
type ParamsConfig struct {
	Variable []string          // sorted variable parameters
	Labels   map[string]string // plot labels of variable parameters, if declared
	Static   map[string]string // fixed parameters and their values
}

// Label returns the plot label of a parameter, defaulting to its name.
func (pc *ParamsConfig) Label(param string) string {
	if label, found := pc.Labels[param]; found && label != "" {
		return label
	}
	return param
}

// ReadParamsFromConfig collects the variable parameters declared by the
// distribution subsections of the given sections. The result is the sorted
// union of all parameters named in the section tags.
func ReadParamsFromConfig(cfg *inifile.Config, sections []string) (*ParamsConfig, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no prior section given")
	}
	seen := map[string]bool{}
	for _, section := range sections {
		for _, tag := range cfg.Subsections(section) {
			for _, p := range strings.Split(tag, VarArgsDelim) {
				if p != "" {
					seen[p] = true
				}
			}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no distributions found in sections %v", sections)
	}
	pc := &ParamsConfig{
		Labels: map[string]string{},
		Static: map[string]string{},
	}
	for p := range seen {
		pc.Variable = append(pc.Variable, p)
	}
	sort.Strings(pc.Variable)

	if cfg.HasSection(VariableParamsSection) {
		labels, err := cfg.Items(VariableParamsSection)
		if err != nil {
			return nil, err
		}
		for p, label := range labels {
			if !seen[p] {
				return nil, fmt.Errorf("variable parameter %v has no distribution in sections %v", p, sections)
			}
			pc.Labels[p] = label
		}
	}
	if cfg.HasSection(StaticParamsSection) {
		static, err := cfg.Items(StaticParamsSection)
		if err != nil {
			return nil, err
		}
		for p, value := range static {
			if seen[p] {
				return nil, fmt.Errorf("parameter %v is both static and variable", p)
			}
			pc.Static[p] = value
		}
	}
	return pc, nil
}

// ReadDistributionsFromConfig creates one distribution per subsection of section.
func ReadDistributionsFromConfig(cfg *inifile.Config, section string) ([]Distribution, error) {
	var dists []Distribution
	for _, tag := range cfg.Subsections(section) {
		d, err := NewFromConfig(cfg, section, tag)
		if err != nil {
			return nil, err
		}
		dists = append(dists, d)
	}
	return dists, nil
}

// ReadConstraintsFromConfig reads all [constraint-<tag>] sections.
func ReadConstraintsFromConfig(cfg *inifile.Config) ([]Constraint, error) {
	var constraints []Constraint
	for _, tag := range cfg.Subsections(ConstraintSection) {
		section := ConstraintSection + inifile.SubsectionDelim + tag
		name, err := cfg.Get(section, "name")
		if err != nil {
			return nil, err
		}
		if name != CustomConstraintName {
			return nil, fmt.Errorf("unknown constraint %q in [%v]; only %q is supported", name, section, CustomConstraintName)
		}
		expr, err := cfg.Get(section, "constraint_arg")
		if err != nil {
			return nil, err
		}
		c, err := NewCustomConstraint(expr)
		if err != nil {
			return nil, fmt.Errorf("section [%v]: %w", section, err)
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

// NewJointDistributionFromConfig reads parameters, distributions and
// constraints of the given sections and combines them.
func NewJointDistributionFromConfig(cfg *inifile.Config, sections []string) (*JointDistribution, *ParamsConfig, error) {
	pc, err := ReadParamsFromConfig(cfg, sections)
	if err != nil {
		return nil, nil, err
	}
	var dists []Distribution
	for _, section := range sections {
		d, err := ReadDistributionsFromConfig(cfg, section)
		if err != nil {
			return nil, nil, err
		}
		dists = append(dists, d...)
	}
	constraints, err := ReadConstraintsFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	joint, err := NewJointDistribution(pc.Variable, dists, constraints)
	if err != nil {
		return nil, nil, err
	}
	return joint, pc, nil
}
