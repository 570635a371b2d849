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
	"strconv"
	"strings"

	"github.com/gwpe/prior-plot/inifile"
)

// ParseValue parses a numeric option value. Multiples and fractions of pi
// are accepted, e.g. "pi", "2pi", "0.5*pi", "-pi/2", "3*pi/4".
func ParseValue(s string) (float64, error) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if v == "" {
		return 0, fmt.Errorf("empty value")
	}
	if !strings.Contains(v, "pi") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return f, nil
	}

	factor, rest, _ := strings.Cut(v, "pi")
	factor = strings.TrimSuffix(factor, "*")
	multiplier := 1.0
	switch factor {
	case "", "+":
	case "-":
		multiplier = -1.0
	default:
		f, err := strconv.ParseFloat(factor, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid multiple of pi %q", s)
		}
		multiplier = f
	}
	divisor := 1.0
	if rest != "" {
		d, found := strings.CutPrefix(rest, "/")
		if !found {
			return 0, fmt.Errorf("invalid multiple of pi %q", s)
		}
		f, err := strconv.ParseFloat(d, 64)
		if err != nil || f == 0 {
			return 0, fmt.Errorf("invalid divisor in %q", s)
		}
		divisor = f
	}
	return multiplier * math.Pi / divisor, nil
}

// optionReader reads per-parameter options of a distribution section.
// Options follow the <option>-<param> naming, e.g. min-mass1.
type optionReader struct {
	cfg     *inifile.Config
	section string
}

// has reports whether <option>-<param> is set.
func (r optionReader) has(option, param string) bool {
	return r.cfg.HasOption(r.section, option+"-"+param)
}

// value returns <option>-<param> or def if the option is missing.
func (r optionReader) value(option, param string, def float64) (float64, error) {
	if !r.has(option, param) {
		return def, nil
	}
	return r.required(option, param)
}

// required returns <option>-<param> and fails if it is missing.
func (r optionReader) required(option, param string) (float64, error) {
	name := option + "-" + param
	raw, err := r.cfg.Get(r.section, name)
	if err != nil {
		return 0, err
	}
	v, err := ParseValue(raw)
	if err != nil {
		return 0, fmt.Errorf("option %v in [%v]: %w", name, r.section, err)
	}
	return v, nil
}

// bounds returns the [min, max] bounds of param, falling back to def for
// missing options.
func (r optionReader) bounds(param string, def Bounds) (Bounds, error) {
	lo, err := r.value("min", param, def.Min)
	if err != nil {
		return Bounds{}, err
	}
	hi, err := r.value("max", param, def.Max)
	if err != nil {
		return Bounds{}, err
	}
	b := Bounds{Min: lo, Max: hi}
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min >= b.Max {
		return Bounds{}, fmt.Errorf("invalid bounds for %v in [%v]: min %v must be below max %v", param, r.section, b.Min, b.Max)
	}
	return b, nil
}

// requiredBounds is like bounds but both min and max must be set.
func (r optionReader) requiredBounds(param string) (Bounds, error) {
	if !r.has("min", param) || !r.has("max", param) {
		return Bounds{}, fmt.Errorf("missing min-%v or max-%v in [%v]", param, param, r.section)
	}
	return r.bounds(param, Bounds{})
}

// name returns the string value of a plain option or def if missing.
func (r optionReader) name(option, def string) (string, error) {
	if !r.cfg.HasOption(r.section, option) {
		return def, nil
	}
	return r.cfg.Get(r.section, option)
}
