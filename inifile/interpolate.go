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

package inifile

import (
	"fmt"
	"strings"
)

// maxInterpolationDepth bounds nested references; deeper chains are
// reported as reference cycles.
const maxInterpolationDepth = 10

// interpolate replaces ${option} and ${section|option} references in value.
// Plain references resolve against the section the value belongs to.
func (c *Config) interpolate(sectionName, value string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("interpolation in [%v] is nested too deeply, check for a reference cycle", sectionName)
	}
	var b strings.Builder
	rest := value
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return "", fmt.Errorf("unterminated reference in [%v]: %q", sectionName, value)
		}
		end += start
		b.WriteString(rest[:start])

		refSection, refOption := sectionName, rest[start+2:end]
		if sec, opt, found := strings.Cut(refOption, "|"); found {
			refSection, refOption = sec, opt
		}
		raw, err := c.raw(refSection, refOption)
		if err != nil {
			return "", fmt.Errorf("cannot resolve ${%v} in [%v]; %w", rest[start+2:end], sectionName, err)
		}
		resolved, err := c.interpolate(refSection, raw, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(resolved)
		rest = rest[end+1:]
	}
	return b.String(), nil
}
