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
	"regexp"
	"sort"
	"strings"
)

// CustomConstraintName is the only constraint type of the configuration.
const CustomConstraintName = "custom"

// Constraint restricts the joint parameter space.
type Constraint interface {
	// Satisfied reports whether point lies in the allowed region.
	Satisfied(point map[string]float64) bool
	// Params returns the parameters the constraint reads.
	Params() []string
	String() string
}

// comparison operators, two-character operators first
var operators = []string{"<=", ">=", "==", "!=", "<", ">"}

// identifier matches parameter names.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// clauseSeparator splits a custom constraint into its clauses.
var clauseSeparator = regexp.MustCompile(`(?i)\s+and\s+|&`)

// operand is either a parameter or a constant.
type operand struct {
	param string
	value float64
}

func (o operand) eval(point map[string]float64) (float64, bool) {
	if o.param == "" {
		return o.value, true
	}
	v, found := point[o.param]
	return v, found
}

func (o operand) String() string {
	if o.param != "" {
		return o.param
	}
	return fmt.Sprintf("%g", o.value)
}

// comparison is a single lhs OP rhs clause.
type comparison struct {
	lhs, rhs operand
	op       string
}

func (c comparison) satisfied(point map[string]float64) bool {
	l, okL := c.lhs.eval(point)
	r, okR := c.rhs.eval(point)
	if !okL || !okR {
		return false
	}
	switch c.op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	}
	return false
}

// CustomConstraint is a conjunction of comparisons, e.g. "mass1 >= mass2 & q < 4".
type CustomConstraint struct {
	expr    string
	clauses []comparison
}

// NewCustomConstraint parses a constraint expression. Clauses are joined
// with '&' or 'and'; operands are parameter names or numbers.
func NewCustomConstraint(expr string) (*CustomConstraint, error) {
	parts := clauseSeparator.Split(expr, -1)
	c := &CustomConstraint{expr: strings.TrimSpace(expr)}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty clause in constraint %q", expr)
		}
		clause, err := parseComparison(part)
		if err != nil {
			return nil, fmt.Errorf("invalid constraint %q; %w", expr, err)
		}
		c.clauses = append(c.clauses, clause)
	}
	return c, nil
}

func parseComparison(s string) (comparison, error) {
	for _, op := range operators {
		idx := strings.Index(s, op)
		if idx < 0 {
			continue
		}
		lhs, err := parseOperand(s[:idx])
		if err != nil {
			return comparison{}, err
		}
		rhs, err := parseOperand(s[idx+len(op):])
		if err != nil {
			return comparison{}, err
		}
		return comparison{lhs: lhs, rhs: rhs, op: op}, nil
	}
	return comparison{}, fmt.Errorf("no comparison operator in %q", s)
}

func parseOperand(s string) (operand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return operand{}, fmt.Errorf("missing operand")
	}
	if v, err := ParseValue(s); err == nil {
		return operand{value: v}, nil
	}
	if !identifier.MatchString(s) {
		return operand{}, fmt.Errorf("operand %q is neither a number nor a parameter", s)
	}
	return operand{param: s}, nil
}

func (c *CustomConstraint) Satisfied(point map[string]float64) bool {
	for _, clause := range c.clauses {
		if !clause.satisfied(point) {
			return false
		}
	}
	return true
}

func (c *CustomConstraint) Params() []string {
	seen := map[string]bool{}
	var params []string
	for _, clause := range c.clauses {
		for _, o := range []operand{clause.lhs, clause.rhs} {
			if o.param != "" && !seen[o.param] {
				seen[o.param] = true
				params = append(params, o.param)
			}
		}
	}
	sort.Strings(params)
	return params
}

func (c *CustomConstraint) String() string {
	return c.expr
}
