package prior

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestJoint creates a two-parameter joint distribution.
func newTestJoint(t *testing.T, constraints ...Constraint) *JointDistribution {
	t.Helper()
	masses, err := NewUniform(map[string]Bounds{"mass1": {10, 80}, "mass2": {10, 80}}, "mass1", "mass2")
	if err != nil {
		t.Fatalf("failed to create distribution: %v", err)
	}
	inclination, err := NewSinAngle(nil, "inclination")
	if err != nil {
		t.Fatalf("failed to create distribution: %v", err)
	}
	joint, err := NewJointDistribution([]string{"inclination", "mass1", "mass2"}, []Distribution{masses, inclination}, constraints)
	if err != nil {
		t.Fatalf("failed to create joint distribution: %v", err)
	}
	return joint
}

func TestJointDistribution_DrawsRequestedNumberOfSamples(t *testing.T) {
	joint := newTestJoint(t)
	for _, n := range []int{1, 7, 10000} {
		s, err := joint.Rvs(newTestRand(), n)
		if err != nil {
			t.Fatalf("failed to sample: %v", err)
		}
		if s.Len() != n {
			t.Fatalf("expected %d samples, got %d", n, s.Len())
		}
		if diff := cmp.Diff([]string{"inclination", "mass1", "mass2"}, s.Params); diff != "" {
			t.Fatalf("unexpected column order (-want +got):\n%s", diff)
		}
	}
}

func TestJointDistribution_RejectsNonPositiveCount(t *testing.T) {
	joint := newTestJoint(t)
	for _, n := range []int{0, -1} {
		if _, err := joint.Rvs(newTestRand(), n); err == nil {
			t.Fatalf("expected error for %d samples", n)
		}
	}
}

func TestJointDistribution_Constraints(t *testing.T) {
	c, err := NewCustomConstraint("mass1 >= mass2 and mass1 < 50")
	if err != nil {
		t.Fatalf("failed to parse constraint: %v", err)
	}
	joint := newTestJoint(t, c)
	s, err := joint.Rvs(newTestRand(), 3000)
	if err != nil {
		t.Fatalf("failed to sample: %v", err)
	}
	if s.Len() != 3000 {
		t.Fatalf("expected 3000 samples, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if !c.Satisfied(s.Point(i)) {
			t.Fatalf("sample %v violates the constraint", s.Point(i))
		}
	}
	if lp := joint.LogPdf(map[string]float64{"mass1": 20, "mass2": 30, "inclination": 1}); !math.IsInf(lp, -1) {
		t.Fatalf("expected -Inf for a point violating the constraint, got %v", lp)
	}
	if lp := joint.LogPdf(map[string]float64{"mass1": 30, "mass2": 20, "inclination": 1}); math.IsInf(lp, 0) {
		t.Fatalf("expected a finite density, got %v", lp)
	}
}

func TestJointDistribution_ImpossibleConstraint(t *testing.T) {
	c, err := NewCustomConstraint("mass1 > 100")
	if err != nil {
		t.Fatalf("failed to parse constraint: %v", err)
	}
	if _, err := newTestJoint(t, c).Rvs(newTestRand(), 10); err == nil {
		t.Fatalf("expected error for a constraint rejecting everything")
	}
}

func TestNewJointDistribution_Errors(t *testing.T) {
	x, _ := NewUniform(map[string]Bounds{"x": {0, 1}}, "x")
	xy, _ := NewUniform(map[string]Bounds{"x": {0, 1}, "y": {0, 1}}, "x", "y")
	unknown, _ := NewCustomConstraint("z < 1")

	if _, err := NewJointDistribution(nil, []Distribution{x}, nil); err == nil {
		t.Fatalf("expected error without parameters")
	}
	if _, err := NewJointDistribution([]string{"x", "y"}, []Distribution{x}, nil); err == nil {
		t.Fatalf("expected error for parameter without distribution")
	}
	if _, err := NewJointDistribution([]string{"x"}, []Distribution{xy}, nil); err == nil {
		t.Fatalf("expected error for distribution of an unknown parameter")
	}
	if _, err := NewJointDistribution([]string{"x", "y"}, []Distribution{x, xy}, nil); err == nil {
		t.Fatalf("expected error for a parameter with two distributions")
	}
	if _, err := NewJointDistribution([]string{"x"}, []Distribution{x}, []Constraint{unknown}); err == nil {
		t.Fatalf("expected error for constraint on unknown parameter")
	}
}

func TestCustomConstraint_Parse(t *testing.T) {
	tests := []struct {
		expr   string
		point  map[string]float64
		result bool
	}{
		{"a < b", map[string]float64{"a": 1, "b": 2}, true},
		{"a <= 1", map[string]float64{"a": 1}, true},
		{"a > 1 & b != 3", map[string]float64{"a": 2, "b": 3}, false},
		{"-pi/2 < a", map[string]float64{"a": 0}, true},
		{"a == b", map[string]float64{"a": 4, "b": 4}, true},
		{"a >= b", map[string]float64{"a": 1}, false},
		{"a > 1 AND b < 3", map[string]float64{"a": 2, "b": 2}, true},
		{"a > 1\tand  b < 3", map[string]float64{"a": 2, "b": 4}, false},
		{"a > 1 And b < 3 & a < 5", map[string]float64{"a": 2, "b": 2}, true},
		{"band > 1 & sand < 2", map[string]float64{"band": 2, "sand": 1}, true},
	}
	for _, test := range tests {
		c, err := NewCustomConstraint(test.expr)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", test.expr, err)
		}
		if got := c.Satisfied(test.point); got != test.result {
			t.Fatalf("%q at %v: got %v, want %v", test.expr, test.point, got, test.result)
		}
	}
	for _, expr := range []string{"", "a", "a < ", "a < b &", "a-1 < b"} {
		if _, err := NewCustomConstraint(expr); err == nil {
			t.Fatalf("expected error for %q", expr)
		}
	}
	c, _ := NewCustomConstraint("mass2 <= mass1 & q < 4")
	if diff := cmp.Diff([]string{"mass1", "mass2", "q"}, c.Params()); diff != "" {
		t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
	}
}

func TestCartesian(t *testing.T) {
	got := Cartesian([]float64{1, 2}, []float64{3, 4, 5})
	want := [][]float64{{1, 3}, {1, 4}, {1, 5}, {2, 3}, {2, 4}, {2, 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected product (-want +got):\n%s", diff)
	}
	if got := Cartesian([]float64{1}, nil); len(got) != 0 {
		t.Fatalf("empty axis must yield no points, got %v", got)
	}
	if got := Cartesian(); got != nil {
		t.Fatalf("no axes must yield nil, got %v", got)
	}
}

func TestSamplesFile_Compressed(t *testing.T) {
	s, err := newTestJoint(t).Rvs(newTestRand(), 100)
	if err != nil {
		t.Fatalf("failed to sample: %v", err)
	}
	for _, name := range []string{"samples.csv", "samples.csv.gz", "samples.csv.bz2"} {
		path := filepath.Join(t.TempDir(), name)
		if err := WriteSamples(path, s); err != nil {
			t.Fatalf("failed to write %v: %v", name, err)
		}
		read, err := ReadSamples(path)
		if err != nil {
			t.Fatalf("failed to read %v: %v", name, err)
		}
		if diff := cmp.Diff(s, read); diff != "" {
			t.Fatalf("%v: samples differ (-want +got):\n%s", name, diff)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := NewSamples([]string{"x"}, 5)
	s.Columns["x"] = []float64{1, 2, 3, 4, 5}
	sum := Summarize(s)
	if len(sum) != 1 {
		t.Fatalf("expected one summary, got %d", len(sum))
	}
	got := sum[0]
	if got.Count != 5 || got.Mean != 3 || got.Min != 1 || got.Max != 5 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if math.Abs(got.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("unexpected deviation %v", got.StdDev)
	}
	if got.Percentiles[1] != 3 {
		t.Fatalf("unexpected median %v", got.Percentiles[1])
	}
}
