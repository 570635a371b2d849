package prior

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gwpe/prior-plot/inifile"
)

const testConfig = `
[variable_params]
mass1 = $m_1$
mass2 =
distance = $d_L$

[static_params]
approximant = IMRPhenomPv2
f_lower = 20

[prior-mass1]
name = uniform
min-mass1 = 10
max-mass1 = 80

[prior-mass2]
name = uniform
min-mass2 = 10
max-mass2 = 80

[prior-ra+dec]
name = uniform_sky

[prior-distance]
name = uniform_radius
min-distance = 10
max-distance = 1000

[prior-inclination]
name = sin_angle

[prior-polarization]
name = uniform_angle
max-polarization = pi

[constraint-1]
name = custom
constraint_arg = mass1 >= mass2
`

// loadTestConfig parses configuration content or fails the test.
func loadTestConfig(t *testing.T, content string) *inifile.Config {
	t.Helper()
	cfg, err := inifile.LoadBytes([]byte(content))
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	return cfg
}

func TestReadParamsFromConfig_SortedUnion(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	pc, err := ReadParamsFromConfig(cfg, []string{DefaultPriorSection})
	if err != nil {
		t.Fatalf("failed to read parameters: %v", err)
	}
	want := []string{"dec", "distance", "inclination", "mass1", "mass2", "polarization", "ra"}
	if diff := cmp.Diff(want, pc.Variable); diff != "" {
		t.Fatalf("unexpected variable parameters (-want +got):\n%s", diff)
	}
	if got := pc.Label("distance"); got != "$d_L$" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := pc.Label("mass2"); got != "mass2" {
		t.Fatalf("empty label must fall back to the name, got %q", got)
	}
	if got := pc.Static["approximant"]; got != "IMRPhenomPv2" {
		t.Fatalf("unexpected static parameter %q", got)
	}
}

func TestReadParamsFromConfig_MultipleSections(t *testing.T) {
	cfg := loadTestConfig(t, `
[prior-b]
name = uniform
min-b = 0
max-b = 1

[waveform_transforms-a+c]
name = uniform
`)
	pc, err := ReadParamsFromConfig(cfg, []string{"prior", "waveform_transforms"})
	if err != nil {
		t.Fatalf("failed to read parameters: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, pc.Variable); diff != "" {
		t.Fatalf("unexpected variable parameters (-want +got):\n%s", diff)
	}
}

func TestReadParamsFromConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"no distributions": "[variable_params]\nx =\n",
		"missing prior":    "[variable_params]\nx =\ny =\n[prior-x]\nname = uniform\n",
		"static variable":  "[static_params]\nx = 1\n[prior-x]\nname = uniform\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadParamsFromConfig(loadTestConfig(t, content), []string{"prior"}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReadDistributionsFromConfig(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	dists, err := ReadDistributionsFromConfig(cfg, DefaultPriorSection)
	if err != nil {
		t.Fatalf("failed to read distributions: %v", err)
	}
	names := map[string]string{}
	for _, d := range dists {
		for _, p := range d.Params() {
			names[p] = d.Name()
		}
	}
	want := map[string]string{
		"mass1":        UniformName,
		"mass2":        UniformName,
		"ra":           UniformSkyName,
		"dec":          UniformSkyName,
		"distance":     UniformRadiusName,
		"inclination":  SinAngleName,
		"polarization": UniformAngleName,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected distributions (-want +got):\n%s", diff)
	}
}

func TestReadDistributionsFromConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown name":     "[prior-x]\nname = banana\n",
		"missing name":     "[prior-x]\nmin-x = 0\n",
		"missing bounds":   "[prior-x]\nname = uniform\nmin-x = 0\n",
		"inverted bounds":  "[prior-x]\nname = uniform\nmin-x = 2\nmax-x = 1\n",
		"sky tag mismatch": "[prior-x+y]\nname = uniform_sky\n",
		"missing variance": "[prior-x]\nname = gaussian\nmean-x = 0\n",
		"missing dim":      "[prior-x]\nname = uniform_power_law\nmin-x = 1\nmax-x = 2\n",
		"empty parameter":  "[prior-x+]\nname = uniform\nmin-x = 0\nmax-x = 1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadDistributionsFromConfig(loadTestConfig(t, content), "prior"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReadDistributionsFromConfig_SolidAngleNames(t *testing.T) {
	cfg := loadTestConfig(t, `
[prior-spin1_polar+spin1_azimuthal]
name = uniform_solidangle
polar-angle = spin1_polar
azimuthal-angle = spin1_azimuthal
`)
	dists, err := ReadDistributionsFromConfig(cfg, "prior")
	if err != nil {
		t.Fatalf("failed to read distributions: %v", err)
	}
	if diff := cmp.Diff([]string{"spin1_polar", "spin1_azimuthal"}, dists[0].Params()); diff != "" {
		t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
	}
}

func TestReadConstraintsFromConfig(t *testing.T) {
	constraints, err := ReadConstraintsFromConfig(loadTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("failed to read constraints: %v", err)
	}
	if len(constraints) != 1 || constraints[0].String() != "mass1 >= mass2" {
		t.Fatalf("unexpected constraints %v", constraints)
	}
	_, err = ReadConstraintsFromConfig(loadTestConfig(t, "[constraint-1]\nname = magic\nconstraint_arg = x < 1\n"))
	if err == nil || !strings.Contains(err.Error(), "magic") {
		t.Fatalf("expected error naming the unknown constraint, got %v", err)
	}
}

func TestNewJointDistributionFromConfig(t *testing.T) {
	joint, pc, err := NewJointDistributionFromConfig(loadTestConfig(t, testConfig), []string{DefaultPriorSection})
	if err != nil {
		t.Fatalf("failed to create joint distribution: %v", err)
	}
	if diff := cmp.Diff(pc.Variable, joint.Params()); diff != "" {
		t.Fatalf("joint distribution parameters differ (-want +got):\n%s", diff)
	}
	s, err := joint.Rvs(newTestRand(), 500)
	if err != nil {
		t.Fatalf("failed to sample: %v", err)
	}
	if s.Len() != 500 {
		t.Fatalf("expected 500 samples, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.Columns["mass1"][i] < s.Columns["mass2"][i] {
			t.Fatalf("sample %d violates the constraint", i)
		}
	}
}
