package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gwpe/prior-plot/plot"
	"github.com/gwpe/prior-plot/prior"
)

const testPrior = `
[variable_params]
mass1 = $m_1$
mass2 = $m_2$

[static_params]
approximant = IMRPhenomPv2

[prior-mass1]
name = uniform
min-mass1 = 10
max-mass1 = 80

[prior-mass2]
name = uniform
min-mass2 = 10
max-mass2 = ${prior-mass1|max-mass1}

[prior-inclination]
name = sin_angle

[constraint-1]
name = custom
constraint_arg = mass1 >= mass2
`

// testOverride narrows the mass range of testPrior.
const testOverride = `
[prior-mass1]
max-mass1 = 50
`

// writeTestConfig writes the test configuration files and returns their paths.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "prior.ini")
	override := filepath.Join(dir, "override.ini")
	if err := os.WriteFile(base, []byte(testPrior), 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}
	if err := os.WriteFile(override, []byte(testOverride), 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}
	return base, override
}

// runApp executes the app with args and returns its output.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := initPriorApp()
	app.Writer = &out
	os.Args = append([]string{"prior-plot"}, args...)
	err := app.Run(os.Args)
	return out.String(), err
}

func TestPriorPlot_WritesFigureWithMetadata(t *testing.T) {
	base, override := writeTestConfig(t)
	for _, ext := range []string{".png", ".svg", ".html"} {
		output := filepath.Join(t.TempDir(), "prior"+ext)
		_, err := runApp(t,
			"--config-files", base,
			"--config-files", override,
			"--parameters", "mass1:$m_1$ [M_sun]",
			"--parameters", "mass2",
			"--nsamples", "500",
			"--seed", "3",
			"--output-file", output,
		)
		if err != nil {
			t.Fatalf("failed to plot %v: %v", ext, err)
		}
		md, err := plot.LoadMetadata(output)
		if err != nil {
			t.Fatalf("failed to load metadata: %v", err)
		}
		if md[plot.MetadataTitle] != "Prior distributions" {
			t.Fatalf("unexpected title %q", md[plot.MetadataTitle])
		}
		if !strings.Contains(md[plot.MetadataCmd], "--nsamples 500") {
			t.Fatalf("command line missing in metadata: %q", md[plot.MetadataCmd])
		}
		if !strings.Contains(md[plot.MetadataCaption], "mass1, mass2") {
			t.Fatalf("parameters missing in caption: %q", md[plot.MetadataCaption])
		}
		if !strings.HasSuffix(md[plot.MetadataCaption], "; seed 3") {
			t.Fatalf("seed missing in caption: %q", md[plot.MetadataCaption])
		}

		out, err := runApp(t, "metadata", output)
		if err != nil {
			t.Fatalf("failed to print metadata: %v", err)
		}
		if !strings.Contains(out, "Prior distributions") {
			t.Fatalf("metadata output misses the title:\n%v", out)
		}
	}
}

func TestPriorPlot_AllParameters(t *testing.T) {
	base, _ := writeTestConfig(t)
	output := filepath.Join(t.TempDir(), "prior.png")
	if _, err := runApp(t, "-c", base, "--nsamples", "300", "--plot-scatter", "-o", output); err != nil {
		t.Fatalf("failed to plot: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("figure not written: %v", err)
	}
}

func TestPriorPlot_RecordsTimeBasedSeed(t *testing.T) {
	base, _ := writeTestConfig(t)
	output := filepath.Join(t.TempDir(), "prior.png")
	if _, err := runApp(t, "-c", base, "--nsamples", "100", "-o", output); err != nil {
		t.Fatalf("failed to plot: %v", err)
	}
	md, err := plot.LoadMetadata(output)
	if err != nil {
		t.Fatalf("failed to load metadata: %v", err)
	}
	caption := md[plot.MetadataCaption]
	_, seed, found := strings.Cut(caption, "; seed ")
	if !found {
		t.Fatalf("seed missing in caption: %q", caption)
	}
	if v, err := strconv.ParseInt(seed, 10, 64); err != nil || v == 0 {
		t.Fatalf("caption must record the seed in use, got %q", seed)
	}
}

func TestPriorPlot_LabelWithComma(t *testing.T) {
	base, _ := writeTestConfig(t)
	output := filepath.Join(t.TempDir(), "prior.svg")
	_, err := runApp(t,
		"-c", base,
		"--parameters", "mass1:$m_1$ (M_sun, source frame)",
		"--parameters", "mass2",
		"--nsamples", "200",
		"--seed", "9",
		"-o", output,
	)
	if err != nil {
		t.Fatalf("failed to plot: %v", err)
	}
	md, err := plot.LoadMetadata(output)
	if err != nil {
		t.Fatalf("failed to load metadata: %v", err)
	}
	if !strings.Contains(md[plot.MetadataCaption], "mass1, mass2") {
		t.Fatalf("unexpected parameters in caption: %q", md[plot.MetadataCaption])
	}
}

func TestPriorPlot_Errors(t *testing.T) {
	base, _ := writeTestConfig(t)
	dir := t.TempDir()
	tests := map[string][]string{
		"missing config files": {"-o", filepath.Join(dir, "a.png")},
		"missing output file":  {"-c", base},
		"unknown config file":  {"-c", filepath.Join(dir, "missing.ini"), "-o", filepath.Join(dir, "b.png")},
		"unsupported format":   {"-c", base, "-o", filepath.Join(dir, "c.pdf")},
		"unknown parameter":    {"-c", base, "--parameters", "spin", "-o", filepath.Join(dir, "d.png")},
		"unknown section":      {"-c", base, "--sections", "posterior", "-o", filepath.Join(dir, "e.png")},
		"zero samples":         {"-c", base, "--nsamples", "0", "-o", filepath.Join(dir, "f.png")},
		"zero bins":            {"-c", base, "--bins", "0", "-o", filepath.Join(dir, "g.png")},
		"percentile above 100": {"-c", base, "--contour-percentiles", "150", "-o", filepath.Join(dir, "h.png")},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := runApp(t, args...); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cannot list output directory: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed runs must not leave files behind, found %d", len(entries))
	}
}

func TestSampleCommand_WritesRequestedSamples(t *testing.T) {
	base, override := writeTestConfig(t)
	for _, name := range []string{"samples.csv", "samples.csv.gz", "samples.csv.bz2"} {
		output := filepath.Join(t.TempDir(), name)
		if _, err := runApp(t, "sample", "-c", base, "-c", override, "--nsamples", "123", "--seed", "5", "-o", output); err != nil {
			t.Fatalf("failed to sample: %v", err)
		}
		samples, err := prior.ReadSamples(output)
		if err != nil {
			t.Fatalf("failed to read samples: %v", err)
		}
		if samples.Len() != 123 {
			t.Fatalf("expected 123 samples, got %d", samples.Len())
		}
		if diff := cmp.Diff([]string{"inclination", "mass1", "mass2"}, samples.Params); diff != "" {
			t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
		}
		for i := 0; i < samples.Len(); i++ {
			p := samples.Point(i)
			if p["mass1"] > 50 || p["mass1"] < p["mass2"] {
				t.Fatalf("sample %v violates the prior", p)
			}
		}
	}
}

func TestSampleCommand_SameSeedSameSamples(t *testing.T) {
	base, _ := writeTestConfig(t)
	dir := t.TempDir()
	var drawn []*prior.Samples
	for _, name := range []string{"a.csv", "b.csv"} {
		output := filepath.Join(dir, name)
		if _, err := runApp(t, "sample", "-c", base, "--parameters", "mass1", "--nsamples", "50", "--seed", "11", "-o", output); err != nil {
			t.Fatalf("failed to sample: %v", err)
		}
		samples, err := prior.ReadSamples(output)
		if err != nil {
			t.Fatalf("failed to read samples: %v", err)
		}
		drawn = append(drawn, samples)
	}
	if diff := cmp.Diff(drawn[0], drawn[1]); diff != "" {
		t.Fatalf("samples differ for the same seed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mass1"}, drawn[0].Params); diff != "" {
		t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
	}
}

func TestInfoCommand(t *testing.T) {
	base, _ := writeTestConfig(t)
	out, err := runApp(t, "info", "-c", base, "--nsamples", "200")
	if err != nil {
		t.Fatalf("failed to describe prior: %v", err)
	}
	for _, want := range []string{"mass1", "$m_2$", "sin_angle", "IMRPhenomPv2", "mass1 >= mass2", "MEAN"} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output misses %q:\n%v", want, out)
		}
	}
}

func TestInfoCommand_GroupsCounts(t *testing.T) {
	base, _ := writeTestConfig(t)
	out, err := runApp(t, "info", "-c", base, "--nsamples", "1500", "--seed", "2")
	if err != nil {
		t.Fatalf("failed to describe prior: %v", err)
	}
	for _, want := range []string{"1,500", "COUNT"} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output misses %q:\n%v", want, out)
		}
	}
}

func TestMetadataCommand_Errors(t *testing.T) {
	if _, err := runApp(t, "metadata"); err == nil {
		t.Fatalf("expected an error without argument")
	}
	if _, err := runApp(t, "metadata", filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "0.1.0-dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "App Version:") || !strings.Contains(out, "0.1.0-dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}
