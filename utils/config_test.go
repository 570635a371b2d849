package utils

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gwpe/prior-plot/logger"
	"github.com/urfave/cli/v2"
)

// plotFlags mirrors the flags of the plotting action.
var plotFlags = []cli.Flag{
	&ConfigFilesFlag,
	&ParametersFlag,
	&SectionsFlag,
	&NSamplesFlag,
	&OutputFileFlag,
	&VerboseFlag,
	&SeedFlag,
	&PlotMarginalFlag,
	&PlotScatterFlag,
	&PlotDensityFlag,
	&PlotContoursFlag,
	&ContourPercentilesFlag,
	&BinsFlag,
	&MinsFlag,
	&MaxsFlag,
	&logger.LogLevelFlag,
}

// runConfig parses args with an app declaring flags and returns the resulting config.
func runConfig(t *testing.T, flags []cli.Flag, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	app := &cli.App{
		Name:                      "config-test",
		Flags:                     flags,
		DisableSliceFlagSeparator: true,
		Action: func(ctx *cli.Context) (err error) {
			cfg, err = NewConfig(ctx)
			return err
		},
	}
	err := app.Run(append([]string{"config-test"}, args...))
	return cfg, err
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := runConfig(t, plotFlags, "--config-files", "a.ini", "--output-file", "out.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.ini"}, cfg.ConfigFiles); diff != "" {
		t.Fatalf("unexpected config files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"prior"}, cfg.Sections); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{50, 90}, cfg.ContourPercentiles); diff != "" {
		t.Fatalf("unexpected contour percentiles (-want +got):\n%s", diff)
	}
	if cfg.NSamples != 10000 {
		t.Fatalf("expected 10000 samples, got %d", cfg.NSamples)
	}
	if cfg.OutputFile != "out.png" {
		t.Fatalf("unexpected output file %v", cfg.OutputFile)
	}
	if !cfg.PlotMarginal || cfg.PlotScatter || !cfg.PlotDensity || !cfg.PlotContours {
		t.Fatalf("unexpected plot elements %+v", cfg)
	}
	if cfg.Bins != 50 {
		t.Fatalf("expected 50 bins, got %d", cfg.Bins)
	}
	if cfg.Seed == 0 {
		t.Fatalf("expected a time based seed")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log level info, got %v", cfg.LogLevel)
	}
	if len(cfg.Parameters) != 0 || len(cfg.Labels) != 0 {
		t.Fatalf("expected no selected parameters, got %v %v", cfg.Parameters, cfg.Labels)
	}
}

func TestNewConfig_ParsesValues(t *testing.T) {
	cfg, err := runConfig(t, plotFlags,
		"--config-files", "a.ini,b.ini",
		"--config-files", "c.ini",
		"--parameters", "mass1:$m_1$",
		"--parameters", "mass2",
		"--sections", "prior,extra",
		"--nsamples", "20",
		"--seed", "42",
		"--verbose",
		"--plot-marginal=false",
		"--plot-scatter",
		"--contour-percentiles", "68",
		"--mins", "theta:0",
		"--maxs", "theta:pi",
		"--output-file", "out.svg",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.ini", "b.ini", "c.ini"}, cfg.ConfigFiles); diff != "" {
		t.Fatalf("unexpected config files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mass1", "mass2"}, cfg.Parameters); diff != "" {
		t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"mass1": "$m_1$"}, cfg.Labels); diff != "" {
		t.Fatalf("unexpected labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"prior", "extra"}, cfg.Sections); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}
	if cfg.NSamples != 20 || cfg.Seed != 42 {
		t.Fatalf("unexpected samples %d or seed %d", cfg.NSamples, cfg.Seed)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("verbose should select debug logging, got %v", cfg.LogLevel)
	}
	if cfg.PlotMarginal || !cfg.PlotScatter {
		t.Fatalf("unexpected plot elements %+v", cfg)
	}
	if cfg.Mins["theta"] != 0 || cfg.Maxs["theta"] != math.Pi {
		t.Fatalf("unexpected limits %v %v", cfg.Mins, cfg.Maxs)
	}

	opts := cfg.PlotOptions()
	if opts.Marginal || !opts.Scatter || opts.Maxs["theta"] != math.Pi {
		t.Fatalf("unexpected plot options %+v", opts)
	}
	if diff := cmp.Diff([]float64{68}, opts.ContourPercentiles); diff != "" {
		t.Fatalf("unexpected contour percentiles (-want +got):\n%s", diff)
	}
}

func TestNewConfig_LabelsKeepCommas(t *testing.T) {
	cfg, err := runConfig(t, plotFlags,
		"-c", "a.ini",
		"-o", "out.png",
		"--parameters", "mchirp:$\\mathcal{M}$ (M_sun, detector frame)",
		"--parameters", "q",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"mchirp", "q"}, cfg.Parameters); diff != "" {
		t.Fatalf("unexpected parameters (-want +got):\n%s", diff)
	}
	want := map[string]string{"mchirp": "$\\mathcal{M}$ (M_sun, detector frame)"}
	if diff := cmp.Diff(want, cfg.Labels); diff != "" {
		t.Fatalf("unexpected labels (-want +got):\n%s", diff)
	}
}

func TestNewConfig_Errors(t *testing.T) {
	tests := map[string][]string{
		"missing config files": {"--output-file", "out.png"},
		"missing output file":  {"--config-files", "a.ini"},
		"zero samples":         {"-c", "a.ini", "-o", "out.png", "--nsamples", "0"},
		"negative samples":     {"-c", "a.ini", "-o", "out.png", "--nsamples", "-5"},
		"empty parameter":      {"-c", "a.ini", "-o", "out.png", "--parameters", ":label"},
		"duplicate parameter":  {"-c", "a.ini", "-o", "out.png", "--parameters", "a", "--parameters", "a:A"},
		"limit without value":  {"-c", "a.ini", "-o", "out.png", "--mins", "mass1"},
		"unparsable limit":     {"-c", "a.ini", "-o", "out.png", "--maxs", "mass1:heavy"},
		"empty axis range":     {"-c", "a.ini", "-o", "out.png", "--mins", "mass1:5", "--maxs", "mass1:5"},
		"zero bins":            {"-c", "a.ini", "-o", "out.png", "--bins", "0"},
		"unknown log level":    {"-c", "a.ini", "-o", "out.png", "--log", "chatty"},
		"percentile of 100":    {"-c", "a.ini", "-o", "out.png", "--contour-percentiles", "100"},
		"negative percentile":  {"-c", "a.ini", "-o", "out.png", "--contour-percentiles", "-5"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := runConfig(t, plotFlags, args...); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestNewConfig_UndeclaredFlagsUseDefaults(t *testing.T) {
	// commands without an output file or plot flags
	cfg, err := runConfig(t, []cli.Flag{&ConfigFilesFlag, &SectionsFlag}, "--config-files", "a.ini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFile != "" {
		t.Fatalf("unexpected output file %v", cfg.OutputFile)
	}
	if cfg.NSamples != NSamplesFlag.Value || cfg.Bins != BinsFlag.Value {
		t.Fatalf("expected flag defaults, got %d samples and %d bins", cfg.NSamples, cfg.Bins)
	}
	if !cfg.PlotMarginal {
		t.Fatalf("expected default plot elements")
	}
}

func TestParseLimits(t *testing.T) {
	limits, err := parseLimits([]string{"dec:-pi/2", "mass: 3.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{"dec": -math.Pi / 2, "mass": 3.5}
	if diff := cmp.Diff(want, limits); diff != "" {
		t.Fatalf("unexpected limits (-want +got):\n%s", diff)
	}
}
