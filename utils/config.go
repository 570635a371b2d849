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

package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gwpe/prior-plot/logger"
	"github.com/gwpe/prior-plot/plot"
	"github.com/gwpe/prior-plot/prior"
	"github.com/urfave/cli/v2"
)

// Config represents execution configuration for the prior tools.
type Config struct {
	AppName     string
	CommandName string

	ConfigFiles        []string           // configuration files, later files override earlier ones
	ParameterArgs      []string           // raw PARAM[:LABEL] selections
	Parameters         []string           // selected parameters, all variable parameters if empty
	Labels             map[string]string  // labels given on the command line
	Sections           []string           // config sections holding the prior
	NSamples           int                // number of samples to draw
	OutputFile         string             // path to the output file
	Verbose            bool               // print debug messages
	LogLevel           string             // level of the logging of the app action
	Seed               int64              // seed of the random number generator
	PlotMarginal       bool               // plot marginal histograms
	PlotScatter        bool               // plot samples in the joint panels
	PlotDensity        bool               // plot the density in the joint panels
	PlotContours       bool               // plot contours in the joint panels
	ContourPercentiles []float64          // probability enclosed by the contours
	Bins               int                // histogram bins
	MinArgs            []string           // raw PARAM:VALUE lower limits
	MaxArgs            []string           // raw PARAM:VALUE upper limits
	Mins               map[string]float64 // lower axis limits
	Maxs               map[string]float64 // upper axis limits
}

type configContext struct {
	cfg *Config       // run configuration
	log logger.Logger // logger for printing logs in config functions
	ctx *cli.Context  // command line context for accessing flags and command line arguments
}

func newConfigContext(cfg *Config, ctx *cli.Context) *configContext {
	return &configContext{
		log: logger.NewLogger(cfg.LogLevel, "Config"),
		cfg: cfg,
		ctx: ctx,
	}
}

// NewConfig creates and initializes Config with commandline arguments.
func NewConfig(ctx *cli.Context) (*Config, error) {
	// create config with user flag values, if not set default values are used
	cfg, err := createConfigFromFlags(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	cc := newConfigContext(cfg, ctx)

	if err = cc.setParameters(); err != nil {
		return nil, fmt.Errorf("invalid parameters; %w", err)
	}
	if cfg.Mins, err = parseLimits(cfg.MinArgs); err != nil {
		return nil, fmt.Errorf("invalid %v; %w", MinsFlag.Name, err)
	}
	if cfg.Maxs, err = parseLimits(cfg.MaxArgs); err != nil {
		return nil, fmt.Errorf("invalid %v; %w", MaxsFlag.Name, err)
	}
	if err = cc.validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	cc.reportNewConfig()

	return cfg, nil
}

// splitFlagValues splits comma separated values that a repeated flag
// may still carry and drops empty entries.
func splitFlagValues(values []string) []string {
	var res []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
	}
	return res
}

// setParameters parses the PARAM[:LABEL] selections.
func (cc *configContext) setParameters() error {
	cfg := cc.cfg
	cfg.Parameters = nil
	cfg.Labels = map[string]string{}
	seen := map[string]bool{}
	for _, arg := range cfg.ParameterArgs {
		param, label, hasLabel := strings.Cut(arg, ":")
		param = strings.TrimSpace(param)
		if param == "" {
			return fmt.Errorf("empty parameter name in %q", arg)
		}
		if seen[param] {
			return fmt.Errorf("parameter %v selected twice", param)
		}
		seen[param] = true
		cfg.Parameters = append(cfg.Parameters, param)
		if hasLabel && label != "" {
			cfg.Labels[param] = label
		}
	}
	return nil
}

// parseLimits parses PARAM:VALUE pairs; values accept the forms of prior.ParseValue.
func parseLimits(args []string) (map[string]float64, error) {
	res := map[string]float64{}
	for _, arg := range args {
		param, value, found := strings.Cut(arg, ":")
		param = strings.TrimSpace(param)
		if !found || param == "" {
			return nil, fmt.Errorf("expected PARAM:VALUE, got %q", arg)
		}
		v, err := prior.ParseValue(value)
		if err != nil {
			return nil, fmt.Errorf("cannot parse limit of %v; %w", param, err)
		}
		if math.IsNaN(v) {
			return nil, fmt.Errorf("limit of %v is not a number", param)
		}
		res[param] = v
	}
	return res, nil
}

// validate checks values which do not depend on the loaded prior.
func (cc *configContext) validate() error {
	cfg := cc.cfg
	if len(cfg.ConfigFiles) == 0 && cc.isDefined(ConfigFilesFlag.Name) {
		return fmt.Errorf("required flag %q not set", ConfigFilesFlag.Name)
	}
	if cfg.OutputFile == "" && cc.isDefined(OutputFileFlag.Name) {
		return fmt.Errorf("required flag %q not set", OutputFileFlag.Name)
	}
	if len(cfg.Sections) == 0 && cc.isDefined(SectionsFlag.Name) {
		return fmt.Errorf("no prior sections given")
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.NSamples <= 0 {
		return fmt.Errorf("number of samples must be positive, got %d", cfg.NSamples)
	}
	for param, low := range cfg.Mins {
		if high, found := cfg.Maxs[param]; found && low >= high {
			return fmt.Errorf("axis limits of %v are empty; min %v >= max %v", param, low, high)
		}
	}
	if err := cfg.PlotOptions().Validate(); err != nil {
		return fmt.Errorf("invalid plot options; %w", err)
	}
	return nil
}

// isDefined reports whether the running command declares the flag.
func (cc *configContext) isDefined(name string) bool {
	_, found := definedFlags(cc.ctx)[name]
	return found
}

// PlotOptions returns the plot options selected by the configuration.
func (cfg *Config) PlotOptions() plot.Options {
	opts := plot.DefaultOptions()
	opts.Marginal = cfg.PlotMarginal
	opts.Scatter = cfg.PlotScatter
	opts.Density = cfg.PlotDensity
	opts.Contours = cfg.PlotContours
	opts.ContourPercentiles = cfg.ContourPercentiles
	opts.Bins = cfg.Bins
	for p, v := range cfg.Mins {
		opts.Mins[p] = v
	}
	for p, v := range cfg.Maxs {
		opts.Maxs[p] = v
	}
	return opts
}

// reportNewConfig logs out the state of config in current run
func (cc *configContext) reportNewConfig() {
	cfg := cc.cfg
	log := cc.log

	log.Noticef("Run config:")
	log.Infof("Config files: %v", strings.Join(cfg.ConfigFiles, ", "))
	log.Infof("Prior sections: %v", strings.Join(cfg.Sections, ", "))
	if len(cfg.Parameters) > 0 {
		log.Infof("Selected parameters: %v", strings.Join(cfg.Parameters, ", "))
	}
	log.Infof("Number of samples: %d", cfg.NSamples)
	log.Debugf("Random seed: %d", cfg.Seed)
	if cfg.OutputFile != "" {
		log.Infof("Output file: %v", cfg.OutputFile)
	}
	if !cfg.PlotMarginal && !cfg.PlotScatter && !cfg.PlotDensity && !cfg.PlotContours && cc.isDefined(PlotMarginalFlag.Name) {
		log.Warning("All plot elements are disabled, the figure will only show axes")
	}
}
