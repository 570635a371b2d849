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
	"github.com/gwpe/prior-plot/plot"
	"github.com/gwpe/prior-plot/prior"
	"github.com/urfave/cli/v2"
)

// Command line options shared by the prior commands.
var (
	ConfigFilesFlag = cli.StringSliceFlag{
		Name:    "config-files",
		Usage:   "configuration files defining the prior; repeat the flag or separate files by commas, later files override earlier ones",
		Aliases: []string{"c"},
	}
	ParametersFlag = cli.StringSliceFlag{
		Name:  "parameters",
		Usage: "parameters to plot as PARAM[:LABEL], repeat the flag for several parameters; all variable parameters if not set",
	}
	SectionsFlag = cli.StringSliceFlag{
		Name:  "sections",
		Usage: "config sections holding the prior distributions",
		Value: cli.NewStringSlice(prior.DefaultPriorSection),
	}
	NSamplesFlag = cli.IntFlag{
		Name:  "nsamples",
		Usage: "number of samples drawn from the prior",
		Value: 10000,
	}
	OutputFileFlag = cli.PathFlag{
		Name:    "output-file",
		Usage:   "path of the output file; the extension selects the format",
		Aliases: []string{"o"},
	}
	VerboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print debug messages, overrides the log level",
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the random number generator, a time based seed is used if 0",
	}
	PlotMarginalFlag = cli.BoolFlag{
		Name:  "plot-marginal",
		Usage: "plot marginal histograms on the diagonal",
		Value: true,
	}
	PlotScatterFlag = cli.BoolFlag{
		Name:  "plot-scatter",
		Usage: "plot the samples in the joint panels",
	}
	PlotDensityFlag = cli.BoolFlag{
		Name:  "plot-density",
		Usage: "plot a smoothed density in the joint panels",
		Value: true,
	}
	PlotContoursFlag = cli.BoolFlag{
		Name:  "plot-contours",
		Usage: "plot credible contours in the joint panels",
		Value: true,
	}
	ContourPercentilesFlag = cli.Float64SliceFlag{
		Name:  "contour-percentiles",
		Usage: "probability mass in percent enclosed by the contours, repeat the flag for several contours",
		Value: cli.NewFloat64Slice(plot.DefaultContourPercentiles...),
	}
	BinsFlag = cli.IntFlag{
		Name:  "bins",
		Usage: "number of bins of the marginal histograms",
		Value: plot.DefaultBins,
	}
	MinsFlag = cli.StringSliceFlag{
		Name:  "mins",
		Usage: "lower axis limits as PARAM:VALUE",
	}
	MaxsFlag = cli.StringSliceFlag{
		Name:  "maxs",
		Usage: "upper axis limits as PARAM:VALUE",
	}
)
