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
	"os"
	"strings"

	"github.com/gwpe/prior-plot/logger"
	"github.com/gwpe/prior-plot/plot"
	"github.com/gwpe/prior-plot/utils"
	"github.com/urfave/cli/v2"
)

// PlotTitle is the title embedded in every figure.
const PlotTitle = "Prior distributions"

// PlotFlags are the flags of the top-level plotting action.
var PlotFlags = []cli.Flag{
	&utils.ConfigFilesFlag,
	&utils.ParametersFlag,
	&utils.SectionsFlag,
	&utils.NSamplesFlag,
	&utils.OutputFileFlag,
	&utils.VerboseFlag,
	&utils.SeedFlag,
	&utils.PlotMarginalFlag,
	&utils.PlotScatterFlag,
	&utils.PlotDensityFlag,
	&utils.PlotContoursFlag,
	&utils.ContourPercentilesFlag,
	&utils.BinsFlag,
	&utils.MinsFlag,
	&utils.MaxsFlag,
	&logger.LogLevelFlag,
}

// PlotAction draws samples from the configured prior and plots them.
func PlotAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	// fail before sampling if the figure cannot be saved
	if err = plot.CheckOutputFile(cfg.OutputFile); err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Prior-Plot")

	joint, pc, err := loadPrior(cfg, log)
	if err != nil {
		return err
	}
	params, labels, err := selectParameters(cfg, pc)
	if err != nil {
		return err
	}
	samples, err := drawSamples(cfg, joint, log)
	if err != nil {
		return err
	}

	log.Infof("Plot %d parameters", len(params))
	fig, err := plot.NewMultidimPlot(params, labels, samples, cfg.PlotOptions())
	if err != nil {
		return fmt.Errorf("cannot plot samples; %w", err)
	}
	md := plot.Metadata{
		Cmd:     strings.Join(os.Args, " "),
		Title:   PlotTitle,
		Caption: fmt.Sprintf("Parameters %v from %v; seed %d",
			strings.Join(params, ", "), strings.Join(cfg.ConfigFiles, ", "), cfg.Seed),
	}
	if err = plot.SaveWithMetadata(fig, cfg.OutputFile, md); err != nil {
		return err
	}
	reportOutput(cfg.OutputFile, log)
	return nil
}
