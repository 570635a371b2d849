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
	"github.com/gwpe/prior-plot/logger"
	"github.com/gwpe/prior-plot/prior"
	"github.com/gwpe/prior-plot/utils"
	"github.com/urfave/cli/v2"
)

// SampleCommand writes samples of the prior to a CSV file.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "draws samples from the prior and writes them to a CSV file",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.ConfigFilesFlag,
		&utils.ParametersFlag,
		&utils.SectionsFlag,
		&utils.NSamplesFlag,
		&utils.OutputFileFlag,
		&utils.SeedFlag,
		&utils.VerboseFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The sample command writes one column per variable parameter, or per parameter
selected with --parameters. Output files ending in .gz or .bz2 are compressed.`,
}

// sampleAction implements the sample command.
func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Prior-Sample")

	joint, pc, err := loadPrior(cfg, log)
	if err != nil {
		return err
	}
	params, _, err := selectParameters(cfg, pc)
	if err != nil {
		return err
	}
	samples, err := drawSamples(cfg, joint, log)
	if err != nil {
		return err
	}
	if samples, err = samples.Subset(params); err != nil {
		return err
	}
	if err = prior.WriteSamples(cfg.OutputFile, samples); err != nil {
		return err
	}
	reportOutput(cfg.OutputFile, log)
	return nil
}
