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

package main

import (
	"fmt"
	"os"

	"github.com/gwpe/prior-plot/cmd/prior-cli/prior"
	"github.com/gwpe/prior-plot/cmd/prior-cli/version"
	"github.com/urfave/cli/v2"
)

// initPriorApp initializes a prior-plot app. This function is
// called by the main function and unit tests.
func initPriorApp() *cli.App {
	return &cli.App{
		Name:      "Prior Plot",
		HelpName:  "prior-plot",
		Usage:     "draws samples from a configured prior and plots them",
		Copyright: "(c) 2024 Fantom Foundation",
		Version:   version.Short(),
		Action:    prior.PlotAction,
		Flags:     prior.PlotFlags,

		// comma separated lists are split by utils, parameter labels are kept whole
		DisableSliceFlagSeparator: true,

		Commands: []*cli.Command{
			&prior.SampleCommand,
			&prior.InfoCommand,
			&prior.MetadataCommand,
			&version.CmdVersion,
		},
		Description: `
Without a command, prior-plot reads the prior from the configuration files,
draws --nsamples samples and writes a corner plot to --output-file. The file
extension selects the format: .png, .svg or .html.`,
	}
}

// main implements "prior-plot" cli application.
func main() {
	app := initPriorApp()
	if err := app.Run(os.Args); err != nil {
		code := 1
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
