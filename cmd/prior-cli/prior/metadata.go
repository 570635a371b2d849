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
	"sort"

	"github.com/fatih/color"
	"github.com/gwpe/prior-plot/plot"
	"github.com/urfave/cli/v2"
)

// MetadataCommand prints the provenance metadata embedded in a figure.
var MetadataCommand = cli.Command{
	Action:    metadataAction,
	Name:      "metadata",
	Usage:     "prints the provenance metadata of a figure",
	ArgsUsage: "<figure>",
	Description: `
The metadata command requires one argument:
<figure>

<figure> is a PNG, SVG or HTML file written by prior-plot.`,
}

// metadataAction implements the metadata command.
func metadataAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("metadata command requires exactly 1 argument")
	}
	path := ctx.Args().Get(0)

	md, err := plot.LoadMetadata(path)
	if err != nil {
		return fmt.Errorf("cannot read metadata of %v; %w", path, err)
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bold := color.New(color.Bold).SprintfFunc()
	for _, k := range keys {
		output(ctx.App.Writer, "%s:\t%s\n", bold(k), md[k])
	}
	return nil
}
