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
	"io"
	"log"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gwpe/prior-plot/logger"
	"github.com/gwpe/prior-plot/prior"
	"github.com/gwpe/prior-plot/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InfoCommand prints the parameters, distributions and a sample summary of the prior.
var InfoCommand = cli.Command{
	Action:    infoAction,
	Name:      "info",
	Usage:     "describes the prior defined by the configuration files",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.ConfigFilesFlag,
		&utils.SectionsFlag,
		&utils.NSamplesFlag,
		&utils.SeedFlag,
		&utils.VerboseFlag,
		&logger.LogLevelFlag,
	},
}

// infoAction implements the info command.
func infoAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	lg := logger.NewLogger(cfg.LogLevel, "Prior-Info")

	joint, pc, err := loadPrior(cfg, lg)
	if err != nil {
		return err
	}
	samples, err := drawSamples(cfg, joint, lg)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	bold := color.New(color.Bold).SprintfFunc()
	m := message.NewPrinter(language.English)

	output(w, "Config Files:\t%s\n", bold(strings.Join(cfg.ConfigFiles, ", ")))
	output(w, "Sections:\t%s\n", bold(strings.Join(cfg.Sections, ", ")))
	output(w, "Variable:\t%s\n", bold("%d parameters", len(pc.Variable)))
	distributionTable(w, m, joint, pc)

	if len(pc.Static) > 0 {
		output(w, "Static:\t\t%s\n", bold("%d parameters", len(pc.Static)))
		staticTable(w, pc)
	}
	for _, c := range joint.Constraints() {
		output(w, "Constraint:\t%s\n", bold(c.String()))
	}

	output(w, "Samples:\t%s\n", bold(m.Sprintf("%d", samples.Len())))
	summaryTable(w, m, prior.Summarize(samples))
	return nil
}

// formatFloat formats x with six significant digits and grouped thousands.
func formatFloat(m *message.Printer, x float64) string {
	return m.Sprintf("%.6g", x)
}

// distributionTable sends a table of the variable parameters and their distributions to the writer.
func distributionTable(w io.Writer, m *message.Printer, joint *prior.JointDistribution, pc *prior.ParamsConfig) {
	owner := map[string]prior.Distribution{}
	for _, d := range joint.Distributions() {
		for _, p := range d.Params() {
			owner[p] = d
		}
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Parameter", "Label", "Distribution", "Min", "Max"})
	tbl.SetBorder(true)
	for _, p := range pc.Variable {
		d := owner[p]
		b := d.Bounds()[p]
		tbl.Append([]string{p, pc.Label(p), d.Name(), formatFloat(m, b.Min), formatFloat(m, b.Max)})
	}
	tbl.Render()
}

// staticTable sends a table of the static parameters to the writer.
func staticTable(w io.Writer, pc *prior.ParamsConfig) {
	names := make([]string, 0, len(pc.Static))
	for p := range pc.Static {
		names = append(names, p)
	}
	sort.Strings(names)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Parameter", "Value"})
	tbl.SetBorder(true)
	for _, p := range names {
		tbl.Append([]string{p, pc.Static[p]})
	}
	tbl.Render()
}

// summaryTable sends the descriptive statistics of the samples to the writer.
func summaryTable(w io.Writer, m *message.Printer, summaries []prior.Summary) {
	header := []string{"Parameter", "Count", "Mean", "Std Dev", "Min"}
	for _, pct := range prior.SummaryPercentiles {
		header = append(header, fmt.Sprintf("%v%%", pct))
	}
	header = append(header, "Max")

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(header)
	tbl.SetBorder(true)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range summaries {
		row := []string{s.Param, m.Sprintf("%d", s.Count), formatFloat(m, s.Mean), formatFloat(m, s.StdDev), formatFloat(m, s.Min)}
		for _, v := range s.Percentiles {
			row = append(row, formatFloat(m, v))
		}
		row = append(row, formatFloat(m, s.Max))
		tbl.Append(row)
	}
	tbl.Render()
}

// output the given message with formatting.
func output(w io.Writer, format string, a ...any) {
	_, err := fmt.Fprintf(w, format, a...)
	if err != nil {
		log.Println("output error", err.Error())
	}
}
