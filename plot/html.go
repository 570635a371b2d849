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

package plot

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/gwpe/prior-plot/prior"
	xhtml "golang.org/x/net/html"
)

// metaPrefix namespaces the provenance meta tags of HTML output.
const metaPrefix = "prior-plot:"

// toolbox offers saving and zooming in every chart.
var toolbox = opts.Toolbox{
	Show: true,
	Feature: &opts.ToolBoxFeature{
		SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
			Show:  true,
			Title: "Save",
		},
		DataZoom: &opts.ToolBoxFeatureDataZoom{
			Show: true,
		},
	},
}

func formatTick(x float64) string {
	return strconv.FormatFloat(x, 'g', 4, 64)
}

// newMarginalChart creates a bar chart of the histogram of parameter i.
func (f *Figure) newMarginalChart(i int, title, subtitle string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithToolboxOpts(toolbox),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.labels[i]}),
	)
	var ticks []string
	var items []opts.BarData
	for _, bin := range f.hists[i].Bins {
		ticks = append(ticks, formatTick((bin.Min+bin.Max)/2))
		items = append(items, opts.BarData{Value: bin.Weight})
	}
	bar.SetXAxis(ticks).AddSeries(f.labels[i], items)
	return bar
}

// newDensityChart creates a heat map of the density of parameter j against i.
func (f *Figure) newDensityChart(j, i int, grid *densityGrid) *charts.HeatMap {
	xTicks := make([]string, len(grid.xs))
	for c, x := range grid.xs {
		xTicks[c] = formatTick(x)
	}
	yTicks := make([]string, len(grid.ys))
	for r, y := range grid.ys {
		yTicks[r] = formatTick(y)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithToolboxOpts(toolbox),
		charts.WithTitleOpts(opts.Title{Title: f.labels[j] + " vs. " + f.labels[i]}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.labels[i], Type: "category", SplitArea: &opts.SplitArea{Show: false}}),
		charts.WithYAxisOpts(opts.YAxis{Name: f.labels[j], Type: "category", Data: yTicks, SplitArea: &opts.SplitArea{Show: false}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(grid.max()),
			InRange:    &opts.VisualMapInRange{Color: []string{"#ffffff", "#08306b"}},
		}),
	)

	indices := func(n int) []float64 {
		res := make([]float64, n)
		for k := range res {
			res[k] = float64(k)
		}
		return res
	}
	var items []opts.HeatMapData
	for _, cell := range prior.Cartesian(indices(len(grid.xs)), indices(len(grid.ys))) {
		c, r := int(cell[0]), int(cell[1])
		items = append(items, opts.HeatMapData{Value: [3]interface{}{c, r, grid.Z(c, r)}})
	}
	hm.SetXAxis(xTicks).AddSeries("density", items)
	return hm
}

// newScatterChart creates a scatter chart of parameter j against i.
func (f *Figure) newScatterChart(j, i int) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithToolboxOpts(toolbox),
		charts.WithTitleOpts(opts.Title{Title: f.labels[j] + " vs. " + f.labels[i]}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.labels[i], Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: f.labels[j], Type: "value"}),
	)
	xs, ys := f.samples.Columns[f.params[i]], f.samples.Columns[f.params[j]]
	stride := max(1, len(xs)/f.opts.MaxScatterPoints)
	var items []opts.ScatterData
	for k := 0; k < len(xs); k += stride {
		items = append(items, opts.ScatterData{Value: [2]float64{xs[k], ys[k]}, SymbolSize: 3})
	}
	scatter.AddSeries("samples", items)
	return scatter
}

// renderHTML writes an interactive page with one chart per populated panel
// and the metadata as meta tags of the page head.
func renderHTML(w io.Writer, fig *Figure, md Metadata) error {
	page := components.NewPage()
	page.PageTitle = md.Title
	if page.PageTitle == "" {
		page.PageTitle = "Prior samples"
	}

	n := len(fig.params)
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			if i == j {
				title, subtitle := fig.labels[i], ""
				if j == 0 {
					title, subtitle = page.PageTitle, md.Caption
				}
				page.AddCharts(fig.newMarginalChart(i, title, subtitle))
				continue
			}
			if grid, found := fig.grids[[2]int{j, i}]; found && fig.opts.Density {
				page.AddCharts(fig.newDensityChart(j, i, grid))
			} else {
				page.AddCharts(fig.newScatterChart(j, i))
			}
		}
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}
	var meta bytes.Buffer
	for _, e := range md.entries() {
		fmt.Fprintf(&meta, "\n    <meta name=\"%s\" content=\"%s\">", html.EscapeString(metaPrefix+e[0]), html.EscapeString(e[1]))
	}
	doc := buf.Bytes()
	idx := bytes.Index(doc, []byte("<head>"))
	if idx < 0 {
		return fmt.Errorf("rendered page has no head element")
	}
	idx += len("<head>")
	for _, part := range [][]byte{doc[:idx], meta.Bytes(), doc[idx:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

// readHTMLMetadata collects the provenance meta tags of an HTML page.
func readHTMLMetadata(data []byte) (map[string]string, error) {
	res := map[string]string{}
	z := xhtml.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			if z.Err() == io.EOF {
				if len(res) == 0 {
					return nil, fmt.Errorf("no provenance metadata found")
				}
				return res, nil
			}
			return nil, z.Err()
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var name, content string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if len(name) > len(metaPrefix) && name[:len(metaPrefix)] == metaPrefix {
				res[name[len(metaPrefix):]] = content
			}
		}
	}
}
