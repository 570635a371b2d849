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
	"reflect"

	"github.com/gwpe/prior-plot/logger"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		AppName: ctx.App.HelpName,
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}

	// string of this map has to exactly match the name of the field in Config struct
	cfgFlags := map[string]interface{}{
		"Bins":               BinsFlag,
		"ConfigFiles":        ConfigFilesFlag,
		"ContourPercentiles": ContourPercentilesFlag,
		"LogLevel":           logger.LogLevelFlag,
		"MaxArgs":            MaxsFlag,
		"MinArgs":            MinsFlag,
		"NSamples":           NSamplesFlag,
		"OutputFile":         OutputFileFlag,
		"ParameterArgs":      ParametersFlag,
		"PlotContours":       PlotContoursFlag,
		"PlotDensity":        PlotDensityFlag,
		"PlotMarginal":       PlotMarginalFlag,
		"PlotScatter":        PlotScatterFlag,
		"Sections":           SectionsFlag,
		"Seed":               SeedFlag,
		"Verbose":            VerboseFlag,
	}

	cfgValue := reflect.ValueOf(cfg).Elem()
	defined := definedFlags(ctx)

	for cfgName, flag := range cfgFlags {
		value, flagName := getFlagValue(ctx, defined, flag)

		field := cfgValue.FieldByName(cfgName)
		if !field.IsValid() {
			return nil, fmt.Errorf("field %s is not valid", flagName)
		}
		if !field.CanSet() {
			return nil, fmt.Errorf("field %s cannot be set", flagName)
		}
		if value == nil {
			continue
		}

		field.Set(reflect.ValueOf(value))
	}

	return cfg, nil
}

// definedFlags collects the names of the flags declared by the running
// command, or by the app when its top-level action runs.
func definedFlags(ctx *cli.Context) map[string]struct{} {
	res := map[string]struct{}{}
	var flags []cli.Flag
	if ctx.Command != nil && len(ctx.Command.Flags) > 0 {
		flags = ctx.Command.Flags
	} else if ctx.App != nil {
		flags = ctx.App.Flags
	}
	for _, f := range flags {
		res[f.Names()[0]] = struct{}{}
	}
	return res
}

// getFlagValue returns value specified by user if flag is declared in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, defined map[string]struct{}, flag interface{}) (interface{}, string) {
	switch f := flag.(type) {
	case cli.IntFlag:
		if _, found := defined[f.Name]; found {
			return ctx.Int(f.Name), f.Name
		}
		return f.Value, f.Name

	case cli.Int64Flag:
		if _, found := defined[f.Name]; found {
			return ctx.Int64(f.Name), f.Name
		}
		return f.Value, f.Name

	case cli.StringFlag:
		if _, found := defined[f.Name]; found {
			return ctx.String(f.Name), f.Name
		}
		return f.Value, f.Name

	case cli.PathFlag:
		if _, found := defined[f.Name]; found {
			return ctx.Path(f.Name), f.Name
		}
		return f.Value, f.Name

	case cli.BoolFlag:
		if _, found := defined[f.Name]; found {
			return ctx.Bool(f.Name), f.Name
		}
		return f.Value, f.Name

	case cli.StringSliceFlag:
		var values []string
		if _, found := defined[f.Name]; found {
			values = ctx.StringSlice(f.Name)
		} else if f.Value != nil {
			values = f.Value.Value()
		}
		// labels may contain commas
		if f.Name == ParametersFlag.Name {
			return values, f.Name
		}
		return splitFlagValues(values), f.Name

	case cli.Float64SliceFlag:
		if _, found := defined[f.Name]; found {
			return ctx.Float64Slice(f.Name), f.Name
		}
		if f.Value != nil {
			return f.Value.Value(), f.Name
		}
		return []float64(nil), f.Name
	}
	return nil, ""
}
