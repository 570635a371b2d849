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

// Package prior implements the commands of the prior-plot command line tool.
package prior

import (
	"fmt"
	"os"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/gwpe/prior-plot/inifile"
	"github.com/gwpe/prior-plot/logger"
	"github.com/gwpe/prior-plot/prior"
	"github.com/gwpe/prior-plot/utils"
	"golang.org/x/exp/rand"
)

// loadPrior reads the configuration files and builds the joint distribution.
func loadPrior(cfg *utils.Config, log logger.Logger) (*prior.JointDistribution, *prior.ParamsConfig, error) {
	log.Infof("Read %d configuration files", len(cfg.ConfigFiles))
	ini, err := inifile.Load(cfg.ConfigFiles...)
	if err != nil {
		return nil, nil, err
	}
	joint, pc, err := prior.NewJointDistributionFromConfig(ini, cfg.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create prior; %w", err)
	}
	log.Noticef("Prior over %d variable parameters, %d distributions, %d constraints",
		len(pc.Variable), len(joint.Distributions()), len(joint.Constraints()))
	for _, d := range joint.Distributions() {
		log.Debugf("Distribution %v of %v", d.Name(), d.Params())
	}
	return joint, pc, nil
}

// drawSamples draws the configured number of samples from the joint distribution.
func drawSamples(cfg *utils.Config, joint *prior.JointDistribution, log logger.Logger) (*prior.Samples, error) {
	rg := rand.New(rand.NewSource(uint64(cfg.Seed)))
	start := time.Now()
	samples, err := joint.Rvs(rg, cfg.NSamples)
	if err != nil {
		return nil, fmt.Errorf("cannot draw samples; %w", err)
	}
	log.Noticef("Drew %d samples; elapsed time: %v", samples.Len(), logger.Elapsed(time.Since(start)))
	return samples, nil
}

// selectParameters returns the parameters to show and their labels. Labels
// given on the command line take precedence over the configured ones.
func selectParameters(cfg *utils.Config, pc *prior.ParamsConfig) ([]string, map[string]string, error) {
	params := pc.Variable
	if len(cfg.Parameters) > 0 {
		known := map[string]bool{}
		for _, p := range pc.Variable {
			known[p] = true
		}
		for _, p := range cfg.Parameters {
			if !known[p] {
				return nil, nil, fmt.Errorf("parameter %v is not a variable parameter of the prior; known parameters are %v", p, pc.Variable)
			}
		}
		params = cfg.Parameters
	}
	labels := make(map[string]string, len(params))
	for _, p := range params {
		labels[p] = pc.Label(p)
		if label, found := cfg.Labels[p]; found {
			labels[p] = label
		}
	}
	return params, labels, nil
}

// reportOutput logs the size of a written file.
func reportOutput(path string, log logger.Logger) {
	info, err := os.Stat(path)
	if err != nil {
		log.Warningf("Cannot stat %v; %v", path, err)
		return
	}
	log.Noticef("Wrote %v (%v)", path, datasize.ByteSize(info.Size()).HumanReadable())
}
